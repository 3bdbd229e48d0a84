package handler

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"trustrace/internal/domain/reputation"
	"trustrace/internal/domain/value"
	"trustrace/internal/transport/bot/view"
	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnTiers(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.Tiers(reputation.Tiers()))
}

// OnTier shows the standing of an address or of a bare score.
// Usage: /tier vitalik.eth, /tier 1450
func (h *Handler) OnTier(ctx *th.Context, msg telego.Message) error {
	arg, ok := argument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.TierUsage)
	}

	if text, isScore := scoreStanding(arg); isScore {
		return h.sendHTML(ctx, msg.Chat.ID, text)
	}

	address, err := value.ParseAddress(arg)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.InvalidAddress)
	}

	p, err := h.profiles.Profile(ctx, address)
	if err != nil {
		return h.sendError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Profile(p))
}

// OnResults shows the credibility-weighted results of a submission.
// Usage: /results d0qnb8a2c1fg00a2v7hg
func (h *Handler) OnResults(ctx *th.Context, msg telego.Message) error {
	id, ok := argument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.ResultsUsage)
	}

	results, err := h.results.Results(ctx, id)
	if err != nil {
		return h.sendError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Results(results))
}

func (h *Handler) OnRecalc(ctx *th.Context, msg telego.Message) error {
	id, ok := argument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.RecalcUsage)
	}

	results, err := h.results.Recalculate(withSender(ctx, msg), id)
	if err != nil {
		return h.sendError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Results(results))
}

func (h *Handler) OnClose(ctx *th.Context, msg telego.Message) error {
	id, ok := argument(msg.Text)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.CloseUsage)
	}

	if err := h.contests.Close(withSender(ctx, msg), id); err != nil {
		return h.sendError(ctx, msg.Chat.ID, err)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.ContestClosed(id))
}

func argument(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 { //nolint:mnd // command and argument
		return "", false
	}

	return parts[1], true
}

// scoreStanding renders a numeric /tier argument. isScore is false when arg
// is not a number and should be treated as an address.
func scoreStanding(arg string) (text string, isScore bool) {
	score, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return "", false
	}

	if score < 0 || math.IsNaN(score) || math.IsInf(score, 0) {
		return view.InvalidScore, true
	}

	return view.Score(score), true
}

// withSender tags ctx with the Telegram id of the command author.
func withSender(ctx context.Context, msg telego.Message) context.Context {
	if msg.From == nil {
		return ctx
	}

	return contextx.WithUserID(ctx, contextx.UserID(strconv.FormatInt(msg.From.ID, 10)))
}

func (h *Handler) sendError(ctx *th.Context, chatID int64, err error) error {
	logger(ctx).Warn("bot command failed", slog.Int64("chat_id", chatID), logx.Error(err))
	return h.sendHTML(ctx, chatID, view.Error(err))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
