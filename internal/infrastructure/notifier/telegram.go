package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"trustrace/internal/domain/entity"
)

// Telegram posts alerts to a single chat.
type Telegram struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegram(bot *telego.Bot, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}
}

func (t *Telegram) NotifyHighTrust(
	ctx context.Context,
	submission entity.Submission,
	results entity.SubmissionResults,
) error {
	msg := tu.Message(
		tu.ID(t.chatID),
		HighTrustMessage(submission, results),
	).WithParseMode(telego.ModeHTML)

	if _, err := t.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	logger(ctx).Info("high trust alert sent", slog.String("submission_id", submission.ID))

	return nil
}

func HighTrustMessage(submission entity.Submission, results entity.SubmissionResults) string {
	return fmt.Sprintf(
		"🛡️ <b>%s reached %s</b>\n\n"+
			"📝 <b>Submission:</b> <code>%s</code>\n"+
			"🏁 <b>Contest:</b> <code>%s</code>\n"+
			"🗳️ <b>Votes:</b> %d\n"+
			"⚖️ <b>Weighted:</b> %.3f\n"+
			"📈 <b>Trust confidence:</b> %d%%\n\n"+
			"🔗 %s",
		html.EscapeString(submission.Title),
		results.Label.Label,
		submission.ID,
		submission.ContestID,
		results.VoteCount,
		results.WeightedVotes,
		results.TrustConfidence,
		html.EscapeString(submission.ContentURI),
	)
}

// Nop drops alerts. Used when no bot token is configured.
type Nop struct{}

func (Nop) NotifyHighTrust(ctx context.Context, submission entity.Submission, _ entity.SubmissionResults) error {
	logger(ctx).Debug("high trust alert skipped", slog.String("submission_id", submission.ID))
	return nil
}
