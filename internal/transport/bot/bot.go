package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"trustrace/internal/transport/bot/handler"
	"trustrace/pkg/contextx"
	"trustrace/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollingTimeout = 60

// Bot serves chat commands over long polling.
type Bot struct {
	bot     *telego.Bot
	handler *handler.Handler
	adminID int64
}

func New(bot *telego.Bot, commandHandler *handler.Handler, adminID int64) *Bot {
	return &Bot{
		bot:     bot,
		handler: commandHandler,
		adminID: adminID,
	}
}

// Run blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	logger(ctx).Info("telegram bot started", slog.Int64("admin_id", b.adminID))

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("telegram bot stopped")

	return nil
}
