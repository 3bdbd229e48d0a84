package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly drops updates from everyone but the configured admin.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		var from *telego.User

		switch {
		case update.Message != nil:
			from = update.Message.From
		case update.CallbackQuery != nil:
			from = &update.CallbackQuery.From
		}

		if from == nil || adminID == 0 || from.ID != adminID {
			return nil
		}

		return ctx.Next(update)
	}
}
