package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"trustrace/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnTiers, th.CommandEqual("tiers"))
	bh.HandleMessage(h.OnTier, th.CommandEqual("tier"))
	bh.HandleMessage(h.OnResults, th.CommandEqual("results"))

	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnClose, th.CommandEqual("close"))
	adminGroup.HandleMessage(h.OnRecalc, th.CommandEqual("recalc"))
}
