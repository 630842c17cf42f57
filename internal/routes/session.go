package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blackbank/blackbank/internal/flow"
	"github.com/blackbank/blackbank/internal/middleware"
)

// RegisterSessionRoutes wires login, screen intents and money operations.
func RegisterSessionRoutes(r fiber.Router, h *flow.Handler, d Deps) {
	r.Post("/session/login", middleware.LoginRateLimit(d.Cache, d.Cfg.LoginAttempts), h.Login)
	r.Get("/screen", h.Screen)

	auth := middleware.RequireAuthenticated(d.Controller)
	r.Get("/balance", auth, h.Balance)
	r.Post("/screen/withdraw", auth, h.SelectWithdraw)
	r.Post("/screen/deposit", auth, h.SelectDeposit)
	r.Post("/screen/transfer", auth, h.SelectTransfer)
	r.Post("/screen/cancel", auth, h.Cancel)
	r.Post("/screen/acknowledge", auth, h.Acknowledge)

	// money operations replay on retry when Redis is available
	guarded := func(next fiber.Handler) []fiber.Handler {
		if d.Cache == nil {
			return []fiber.Handler{auth, next}
		}
		return []fiber.Handler{auth, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger), next}
	}
	r.Post("/withdraw", guarded(h.Withdraw)...)
	r.Post("/deposit", guarded(h.Deposit)...)
	r.Post("/transfer", guarded(h.Transfer)...)
}
