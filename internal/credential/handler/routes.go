package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *CredentialHandler) {
	app.Post("/api/v1/tokens", h.IssueToken)
	app.Post("/api/v1/tokens/rotate", h.RotateToken)
	app.Delete("/api/v1/tokens/:id", h.RevokeToken)
	app.Delete("/api/v1/users/:id/tokens", h.RevokeUserTokens)

	app.Post("/api/v1/codes", h.IssueCode)
	app.Post("/api/v1/codes/consume", h.ConsumeCode)
}
