package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/prasetyowira/credential-core/internal/credential/dto"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
	"github.com/prasetyowira/credential-core/internal/password"
)

// PasswordHandler exposes hashing to the trusted command layer, which stores
// the hashed form itself. Raw passwords are never logged or persisted here.
type PasswordHandler struct {
	hasher *password.Hasher
}

func NewPasswordHandler(hasher *password.Hasher) *PasswordHandler {
	return &PasswordHandler{hasher: hasher}
}

func (h *PasswordHandler) Hash(c *fiber.Ctx) error {
	var input dto.HashPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	hash, err := h.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, autherror.ErrEmptyPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.HashPasswordOutput{Hash: hash})
}

func (h *PasswordHandler) Verify(c *fiber.Ctx) error {
	var input dto.VerifyPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	matched, needsRehash := h.hasher.Verify(input.Password, input.Hash)

	return c.Status(fiber.StatusOK).JSON(dto.VerifyPasswordOutput{
		Matched:     matched,
		NeedsRehash: needsRehash,
	})
}

func RegisterPasswordRoutes(app *fiber.App, h *PasswordHandler) {
	app.Post("/api/v1/passwords/hash", h.Hash)
	app.Post("/api/v1/passwords/verify", h.Verify)
}
