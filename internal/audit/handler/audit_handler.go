package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prasetyowira/credential-core/internal/audit/dto"
	"github.com/prasetyowira/credential-core/internal/audit/service"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

type AuditHandler struct {
	reader *service.Reader
}

func NewAuditHandler(reader *service.Reader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

func (h *AuditHandler) ListSecurityEvents(c *fiber.Ctx) error {
	input := dto.ListInput{
		UserID:    c.Query("user_id"),
		TenantID:  c.Query("tenant_id"),
		Type:      c.Query("type"),
		PageSize:  c.QueryInt("page_size"),
		PageToken: c.Query("page_token"),
	}

	for param, dst := range map[string]**time.Time{"from": &input.From, "to": &input.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}

		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + param + " timestamp"})
		}

		*dst = &t
	}

	page, err := h.reader.Read(c.Context(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidPageToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.Status(fiber.StatusOK).JSON(page)
}

func RegisterRoutes(app *fiber.App, h *AuditHandler) {
	app.Get("/api/v1/security-events", h.ListSecurityEvents)
}
