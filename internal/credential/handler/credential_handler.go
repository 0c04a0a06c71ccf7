package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prasetyowira/credential-core/internal/credential/domain"
	"github.com/prasetyowira/credential-core/internal/credential/dto"
	"github.com/prasetyowira/credential-core/internal/credential/service"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
	"github.com/prasetyowira/credential-core/internal/event"
)

// CredentialHandler is the thin HTTP surface over the two ledgers. The caller
// is trusted to have authenticated the user id it supplies; this layer only
// guards token and code secrecy.
type CredentialHandler struct {
	tokens     *service.RefreshTokenLedger
	codes      *service.VerificationCodeLedger
	dispatcher *event.Dispatcher
}

func NewCredentialHandler(tokens *service.RefreshTokenLedger, codes *service.VerificationCodeLedger,
	dispatcher *event.Dispatcher) *CredentialHandler {
	return &CredentialHandler{tokens: tokens, codes: codes, dispatcher: dispatcher}
}

func (h *CredentialHandler) IssueToken(c *fiber.Ctx) error {
	var input dto.IssueTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	pair, _, err := h.tokens.Issue(c.Context(), input)
	if err != nil {
		return h.mapError(c, err)
	}

	h.dispatch(c, event.UserLoggedIn{
		Base:      event.Base{At: time.Now().UTC()},
		UserID:    input.UserID,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	})

	return c.Status(fiber.StatusCreated).JSON(pair)
}

func (h *CredentialHandler) RotateToken(c *fiber.Ctx) error {
	var input dto.RotateTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	outcome, err := h.tokens.Rotate(c.Context(), input)
	if err != nil {
		return h.mapError(c, err)
	}

	switch outcome.Result {
	case domain.RotateRotated:
		return c.Status(fiber.StatusOK).JSON(outcome.Tokens)
	case domain.RotateReused:
		h.dispatch(c, event.TokenReused{
			Base:      event.Base{At: time.Now().UTC()},
			UserID:    outcome.UserID,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
		})

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "refresh token reuse detected"})
	case domain.RotateExpiredOrRevoked:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "refresh token expired or revoked"})
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "refresh token not found"})
	}
}

func (h *CredentialHandler) RevokeToken(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.tokens.Revoke(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}

	h.dispatch(c, event.TokenRevoked{
		Base:     event.Base{At: time.Now().UTC()},
		RecordID: id,
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CredentialHandler) RevokeUserTokens(c *fiber.Ctx) error {
	userID := c.Params("id")

	if err := h.tokens.RevokeAllForUser(c.Context(), userID); err != nil {
		return h.mapError(c, err)
	}

	h.dispatch(c, event.UserLoggedOut{
		Base:      event.Base{At: time.Now().UTC()},
		UserID:    userID,
		IPAddress: c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CredentialHandler) IssueCode(c *fiber.Ctx) error {
	var input dto.IssueCodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	plaintext, record, err := h.codes.Issue(c.Context(), input.UserID, domain.CodeKind(input.Kind))
	if err != nil {
		return h.mapError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IssueCodeOutput{
		Code:      plaintext,
		RecordID:  record.ID,
		ExpiresAt: record.ExpiresAt,
	})
}

func (h *CredentialHandler) ConsumeCode(c *fiber.Ctx) error {
	var input dto.ConsumeCodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	var outcome *service.ConsumeOutcome
	var err error
	if input.RecordID != "" {
		outcome, err = h.codes.ConsumeByID(c.Context(), input.RecordID, input.Code)
	} else {
		outcome, err = h.codes.Consume(c.Context(), input.UserID, domain.CodeKind(input.Kind), input.Code)
	}
	if err != nil {
		return h.mapError(c, err)
	}

	body := dto.ConsumeCodeOutput{Result: outcome.Result.String()}

	switch outcome.Result {
	case domain.ConsumeSuccess:
		h.dispatch(c, event.CodeConsumed{
			Base:     event.Base{At: time.Now().UTC()},
			UserID:   outcome.Record.UserID,
			CodeKind: string(outcome.Record.Kind),
		})

		return c.Status(fiber.StatusOK).JSON(body)
	case domain.ConsumeMismatch:
		// The record's kind decides whether this is a failed second factor;
		// the by-id path carries no kind in the request body.
		if outcome.Record.Kind == domain.CodeKindTwoFactorSetup {
			h.dispatch(c, event.TwoFactorFailed{
				Base:      event.Base{At: time.Now().UTC()},
				UserID:    outcome.Record.UserID,
				IPAddress: c.IP(),
				UserAgent: string(c.Request().Header.UserAgent()),
				Reason:    "code mismatch",
			})
		}

		return c.Status(fiber.StatusUnauthorized).JSON(body)
	case domain.ConsumeAlreadyConsumed:
		return c.Status(fiber.StatusConflict).JSON(body)
	case domain.ConsumeExpired:
		return c.Status(fiber.StatusGone).JSON(body)
	default:
		return c.Status(fiber.StatusNotFound).JSON(body)
	}
}

// dispatch runs the post-commit event pipeline for one request: the ledger
// write already committed, so the events are collected from a per-request
// recorder and handed to the dispatcher.
func (h *CredentialHandler) dispatch(c *fiber.Ctx, events ...event.Event) {
	rec := &event.Recorder{}
	for _, e := range events {
		rec.Raise(e)
	}

	collector := event.NewCollector()
	collector.CollectFrom(rec)
	h.dispatcher.Dispatch(c.Context(), collector.DequeueAll())
}

func (h *CredentialHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherror.ErrInvalidInput), errors.Is(err, autherror.ErrEmptyPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrLineageCorrupted):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
