package handlers

import (
	"errors"

	"bankcards/internal/models"
	"bankcards/internal/services/card"
	"bankcards/internal/utils/pagination"
	"bankcards/internal/utils/response"
	"bankcards/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CardHandler exposes the cardholder surface: own-card listing, transfers,
// balance queries, and block requests.
type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// ListCards handles GET /api/cards.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	req := card.SearchRequest{
		Search: c.Query("search"),
		Status: models.CardStatus(c.Query("status")),
		Limit:  p.Limit,
		Offset: p.Offset,
	}

	cards, total, err := h.cardService.ListOwnCards(claims.UserID, req)
	if err != nil {
		return serverError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, cards))
}

// Transfer handles POST /api/cards/transfer.
func (h *CardHandler) Transfer(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req card.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.RequiredID("from_card_id", req.FromCardID)
	v.RequiredID("to_card_id", req.ToCardID)
	v.Amount("amount", req.Amount)
	v.MaxLength("description", req.Description, validation.MaxDescriptionLength)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	if err := h.cardService.Transfer(claims.UserID, req); err != nil {
		return mapCardError(c, err)
	}
	return response.Success(c, "transfer completed", nil)
}

// GetBalance handles GET /api/cards/:id/balance.
func (h *CardHandler) GetBalance(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return response.BadRequest(c, "invalid card id")
	}

	balance, err := h.cardService.GetBalance(claims.UserID, uint(cardID))
	if err != nil {
		return mapCardError(c, err)
	}
	return response.Success(c, "balance retrieved", fiber.Map{"balance": balance})
}

// RequestBlock handles POST /api/cards/:id/request-block.
func (h *CardHandler) RequestBlock(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return response.BadRequest(c, "invalid card id")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.Required("reason", req.Reason)
	v.MaxLength("reason", req.Reason, validation.MaxReasonLength)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	if err := h.cardService.RequestBlock(claims.UserID, uint(cardID), req.Reason); err != nil {
		return mapCardError(c, err)
	}
	return response.Created(c, "block request submitted", nil)
}

// mapCardError translates card service errors onto HTTP statuses.
func mapCardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, card.ErrCardNotFound), errors.Is(err, card.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, card.ErrAccessDenied):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, card.ErrInsufficientFunds),
		errors.Is(err, card.ErrCardNotActive),
		errors.Is(err, card.ErrCardExpired),
		errors.Is(err, card.ErrNonZeroBalance),
		errors.Is(err, card.ErrAlreadyBlocked),
		errors.Is(err, card.ErrInvalidAmount),
		errors.Is(err, card.ErrSameCard):
		return response.BadRequest(c, err.Error())
	default:
		return serverError(c, err)
	}
}
