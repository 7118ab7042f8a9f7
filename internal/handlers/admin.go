package handlers

import (
	"errors"
	"time"

	"bankcards/internal/services/card"
	"bankcards/internal/services/user"
	"bankcards/internal/utils/pagination"
	"bankcards/internal/utils/response"
	"bankcards/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler exposes the admin surface: card issuance and lifecycle, and
// user management.
type AdminHandler struct {
	cardAdmin   card.AdminService
	userService user.Service
}

func NewAdminHandler(cardAdmin card.AdminService, userService user.Service) *AdminHandler {
	return &AdminHandler{
		cardAdmin:   cardAdmin,
		userService: userService,
	}
}

// CreateCard handles POST /api/admin/cards.
func (h *AdminHandler) CreateCard(c *fiber.Ctx) error {
	var req struct {
		OwnerID        uint             `json:"owner_id"`
		CardNumber     string           `json:"card_number"`
		ExpiryDate     string           `json:"expiry_date"`
		InitialBalance *decimal.Decimal `json:"initial_balance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	expiry, dateErr := time.Parse("2006-01-02", req.ExpiryDate)

	balance := decimal.Zero
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	v := validation.New()
	v.RequiredID("owner_id", req.OwnerID)
	v.CardNumber("card_number", req.CardNumber)
	v.Check(dateErr == nil, "expiry_date", "must be a date in YYYY-MM-DD format")
	v.NonNegativeAmount("initial_balance", balance)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	dto, err := h.cardAdmin.CreateCard(card.CreateCardRequest{
		OwnerID:        req.OwnerID,
		CardNumber:     req.CardNumber,
		ExpiryDate:     expiry,
		InitialBalance: balance,
	})
	if err != nil {
		return mapCardError(c, err)
	}
	return response.Created(c, "card created", dto)
}

// ListCards handles GET /api/admin/cards.
func (h *AdminHandler) ListCards(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	cards, total, err := h.cardAdmin.ListAllCards(p.Limit, p.Offset)
	if err != nil {
		return serverError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, cards))
}

// ActivateCard handles POST /api/admin/cards/:id/activate.
func (h *AdminHandler) ActivateCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return response.BadRequest(c, "invalid card id")
	}

	if err := h.cardAdmin.ActivateCard(uint(cardID)); err != nil {
		return mapCardError(c, err)
	}
	return response.Success(c, "card activated", nil)
}

// BlockCard handles POST /api/admin/cards/:id/block.
func (h *AdminHandler) BlockCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return response.BadRequest(c, "invalid card id")
	}

	if err := h.cardAdmin.BlockCard(uint(cardID)); err != nil {
		return mapCardError(c, err)
	}
	return response.Success(c, "card blocked", nil)
}

// DeleteCard handles DELETE /api/admin/cards/:id.
func (h *AdminHandler) DeleteCard(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return response.BadRequest(c, "invalid card id")
	}

	if err := h.cardAdmin.DeleteCard(uint(cardID)); err != nil {
		return mapCardError(c, err)
	}
	return response.NoContent(c)
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req user.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.Required("first_name", req.FirstName)
	v.MinLength("first_name", req.FirstName, validation.MinNameLength)
	v.Required("last_name", req.LastName)
	v.MinLength("last_name", req.LastName, validation.MinNameLength)
	v.Email("email", req.Email)
	v.Password("password", req.Password)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	dto, err := h.userService.CreateUser(req)
	if err != nil {
		return mapUserError(c, err)
	}
	return response.Created(c, "user created", dto)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userService.ListUsers(p.Limit, p.Offset)
	if err != nil {
		return serverError(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, users))
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	dto, err := h.userService.GetUser(uint(userID))
	if err != nil {
		return mapUserError(c, err)
	}
	return response.Success(c, "user retrieved", dto)
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	var req user.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	if req.FirstName != nil {
		v.MinLength("first_name", *req.FirstName, validation.MinNameLength)
		v.MaxLength("first_name", *req.FirstName, validation.MaxNameLength)
	}
	if req.LastName != nil {
		v.MinLength("last_name", *req.LastName, validation.MinNameLength)
		v.MaxLength("last_name", *req.LastName, validation.MaxNameLength)
	}
	if req.Email != nil {
		v.Email("email", *req.Email)
	}
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	dto, err := h.userService.UpdateUser(uint(userID), req)
	if err != nil {
		return mapUserError(c, err)
	}
	return response.Success(c, "user updated", dto)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "invalid user id")
	}

	if err := h.userService.DeleteUser(uint(userID)); err != nil {
		return mapUserError(c, err)
	}
	return response.NoContent(c)
}

func mapUserError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, user.ErrHasBalance):
		return response.BadRequest(c, err.Error())
	default:
		return serverError(c, err)
	}
}
