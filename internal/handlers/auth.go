package handlers

import (
	"errors"

	"bankcards/internal/services/auth"
	"bankcards/internal/utils/response"
	"bankcards/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.Required("first_name", req.FirstName)
	v.MinLength("first_name", req.FirstName, validation.MinNameLength)
	v.MaxLength("first_name", req.FirstName, validation.MaxNameLength)
	v.Required("last_name", req.LastName)
	v.MinLength("last_name", req.LastName, validation.MinNameLength)
	v.MaxLength("last_name", req.LastName, validation.MaxNameLength)
	v.Email("email", req.Email)
	v.Password("password", req.Password)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	user, accessToken, refreshToken, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return response.BadRequest(c, err.Error())
		}
		return serverError(c, err)
	}

	return response.Created(c, "user registered", fiber.Map{
		"user_id":       user.ID,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	v := validation.New()
	v.Email("email", req.Email)
	v.Required("password", req.Password)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	user, accessToken, refreshToken, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		return serverError(c, err)
	}

	return response.Success(c, "login successful", fiber.Map{
		"user_id":       user.ID,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if req.RefreshToken == "" {
		return response.BadRequest(c, "refresh_token is required")
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := h.authService.Logout(userID); err != nil {
		return serverError(c, err)
	}
	return response.Success(c, "logged out", nil)
}
