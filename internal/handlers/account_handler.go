package handlers

import (
	"streaming-backend/internal/middleware"
	"streaming-backend/internal/services"
	"streaming-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service services.AccountService
	logger  *logrus.Logger
}

func NewAccountHandler(service services.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account together with an empty profile
// @Tags account
// @Accept json
// @Produce json
// @Param request body handlers.RegisterRequest true "Registration details"
// @Success 201 {object} handlers.UserResponse
// @Failure 400 {object} utils.DetailResponse
// @Router /register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Register(c.Context(), services.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(NewUserResponse(user))
}

// Login godoc
// @Summary Obtain an access token
// @Description Exchange username (or email) and password for a bearer token
// @Tags account
// @Accept json
// @Produce json
// @Param request body handlers.LoginRequest true "Login credentials"
// @Success 200 {object} handlers.TokenResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /auth/token [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	token, user, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}

	h.logger.WithField("username", user.Username).Info("User logged in")
	return c.JSON(TokenResponse{Token: token})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /auth/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	user, err := h.service.GetUser(c.Context(), *userID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewUserResponse(user))
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} utils.DetailResponse
// @Failure 404 {object} utils.DetailResponse
// @Router /profile [get]
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	profile, err := h.service.GetProfile(c.Context(), *userID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewProfileResponse(profile))
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description Partial update; omitted fields keep their prior values
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} handlers.ProfileResponse
// @Failure 400 {object} utils.DetailResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /profile [put]
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := h.service.UpdateProfile(c.Context(), *userID, services.ProfileUpdateInput{
		Avatar:            req.Avatar,
		DateOfBirth:       req.DateOfBirth,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewProfileResponse(profile))
}
