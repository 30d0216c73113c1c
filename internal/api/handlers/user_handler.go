package handlers

import (
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/service"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param email query string false "Email"
// @Security Bearer
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context(), c.Query("email"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list users")
	}
	return c.JSON(dto.NewUserResponses(users))
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User id or store id"
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get user")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// GetCurrentUser godoc
// @Summary Current user
// @Description Resolves the email in the bearer token to the stored profile. Tokens without an email are resolved by user id.
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	var (
		user *models.User
		err  error
	)
	switch email, userID := middleware.Email(c), middleware.UserID(c); {
	case email != "":
		user, err = h.userService.GetByEmail(c.Context(), email)
	case userID != "":
		user, err = h.userService.Get(c.Context(), userID)
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get current user")
	}
	return c.JSON(dto.NewUserResponse(user))
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User"
// @Security Bearer
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id or store id"
// @Param user body dto.UpdateUserRequest true "Fields to set"
// @Security Bearer
// @Success 200 {object} dto.MatchedResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	n, err := h.userService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update user")
	}
	return c.JSON(dto.MatchedResponse{MatchedCount: n})
}
