package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/plan_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("/me/preferences", h.getPreferences)
		users.PUT("/me/preferences", h.updatePreferences)
		users.GET("", middleware.RequireRoles(domain.RolePlanning, domain.RoleDirector), h.listUsers)
		users.GET("/:id", middleware.RequireRoles(domain.RolePlanning, domain.RoleDirector), h.getUser)
		users.POST("", middleware.RequireRoles(domain.RolePlanning, domain.RoleDirector), h.createUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Registers a staff member or client with a role. Planning and Director only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Username taken"
// @Failure 500 {object} dto.ErrorResponse "Failed to create user"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format", err)
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create user", slog.String("username", req.Username), slog.String("role", req.Role))

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created successfully", slog.String("user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve user"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list users"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// getPreferences godoc
// @Summary Get my notification preferences
// @Description Unset channel switches are reported as enabled.
// @Tags users
// @Produce  json
// @Success 200 {object} dto.PreferencesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me/preferences [get]
func (h *userHandler) getPreferences(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	pref, err := h.userService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load preferences")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(pref))
}

// updatePreferences godoc
// @Summary Update my notification preferences
// @Description Omitted fields keep their current value.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   preferences body dto.UpdatePreferencesRequest true "Channel switches"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me/preferences [put]
func (h *userHandler) updatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format", err)
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	pref, err := h.userService.UpdatePreferences(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update preferences")
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferencesResponse(pref))
}
