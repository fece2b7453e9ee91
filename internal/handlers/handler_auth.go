package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loginRate bounds login attempts per client IP.
const loginRate = "10-M"

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserAuthSvc
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserAuthSvc, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, userService portssvc.UserAuthSvc, tokenService portssvc.TokenSvcFacade) {
	h := newAuthHandler(userService, tokenService)

	rate, _ := limiter.NewRateFromFormatted(loginRate)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit("login", ipLimiter), h.login)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT carrying their role.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.Kind(err) == apperrors.KindUnauthorized {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid username or password", ErrorKind: apperrors.KindUnauthorized})
			return
		}
		respondError(c, err, "Failed to authenticate user")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in",
		slog.String("user_id", user.UserID), slog.String("actor_role", string(user.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Role: string(user.Role)})
}
