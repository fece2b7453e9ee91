package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the error body for err. Internal errors are logged and masked.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	respondErrorWithStatus(c, err, fallbackMsg, "")
}

// respondErrorWithStatus is respondError plus the plan's current status, which lets the
// caller refresh after an IllegalTransition or Conflict.
func respondErrorWithStatus(c *gin.Context, err error, fallbackMsg string, currentStatus string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.Kind(err)
	code := apperrors.HTTPStatus(err)

	body := dto.ErrorResponse{Error: err.Error(), ErrorKind: kind}
	if kind == apperrors.KindIllegalTransition || kind == apperrors.KindConflict {
		body.Status = currentStatus
	}
	if code == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		body.Error = fallbackMsg
	} else {
		logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.String("error_kind", kind))
	}
	c.JSON(code, body)
}

func respondBadRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:     msg + ": " + err.Error(),
		ErrorKind: apperrors.KindValidation,
	})
}

func respondUnauthorized(c *gin.Context) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Error("Authenticated actor not found in context")
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", ErrorKind: apperrors.KindUnauthorized})
}
