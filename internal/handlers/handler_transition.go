package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/plan_approval_app/internal/apperrors"
	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/core/workflow"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/SscSPs/plan_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transitionHandler exposes the workflow engine.
type transitionHandler struct {
	workflowService portssvc.WorkflowSvc
	planService     portssvc.PlanReaderSvc
}

func newTransitionHandler(ws portssvc.WorkflowSvc, ps portssvc.PlanReaderSvc) *transitionHandler {
	return &transitionHandler{workflowService: ws, planService: ps}
}

func registerTransitionRoutes(rg *gin.RouterGroup, ws portssvc.WorkflowSvc, ps portssvc.PlanReaderSvc) {
	h := newTransitionHandler(ws, ps)
	rg.GET("/transitions", h.listTransitions)
}

// executeTransition godoc
// @Summary Execute a transition
// @Description Applies the caller's decision to the plan. The caller's role comes from the token.
// @Description Soft failures (document, notification) are reported in the body of a 200 response.
// @Tags workflow
// @Accept json
// @Produce json
// @Param planID path string true "Plan ID"
// @Param transition body dto.ExecuteTransitionRequest true "Action and remarks"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} dto.ErrorResponse "ValidationError"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "NotFound"
// @Failure 409 {object} dto.ErrorResponse "Conflict"
// @Failure 422 {object} dto.ErrorResponse "IllegalTransition"
// @Failure 502 {object} dto.ErrorResponse "DocumentFailure"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID}/transitions [post]
func (h *transitionHandler) executeTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExecuteTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format", err)
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	planID := c.Param("planID")

	result, err := h.workflowService.Execute(c.Request.Context(), planID, actor, workflow.Action(req.Action), req.Remarks)
	if err != nil {
		var current string
		switch apperrors.Kind(err) {
		case apperrors.KindIllegalTransition, apperrors.KindConflict:
			if plan, getErr := h.planService.GetPlanByID(c.Request.Context(), planID); getErr == nil {
				current = string(plan.Status)
			}
		}
		respondErrorWithStatus(c, err, "Failed to execute transition", current)
		return
	}

	if result.Degraded() {
		logger.Warn("Transition committed with soft failures",
			slog.String("plan_id", planID), slog.Int("soft_failures", len(result.SoftFailures)))
	}
	c.JSON(http.StatusOK, dto.ToTransitionResponse(result))
}

// listTransitions godoc
// @Summary List the transition table
// @Description Returns every transition row: from-status, role, action, target status and side effects.
// @Tags workflow
// @Produce json
// @Success 200 {array} dto.TransitionRowResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transitions [get]
func (h *transitionHandler) listTransitions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListTransitionRowResponse(h.workflowService.Transitions()))
}
