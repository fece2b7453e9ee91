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

// planHandler handles HTTP requests for the plan registry.
type planHandler struct {
	planService     portssvc.PlanSvcFacade
	workflowService portssvc.WorkflowSvc
}

func newPlanHandler(ps portssvc.PlanSvcFacade, ws portssvc.WorkflowSvc) *planHandler {
	return &planHandler{planService: ps, workflowService: ws}
}

// registerPlanRoutes registers plan registry and per-plan workflow routes.
func registerPlanRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPlanHandler(services.Plan, services.Workflow)
	th := newTransitionHandler(services.Workflow, services.Plan)
	ah := newAuditHandler(services.Audit)

	plans := rg.Group("/plans")
	{
		plans.GET("", h.listPlans)
		plans.POST("", middleware.RequireRoles(domain.RoleReception, domain.RolePlanning), h.createPlan)
		plans.GET("/:planID", h.getPlan)
		plans.PUT("/:planID/reference", middleware.RequireRoles(domain.RolePlanning), h.assignReference)
		plans.GET("/:planID/actions", h.listActions)
		plans.POST("/:planID/transitions", th.executeTransition)
		plans.GET("/:planID/logs", ah.listLogs)
		plans.GET("/:planID/documents", ah.listDocuments)
	}
}

// listPlans godoc
// @Summary List plans
// @Description Lists every plan, or only those in the given status.
// @Tags plans
// @Produce json
// @Param status query string false "Plan status filter"
// @Success 200 {object} dto.ListPlansResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	var params dto.ListPlansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid query parameters", err)
		return
	}

	var (
		plans []domain.Plan
		err   error
	)
	if params.Status == "" {
		plans, err = h.planService.ListPlans(c.Request.Context())
	} else {
		plans, err = h.planService.ListPlansByStatus(c.Request.Context(), domain.PlanStatus(params.Status))
	}
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlansResponse(plans))
}

// createPlan godoc
// @Summary Register a plan
// @Description Creates a plan in the Submitted status. Reception and Planning only.
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format", err)
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create plan")
		return
	}
	logger.Info("Plan created", slog.String("plan_id", plan.PlanID))
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// getPlan godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	plan, err := h.planService.GetPlanByID(c.Request.Context(), c.Param("planID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// assignReference godoc
// @Summary Assign a reference number
// @Description Sets the plan's reference number once. Planning only.
// @Tags plans
// @Accept json
// @Produce json
// @Param planID path string true "Plan ID"
// @Param reference body dto.AssignReferenceRequest true "Reference number"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID}/reference [put]
func (h *planHandler) assignReference(c *gin.Context) {
	var req dto.AssignReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format", err)
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	plan, err := h.planService.AssignReferenceNo(c.Request.Context(), c.Param("planID"), req.ReferenceNo, actor)
	if err != nil {
		respondError(c, err, "Failed to assign reference number")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// listActions godoc
// @Summary List available actions
// @Description Lists the transitions the caller's role may fire on the plan right now.
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {array} dto.TransitionRowResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID}/actions [get]
func (h *planHandler) listActions(c *gin.Context) {
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	rows, err := h.workflowService.AvailableActions(c.Request.Context(), c.Param("planID"), role)
	if err != nil {
		respondError(c, err, "Failed to list available actions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransitionRowResponse(rows))
}
