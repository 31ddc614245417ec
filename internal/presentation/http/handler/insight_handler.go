package handler

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InsightHandler serves the kanban board, client roll-up and dashboard
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Kanban handles the board grouped by status
// @Summary Kanban Board
// @Tags insights
// @Security BearerAuth
// @Produce json
// @Param agency_id query string false "Agency filter"
// @Success 200 {object} response.APIResponse
// @Router /kanban [get]
func (h *InsightHandler) Kanban(c *gin.Context) {
	agencyID, err := parseOptionalUUID(c.Query("agency_id"))
	if err != nil {
		response.BadRequest(c, "Invalid agency ID")
		return
	}

	columns, err := h.insightService.GetKanban(c.Request.Context(), agencyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kanban retrieved successfully", response.NewKanbanView(columns))
}

// Clients handles the client roll-up
// @Summary Clients
// @Tags insights
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name or email"
// @Success 200 {object} response.APIResponse
// @Router /clients [get]
func (h *InsightHandler) Clients(c *gin.Context) {
	clients, err := h.insightService.GetClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clients retrieved successfully", response.NewClientViews(clients))
}

// Dashboard handles the KPI and chart payload
// @Summary Dashboard
// @Tags insights
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *InsightHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.insightService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", response.NewDashboardView(dashboard))
}
