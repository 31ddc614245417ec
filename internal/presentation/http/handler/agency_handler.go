package handler

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AgencyHandler serves the agency directory
type AgencyHandler struct {
	agencyService *service.AgencyService
}

// NewAgencyHandler creates a new agency handler
func NewAgencyHandler(agencyService *service.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

// List handles listing agencies
// @Summary List Agencies
// @Tags agencies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /agencies [get]
func (h *AgencyHandler) List(c *gin.Context) {
	agencies, err := h.agencyService.ListAgencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Agencies retrieved successfully", agencies)
}
