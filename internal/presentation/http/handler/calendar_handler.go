package handler

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// CalendarHandler serves the follow-up action calendar
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// Get handles the calendar view
// @Summary Follow-up Calendar
// @Description J+2 and J+4 actions ordered by due date
// @Tags calendar
// @Security BearerAuth
// @Produce json
// @Param filter query string false "all, pending (default) or overdue"
// @Success 200 {object} response.APIResponse
// @Router /calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	filter, err := enum.ParseActionFilter(c.Query("filter"))
	if err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "filter", Message: err.Error()},
		}))
		return
	}

	cal, err := h.calendarService.GetCalendar(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Calendar retrieved successfully", response.NewCalendarView(cal))
}
