package handler

import (
	"net/http"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/application/service"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/lifecycle"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/request"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/presentation/http/dto/response"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
	now          service.Clock
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, now service.Clock) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, now: now}
}

// List handles listing quotes
// @Summary List Quotes
// @Description Get quotes with pagination and filtering, newest reception first
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Status filter"
// @Param agency_id query string false "Agency filter"
// @Param search query string false "Search term"
// @Param received_from query string false "Earliest reception date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	input, ok := h.listInput(c)
	if !ok {
		return
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Quotes retrieved successfully", response.NewQuotePage(result, h.now()))
}

// Export streams the filtered quote list as an XLSX workbook
// @Summary Export Quotes
// @Tags quotes
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /quotes/export [get]
func (h *QuoteHandler) Export(c *gin.Context) {
	input, ok := h.listInput(c)
	if !ok {
		return
	}

	quotes, err := h.quoteService.ExportQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	now := h.now()
	book, err := newQuoteWorkbook(quotes, now.Location())
	if err != nil {
		response.Error(c, err)
		return
	}
	defer book.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename(now)+`"`)
	c.Status(http.StatusOK)
	if err := book.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Get handles getting a single quote
// @Summary Get Quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", response.NewQuoteView(quote, h.now()))
}

// Create handles quote creation
// @Summary Create Quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateQuoteRequest true "Quote data"
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	agencyID, err := requireUUID("agency_id", req.AgencyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	now := h.now()
	receivedAt, err := parseReceivedAt(req.ReceivedAt, now.Location())
	if err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "received_at", Message: err.Error()},
		}))
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		Number:          req.Number,
		ClientFirstName: req.ClientFirstName,
		ClientLastName:  req.ClientLastName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ClientCommune:   req.ClientCommune,
		Amount:          req.Amount,
		AgencyID:        agencyID,
		ReceivedAt:      receivedAt,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", response.NewQuoteView(quote, now))
}

// Transition returns a handler applying t to the quote in the path
// @Summary Record a follow-up step
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /quotes/{id}/{step} [post]
func (h *QuoteHandler) Transition(t enum.Transition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id", "quote")
		if !ok {
			return
		}

		quote, err := h.quoteService.Transition(c.Request.Context(), id, lifecycle.Command{Transition: t})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Quote updated successfully", response.NewQuoteView(quote, h.now()))
	}
}

// SendEmailJ4 emails the J+4 follow-up and records it
// @Summary Send J+4 Email
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /quotes/{id}/email-j4 [post]
func (h *QuoteHandler) SendEmailJ4(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.SendEmailJ4(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "J+4 email sent", response.NewQuoteView(quote, h.now()))
}

// SaveNotes replaces the notes of a quote
// @Summary Save Notes
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.SaveNotesRequest true "Notes"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/notes [put]
func (h *QuoteHandler) SaveNotes(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	var req request.SaveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	quote, err := h.quoteService.Transition(c.Request.Context(), id, lifecycle.Command{
		Transition: enum.TransitionSaveNotes,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes saved", response.NewQuoteView(quote, h.now()))
}

// Move handles a kanban drop
// @Summary Move Quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.MoveQuoteRequest true "Target status"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /quotes/{id}/status [put]
func (h *QuoteHandler) Move(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	var req request.MoveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// unknown statuses are refused by the decoder
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: err.Error()},
		}))
		return
	}

	quote, err := h.quoteService.MoveTo(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote moved", response.NewQuoteView(quote, h.now()))
}

func (h *QuoteHandler) listInput(c *gin.Context) (*service.ListQuotesInput, bool) {
	var filter request.QuoteFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}

	input := &service.ListQuotesInput{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Status != "" {
		status, err := enum.ParseQuoteStatus(filter.Status)
		if err != nil {
			response.Error(c, apperror.NewValidationError([]apperror.FieldError{
				{Field: "status", Message: err.Error()},
			}))
			return nil, false
		}
		input.Status = &status
	}

	agencyID, err := parseOptionalUUID(filter.AgencyID)
	if err != nil {
		response.BadRequest(c, "Invalid agency ID")
		return nil, false
	}
	input.AgencyID = agencyID

	receivedFrom, err := parseReceivedAt(filter.ReceivedFrom, h.now().Location())
	if err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "received_from", Message: err.Error()},
		}))
		return nil, false
	}
	input.ReceivedFrom = receivedFrom

	return input, true
}
