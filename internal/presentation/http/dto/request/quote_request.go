package request

import (
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
)

// CreateQuoteRequest represents a quote creation request
type CreateQuoteRequest struct {
	Number          string   `json:"number" binding:"omitempty,max=50"`
	ClientFirstName string   `json:"client_first_name" binding:"omitempty,max=255"`
	ClientLastName  string   `json:"client_last_name" binding:"omitempty,max=255"`
	ClientEmail     string   `json:"client_email" binding:"omitempty,email,max=255"`
	ClientPhone     *string  `json:"client_phone" binding:"omitempty,max=50"`
	ClientCommune   *string  `json:"client_commune" binding:"omitempty,max=255"`
	Amount          *float64 `json:"amount" binding:"omitempty,min=0"`
	AgencyID        string   `json:"agency_id" binding:"required,uuid"`
	// ReceivedAt accepts YYYY-MM-DD or RFC 3339; empty means now
	ReceivedAt string  `json:"received_at"`
	Notes      *string `json:"notes"`
}

// SaveNotesRequest replaces the notes of a quote
type SaveNotesRequest struct {
	Notes string `json:"notes" binding:"max=10000"`
}

// MoveQuoteRequest is a kanban drop. Unknown statuses fail to decode.
type MoveQuoteRequest struct {
	Status enum.QuoteStatus `json:"status" binding:"required"`
}

// QuoteFilterRequest represents quote list query parameters
type QuoteFilterRequest struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Status   string `form:"status"`
	AgencyID string `form:"agency_id"`
	Search   string `form:"search"`

	// ReceivedFrom keeps quotes received on or after this date
	ReceivedFrom string `form:"received_from"`
}
