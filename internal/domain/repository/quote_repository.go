package repository

import (
	"context"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote data operations.
// Implementations report driver failures as store_unavailable errors.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID returns nil, nil when no quote has this id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, error)
	Page(ctx context.Context, params *QuoteFilterParams, page *pagination.PaginationParams) ([]entity.Quote, int64, error)
	// Update applies every column of the patch in a single statement and
	// returns the stored quote, or nil, nil when no quote has this id
	Update(ctx context.Context, id uuid.UUID, patch *entity.QuotePatch) (*entity.Quote, error)
	NextNumber(ctx context.Context) (int, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Status          *enum.QuoteStatus
	AgencyID        *uuid.UUID
	ExcludeStatuses []enum.QuoteStatus
	// Search matches number, client names and email, case-insensitively
	Search       string
	ReceivedFrom *time.Time
}

// OpenQuotes selects the quotes still in follow-up
func OpenQuotes() *QuoteFilterParams {
	return &QuoteFilterParams{
		ExcludeStatuses: []enum.QuoteStatus{enum.QuoteStatusConverted, enum.QuoteStatusLost},
	}
}
