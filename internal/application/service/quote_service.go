package service

import (
	"context"
	"strings"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/lifecycle"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/email"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/utils"
	"github.com/google/uuid"
)

// QuoteService handles quote-related operations
type QuoteService struct {
	quoteRepo  repository.QuoteRepository
	agencyRepo repository.AgencyRepository
	mailer     email.Sender
	now        Clock
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	agencyRepo repository.AgencyRepository,
	mailer email.Sender,
	now Clock,
) *QuoteService {
	return &QuoteService{
		quoteRepo:  quoteRepo,
		agencyRepo: agencyRepo,
		mailer:     mailer,
		now:        now,
	}
}

// ListQuotesInput represents the table view query
type ListQuotesInput struct {
	Pagination   *pagination.PaginationParams
	Status       *enum.QuoteStatus
	AgencyID     *uuid.UUID
	Search       string
	ReceivedFrom *time.Time
}

func (in *ListQuotesInput) filter() *repository.QuoteFilterParams {
	return &repository.QuoteFilterParams{
		Status:       in.Status,
		AgencyID:     in.AgencyID,
		Search:       in.Search,
		ReceivedFrom: in.ReceivedFrom,
	}
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	Number          string
	ClientFirstName string
	ClientLastName  string
	ClientEmail     string
	ClientPhone     *string
	ClientCommune   *string
	Amount          *float64
	AgencyID        uuid.UUID
	ReceivedAt      *time.Time
	Notes           *string
}

// ListQuotes returns a page of quotes, newest reception first
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	quotes, total, err := s.quoteRepo.Page(ctx, input.filter(), input.Pagination)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, p), nil
}

// ExportQuotes returns every quote matching the table filters, unpaginated
func (s *QuoteService) ExportQuotes(ctx context.Context, input *ListQuotesInput) ([]entity.Quote, error) {
	return s.quoteRepo.List(ctx, input.filter())
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// CreateQuote registers a newly received quote
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.ClientLastName) == "" && strings.TrimSpace(input.ClientEmail) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client_last_name", Message: "client name or email is required"})
	}
	if input.AgencyID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "agency_id", Message: "agency is required"})
	}
	if input.Amount != nil && *input.Amount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	agency, err := s.agencyRepo.GetByID(ctx, input.AgencyID)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "agency_id", Message: "unknown agency"},
		})
	}

	number := strings.TrimSpace(input.Number)
	if number == "" {
		next, err := s.quoteRepo.NextNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = utils.FormatQuoteNumber("DV", next)
	}

	now := s.now()
	receivedAt := input.ReceivedAt
	if receivedAt == nil {
		receivedAt = &now
	}

	quote := &entity.Quote{
		Number:          number,
		ClientFirstName: strings.TrimSpace(input.ClientFirstName),
		ClientLastName:  strings.TrimSpace(input.ClientLastName),
		ClientEmail:     strings.TrimSpace(input.ClientEmail),
		ClientPhone:     input.ClientPhone,
		ClientCommune:   input.ClientCommune,
		Amount:          input.Amount,
		AgencyID:        agency.ID,
		ReceivedAt:      receivedAt,
		Status:          enum.QuoteStatusReceived,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, quote.ID)
}

// Transition applies a lifecycle transition and persists the result.
// A rejected transition writes nothing.
func (s *QuoteService) Transition(ctx context.Context, id uuid.UUID, cmd lifecycle.Command) (*entity.Quote, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := lifecycle.Apply(quote, cmd, s.now())
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, id, patch)
}

// MoveTo handles a kanban drop onto the target status column
func (s *QuoteService) MoveTo(ctx context.Context, id uuid.UUID, target enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := lifecycle.MoveTo(quote, target, s.now())
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, id, patch)
}

// SendEmailJ4 emails the J+4 follow-up to the client and records it.
// Nothing is recorded when the relay refuses the message.
func (s *QuoteService) SendEmailJ4(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	patch, err := lifecycle.MarkEmailJ4Sent(quote, now)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(quote.ClientEmail) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "client_email", Message: "quote has no client email"},
		})
	}

	msg := email.FollowUp{
		To:          quote.ClientEmail,
		ClientName:  quote.ClientName(),
		QuoteNumber: quote.Number,
		AgencyName:  quote.AgencyName(),
	}
	if quote.ReceivedAt != nil {
		msg.ReceivedOn = quote.ReceivedAt.In(now.Location()).Format("02/01/2006")
	}
	if err := s.mailer.SendFollowUp(msg); err != nil {
		return nil, apperror.NewDeliveryError(err)
	}

	return s.persist(ctx, id, patch)
}

func (s *QuoteService) persist(ctx context.Context, id uuid.UUID, patch *entity.QuotePatch) (*entity.Quote, error) {
	updated, err := s.quoteRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return updated, nil
}
