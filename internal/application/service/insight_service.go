package service

import (
	"context"
	"strings"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/aggregate"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/google/uuid"
)

// InsightService provides the board, client and dashboard views
type InsightService struct {
	quoteRepo  repository.QuoteRepository
	agencyRepo repository.AgencyRepository
	now        Clock
}

// NewInsightService creates a new insight service
func NewInsightService(
	quoteRepo repository.QuoteRepository,
	agencyRepo repository.AgencyRepository,
	now Clock,
) *InsightService {
	return &InsightService{
		quoteRepo:  quoteRepo,
		agencyRepo: agencyRepo,
		now:        now,
	}
}

// Dashboard represents the dashboard page
type Dashboard struct {
	Stats    aggregate.Stats
	Monthly  []aggregate.MonthSeries
	Agencies []entity.Agency
}

// GetKanban groups quotes by status, optionally for one agency
func (s *InsightService) GetKanban(ctx context.Context, agencyID *uuid.UUID) ([]aggregate.Column, error) {
	quotes, err := s.quoteRepo.List(ctx, &repository.QuoteFilterParams{AgencyID: agencyID})
	if err != nil {
		return nil, err
	}
	return aggregate.ByStatus(quotes), nil
}

// GetClients rolls quotes up per client. search narrows the result on
// name or email after aggregation, so the counters stay complete.
func (s *InsightService) GetClients(ctx context.Context, search string) ([]aggregate.Client, error) {
	quotes, err := s.quoteRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	clients := aggregate.ByClient(quotes)
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return clients, nil
	}

	out := make([]aggregate.Client, 0, len(clients))
	for _, c := range clients {
		name := strings.ToLower(c.FirstName + " " + c.LastName)
		if strings.Contains(name, needle) || strings.Contains(c.Email, needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetDashboard computes the headline figures and the monthly chart
func (s *InsightService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	agencies, err := s.agencyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quoteRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Dashboard{
		Stats:    aggregate.ComputeStats(quotes, now),
		Monthly:  aggregate.ByMonthAgency(quotes, agencies, now),
		Agencies: agencies,
	}, nil
}
