package service

import (
	"context"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/schedule"
)

// CalendarService derives the follow-up calendar
type CalendarService struct {
	quoteRepo repository.QuoteRepository
	now       Clock
}

// NewCalendarService creates a new calendar service
func NewCalendarService(quoteRepo repository.QuoteRepository, now Clock) *CalendarService {
	return &CalendarService{quoteRepo: quoteRepo, now: now}
}

// Calendar is the filtered action list plus counters over all actions
type Calendar struct {
	Filter  enum.ActionFilter
	Actions []schedule.Action
	Counts  schedule.Counts
}

// GetCalendar recomputes the actions of every open quote
func (s *CalendarService) GetCalendar(ctx context.Context, filter enum.ActionFilter) (*Calendar, error) {
	quotes, err := s.quoteRepo.List(ctx, repository.OpenQuotes())
	if err != nil {
		return nil, err
	}

	actions := schedule.DeriveActions(quotes, s.now())
	return &Calendar{
		Filter:  filter,
		Actions: schedule.Filter(actions, filter),
		Counts:  schedule.Count(actions),
	}, nil
}
