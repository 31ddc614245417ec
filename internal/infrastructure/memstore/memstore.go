// Package memstore keeps quotes and agencies in process memory. It backs
// local runs and service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
)

// Store holds both collections behind one lock so that quotes can resolve
// their agency the way a join would.
type Store struct {
	mu       sync.RWMutex
	quotes   []entity.Quote
	agencies []entity.Agency
	now      func() time.Time
}

// New returns an empty store
func New() *Store {
	return &Store{now: time.Now}
}

// Quotes exposes the store as a quote repository
func (s *Store) Quotes() domainRepo.QuoteRepository {
	return &quoteRepository{s: s}
}

// Agencies exposes the store as an agency directory
func (s *Store) Agencies() domainRepo.AgencyRepository {
	return &agencyRepository{s: s}
}

// alive reports a cancelled or expired request the way a driver timeout is reported
func alive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewStoreUnavailableError(err)
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneQuote(q entity.Quote) entity.Quote {
	c := q
	c.ClientPhone = cloneString(q.ClientPhone)
	c.ClientCommune = cloneString(q.ClientCommune)
	c.Notes = cloneString(q.Notes)
	if q.Amount != nil {
		a := *q.Amount
		c.Amount = &a
	}
	c.ReceivedAt = cloneTime(q.ReceivedAt)
	c.ReminderJ2At = cloneTime(q.ReminderJ2At)
	c.EmailJ4At = cloneTime(q.EmailJ4At)
	c.CallJ0At = cloneTime(q.CallJ0At)
	c.CallJ2At = cloneTime(q.CallJ2At)
	c.ContactAt = cloneTime(q.ContactAt)
	c.ConvertedAt = cloneTime(q.ConvertedAt)
	c.Agency = nil
	return c
}
