package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/enum"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/google/uuid"
)

type quoteRepository struct {
	s *Store
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	now := r.s.now()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = now
	}
	if quote.UpdatedAt.IsZero() {
		quote.UpdatedAt = now
	}
	if quote.Status == "" {
		quote.Status = enum.QuoteStatusReceived
	}
	r.s.quotes = append(r.s.quotes, cloneQuote(*quote))
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.quoteIndex(id)
	if i < 0 {
		return nil, nil
	}
	q := r.s.withAgency(r.s.quotes[i])
	return &q, nil
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filter(params), nil
}

func (r *quoteRepository) Page(ctx context.Context, params *domainRepo.QuoteFilterParams, page *pagination.PaginationParams) ([]entity.Quote, int64, error) {
	if err := alive(ctx); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.s.filter(params)
	page.Validate()
	start, end := page.Window(len(all))
	return all[start:end], int64(len(all)), nil
}

// Update applies the patch under the write lock, so readers never observe
// a partially applied patch
func (r *quoteRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.QuotePatch) (*entity.Quote, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.quoteIndex(id)
	if i < 0 {
		return nil, nil
	}
	patch.ApplyTo(&r.s.quotes[i])
	q := r.s.withAgency(r.s.quotes[i])
	return &q, nil
}

func (r *quoteRepository) NextNumber(ctx context.Context) (int, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.quotes) + 1, nil
}

func (s *Store) quoteIndex(id uuid.UUID) int {
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) withAgency(q entity.Quote) entity.Quote {
	c := cloneQuote(q)
	for i := range s.agencies {
		if s.agencies[i].ID == q.AgencyID {
			a := s.agencies[i]
			c.Agency = &a
			break
		}
	}
	return c
}

// filter mirrors the SQL scope: same predicates, newest reception first
func (s *Store) filter(params *domainRepo.QuoteFilterParams) []entity.Quote {
	out := make([]entity.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		if matches(&q, params) {
			out = append(out, s.withAgency(q))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ReceivedAt, out[j].ReceivedAt
		switch {
		case a == nil || b == nil:
			// undated quotes sort first, as NULLs do in a descending PostgreSQL order
			if (a == nil) != (b == nil) {
				return a == nil
			}
		case !a.Equal(*b):
			return a.After(*b)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matches(q *entity.Quote, p *domainRepo.QuoteFilterParams) bool {
	if p == nil {
		return true
	}
	if p.Status != nil && q.Status != *p.Status {
		return false
	}
	if p.AgencyID != nil && q.AgencyID != *p.AgencyID {
		return false
	}
	for _, st := range p.ExcludeStatuses {
		if q.Status == st {
			return false
		}
	}
	if p.ReceivedFrom != nil && (q.ReceivedAt == nil || q.ReceivedAt.Before(*p.ReceivedFrom)) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(p.Search)); s != "" {
		fields := []string{q.Number, q.ClientFirstName, q.ClientLastName, q.ClientEmail}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), s) {
				return true
			}
		}
		return false
	}
	return true
}
