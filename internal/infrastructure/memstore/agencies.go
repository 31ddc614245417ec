package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/google/uuid"
)

type agencyRepository struct {
	s *Store
}

func (r *agencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.agencies {
		if a.Name == agency.Name {
			return apperror.NewStoreUnavailableError(fmt.Errorf("agency %q already exists", agency.Name))
		}
	}
	if agency.ID == uuid.Nil {
		agency.ID = uuid.New()
	}
	now := r.s.now()
	agency.CreatedAt = now
	agency.UpdatedAt = now
	r.s.agencies = append(r.s.agencies, *agency)
	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	return r.find(ctx, func(a *entity.Agency) bool { return a.ID == id })
}

func (r *agencyRepository) GetByName(ctx context.Context, name string) (*entity.Agency, error) {
	return r.find(ctx, func(a *entity.Agency) bool { return a.Name == name })
}

func (r *agencyRepository) List(ctx context.Context) ([]entity.Agency, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Agency, len(r.s.agencies))
	copy(out, r.s.agencies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *agencyRepository) find(ctx context.Context, match func(*entity.Agency) bool) (*entity.Agency, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for i := range r.s.agencies {
		if match(&r.s.agencies[i]) {
			a := r.s.agencies[i]
			return &a, nil
		}
	}
	return nil, nil
}
