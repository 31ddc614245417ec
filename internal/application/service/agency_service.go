package service

import (
	"context"
	"strings"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
)

// AgencyService exposes the agency directory
type AgencyService struct {
	agencyRepo repository.AgencyRepository
}

// NewAgencyService creates a new agency service
func NewAgencyService(agencyRepo repository.AgencyRepository) *AgencyService {
	return &AgencyService{agencyRepo: agencyRepo}
}

// ListAgencies returns every agency sorted by name
func (s *AgencyService) ListAgencies(ctx context.Context) ([]entity.Agency, error) {
	return s.agencyRepo.List(ctx)
}

// SeedAgencies creates the named agencies that do not exist yet and returns
// how many were created
func (s *AgencyService) SeedAgencies(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		existing, err := s.agencyRepo.GetByName(ctx, name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if err := s.agencyRepo.Create(ctx, &entity.Agency{Name: name}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
