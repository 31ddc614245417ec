package repository

import (
	"context"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	"github.com/google/uuid"
)

// AgencyRepository defines the interface for the agency directory
type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	GetByName(ctx context.Context, name string) (*entity.Agency, error)
	List(ctx context.Context) ([]entity.Agency, error)
}
