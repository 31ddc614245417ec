package repository

import (
	"context"
	"errors"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type agencyRepository struct {
	db *gorm.DB
}

// NewAgencyRepository creates a new agency repository
func NewAgencyRepository(db *gorm.DB) domainRepo.AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	if err := r.db.WithContext(ctx).Create(agency).Error; err != nil {
		return apperror.NewStoreUnavailableError(err)
	}
	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *agencyRepository) GetByName(ctx context.Context, name string) (*entity.Agency, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *agencyRepository) List(ctx context.Context) ([]entity.Agency, error) {
	var agencies []entity.Agency
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&agencies).Error; err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}
	return agencies, nil
}

func (r *agencyRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Agency, error) {
	var agency entity.Agency
	err := r.db.WithContext(ctx).First(&agency, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}
	return &agency, nil
}
