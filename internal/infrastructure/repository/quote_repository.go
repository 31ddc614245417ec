package repository

import (
	"context"
	"errors"

	"github.com/LeFrancilien/dash-kangourou-nova/internal/domain/entity"
	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/apperror"
	"github.com/LeFrancilien/dash-kangourou-nova/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	if err := r.db.WithContext(ctx).Omit("Agency").Create(quote).Error; err != nil {
		return apperror.NewStoreUnavailableError(err)
	}
	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Preload("Agency").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}
	return &quote, nil
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, error) {
	var quotes []entity.Quote
	err := r.db.WithContext(ctx).
		Scopes(QuoteFilterScope(params)).
		Preload("Agency").
		Order("received_at DESC, created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}
	return quotes, nil
}

func (r *quoteRepository) Page(ctx context.Context, params *domainRepo.QuoteFilterParams, page *pagination.PaginationParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entity.Quote{}).Scopes(QuoteFilterScope(params))
	}
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, apperror.NewStoreUnavailableError(err)
	}

	page.Validate()
	err := query().Offset(page.Offset()).Limit(page.PerPage).
		Preload("Agency").
		Order("received_at DESC, created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, 0, apperror.NewStoreUnavailableError(err)
	}
	return quotes, total, nil
}

func (r *quoteRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.QuotePatch) (*entity.Quote, error) {
	res := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	if res.Error != nil {
		return nil, apperror.NewStoreUnavailableError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// NextNumber counts existing quotes; numbers are unique per organization only
func (r *quoteRepository) NextNumber(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Quote{}).Count(&count).Error; err != nil {
		return 0, apperror.NewStoreUnavailableError(err)
	}
	return int(count) + 1, nil
}
