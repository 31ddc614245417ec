package repository

import (
	"strings"

	domainRepo "github.com/LeFrancilien/dash-kangourou-nova/internal/domain/repository"
	"gorm.io/gorm"
)

// QuoteFilterScope returns a GORM scope applying the quote filter.
// Search is matched case-insensitively with LOWER/LIKE so the same query
// runs on PostgreSQL and SQLite.
func QuoteFilterScope(params *domainRepo.QuoteFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		if params.Status != nil {
			db = db.Where("status = ?", *params.Status)
		}
		if params.AgencyID != nil {
			db = db.Where("agency_id = ?", *params.AgencyID)
		}
		if len(params.ExcludeStatuses) > 0 {
			db = db.Where("status NOT IN ?", params.ExcludeStatuses)
		}
		if params.ReceivedFrom != nil {
			db = db.Where("received_at >= ?", *params.ReceivedFrom)
		}
		if s := strings.TrimSpace(params.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			db = db.Where(
				"LOWER(number) LIKE ? OR LOWER(client_first_name) LIKE ? OR LOWER(client_last_name) LIKE ? OR LOWER(client_email) LIKE ?",
				like, like, like, like,
			)
		}
		return db
	}
}
