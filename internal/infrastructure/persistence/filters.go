package persistence

import (
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// applyPagination applies ordering and pagination from a shared.Filter.
// The sort field is validated against the given whitelist.
func applyPagination(query *gorm.DB, filter shared.Filter, allowedSort map[string]bool) *gorm.DB {
	sortField := ValidateSortField(filter.OrderBy, allowedSort, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
