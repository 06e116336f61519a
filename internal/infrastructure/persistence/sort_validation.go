package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"first_name":    true,
	"last_name":     true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// ItemSortFields contains allowed sort fields for catalog items
var ItemSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"sku":              true,
	"name":             true,
	"category":         true,
	"retail_price":     true,
	"quantity_on_hand": true,
}

// OrderSortFields contains allowed sort fields for channel orders
var OrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"placed_at":  true,
	"total":      true,
	"status":     true,
}
