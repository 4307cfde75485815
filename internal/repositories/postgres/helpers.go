package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// sortableColumns guards ORDER BY input; anything else falls back to the
// caller's default column.
var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"version":      true,
	"test_type":    true,
	"status":       true,
	"completed_at": true,
}

func applySorting(query *gorm.DB, sortBy, sortOrder, defaultColumn string) *gorm.DB {
	column := defaultColumn
	if sortableColumns[sortBy] {
		column = sortBy
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", column, order))
}
