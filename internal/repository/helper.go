package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 50
)

// sortColumns maps API sort fields to column names
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"likesCount": "likes_count",
	"nickname":   "nickname",
	"category":   "category",
}

// PageVerify clamps page and limit into the accepted range.
func PageVerify(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit <= 0 {
		*limit = DefaultPageLimit
	}
	if *limit > MaxPageLimit {
		*limit = MaxPageLimit
	}
}

// SortColumn returns the column for an API sort field, defaulting to created_at.
func SortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return "created_at"
}

// ParseSort splits "field:dir". Anything but "asc" sorts descending.
func ParseSort(sort string) (field string, desc bool) {
	field, dir, _ := strings.Cut(sort, ":")
	if field == "" {
		field = "createdAt"
	}
	return field, dir != "asc"
}

// IsDuplicateKey reports whether err is a unique constraint violation from any supported dialect.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
