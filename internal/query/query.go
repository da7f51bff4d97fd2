// Package query holds the shared list-endpoint contracts: 1-based
// pagination, case-insensitive substring search, and "All"-sentinel
// equality filters.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// FilterAll is the sentinel meaning "no constraint on this field".
	FilterAll = "All"
)

// Pagination is the normalized page window of a list call.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads ?page= and ?pageSize= and clamps them to sane
// bounds.
func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize))))
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Pagination{Page: page, PageSize: size}
}

// TotalPages is ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Search adds a case-insensitive substring match across the given
// columns. An empty query leaves the statement untouched. LOWER/LIKE is
// used rather than ILIKE so the clause runs on non-Postgres engines too.
func Search(db *gorm.DB, q string, columns ...string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + strings.ToLower(q) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// Filter adds an exact-match constraint unless the value is empty or the
// "All" sentinel.
func Filter(db *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" || value == FilterAll {
		return db
	}
	return db.Where(fmt.Sprintf("%s = ?", column), value)
}
