package repositories

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// sortColumns is the allowlist of columns a listing may be ordered by.
// Request input is only ever used as a key into this map; the query is built
// from the map value.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// SortColumns returns the allowlisted sort columns.
func SortColumns() []string {
	return slices.Sorted(maps.Keys(sortColumns))
}

// InvalidSortColumnError is returned when sort_by is not allowlisted.
type InvalidSortColumnError struct {
	Column string
}

func (e *InvalidSortColumnError) Error() string {
	return fmt.Sprintf("Invalid sort column: %s", e.Column)
}

// InvalidSortOrderError is returned when sort_order is neither asc nor desc.
type InvalidSortOrderError struct {
	Order string
}

func (e *InvalidSortOrderError) Error() string {
	return fmt.Sprintf("Invalid sort order: %s", e.Order)
}

// InvalidFilterValueError is returned when a filter value cannot be parsed.
type InvalidFilterValueError struct {
	Param string
	Value string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("Invalid %s value: %s", e.Param, e.Value)
}

// ListParams are the raw listing parameters taken from the query string.
type ListParams struct {
	Name      string
	IsActive  string
	SortBy    string
	SortOrder string
	PerPage   string
	Page      string
}

// Pagination bounds the page size accepted by NewProductQuery.
type Pagination struct {
	DefaultPerPage int
	MaxPerPage     int
}

// DefaultPagination is used when no pagination settings are configured.
var DefaultPagination = Pagination{DefaultPerPage: DefaultPerPage, MaxPerPage: MaxPerPage}

// ProductQuery is a validated listing query.
type ProductQuery struct {
	Name     string
	IsActive *bool
	SortBy   string
	Desc     bool
	PerPage  int
	Page     int
}

// Offset returns the number of rows skipped before the current page.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// NewProductQuery validates params and resolves defaults.
func NewProductQuery(params ListParams, pg Pagination) (ProductQuery, error) {
	q := ProductQuery{
		Name:    strings.TrimSpace(params.Name),
		SortBy:  "id",
		PerPage: pg.DefaultPerPage,
		Page:    1,
	}

	if params.IsActive != "" {
		active, err := strconv.ParseBool(strings.ToLower(params.IsActive))
		if err != nil || !isBoolLiteral(params.IsActive) {
			return ProductQuery{}, &InvalidFilterValueError{Param: "is_active", Value: params.IsActive}
		}
		q.IsActive = &active
	}

	if params.SortBy != "" {
		column, ok := sortColumns[params.SortBy]
		if !ok {
			return ProductQuery{}, &InvalidSortColumnError{Column: params.SortBy}
		}
		q.SortBy = column
	}

	switch strings.ToLower(params.SortOrder) {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		return ProductQuery{}, &InvalidSortOrderError{Order: params.SortOrder}
	}

	if n, err := strconv.Atoi(params.PerPage); err == nil && n > 0 {
		q.PerPage = min(n, pg.MaxPerPage)
	}
	if n, err := strconv.Atoi(params.Page); err == nil && n > 0 {
		// Pages beyond this one are all empty; the cap keeps Offset from overflowing.
		q.Page = min(n, math.MaxInt/max(q.PerPage, 1))
	}
	return q, nil
}

func isBoolLiteral(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "1", "0":
		return true
	}
	return false
}
