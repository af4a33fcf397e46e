package service

import (
	"math"

	"msdsapi/internal/repository"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// Page is one page of a listing.
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// NormalizePage forces page >= 1 and clamps perPage to [1, MaxPerPage]. Page is capped so
// the row offset still fits in an int; pages that far out are simply empty.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}
	return page, perPage
}

func pageQuery(page, perPage int) repository.PageQuery {
	return repository.PageQuery{Limit: perPage, Offset: (page - 1) * perPage}
}
