package services

import (
	"errors"

	"games_catalog/internal/query"
)

var (
	ErrNameNotUnique  = errors.New("username is already taken")
	ErrAuthentication = errors.New("invalid username or password")
	ErrUnknownUser    = errors.New("unknown user")
)

// Page is one page of a larger, already ordered result.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

func newPage[T any](items []T, page, size int) (Page[T], error) {
	if size < 1 {
		return Page[T]{}, query.ErrInvalidPageSize
	}

	return Page[T]{
		Items: query.Paginate(items, page, size),
		Page:  page,
		Pages: query.TotalPages(len(items), size),
		Size:  size,
		Total: len(items),
	}, nil
}
