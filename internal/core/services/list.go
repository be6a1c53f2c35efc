package services

import (
	"github.com/kushalbajje/expense-management/internal/apperrors"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/utils/pagination"
)

// loadPages restores the paginator carried by params.Cursor, optionally loads
// one more page, and returns the visible window with the cursor to send back.
func loadPages[T any](items []T, params dto.ListParams, pageSize int) (pagination.Page[T], string, error) {
	total := len(items)
	p, err := pagination.DecodeCursor(params.Cursor, pageSize, total)
	if err != nil {
		return pagination.Page[T]{}, "", apperrors.NewValidationError("cursor", "Invalid pagination cursor")
	}
	if params.LoadNext {
		p.LoadNextPage(total)
	}
	return pagination.Paginate(p, items), pagination.EncodeCursor(p, total), nil
}

func pageMeta[T any](page pagination.Page[T], isSearching bool, cursor string) dto.PageMeta {
	return dto.PageMeta{
		IsSearching: isSearching,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		HasNextPage: page.HasNextPage,
		LoadedCount: page.LoadedCount,
		NextCursor:  cursor,
	}
}
