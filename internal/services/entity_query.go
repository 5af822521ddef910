package services

import (
	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

// EntityQuery is the search and paging state of an entity table.
type EntityQuery struct {
	Q       string
	Page    int
	PerPage int
}

type searchable interface {
	Matches(q string) bool
}

// pageOf filters items by q and windows the result.
func pageOf[T searchable](items []T, q EntityQuery) moderation.Page[T] {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if item.Matches(q.Q) {
			matched = append(matched, item)
		}
	}
	perPage := q.PerPage
	if !moderation.ValidPerPage(perPage) {
		perPage = moderation.DefaultPerPage
	}
	return moderation.Paginate(matched, q.Page, perPage)
}

func requireID(id models.EntityID) error {
	if id.IsZero() {
		return ErrMissingID
	}
	return id.Validate()
}
