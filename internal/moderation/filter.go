package moderation

import (
	"fmt"
	"strings"

	"ismaalAdmin/internal/models"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterPending  Filter = "pending"
	FilterApproved Filter = "approved"
	FilterRejected Filter = "rejected"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterApproved, FilterRejected}

// ParseFilter is case-insensitive; an empty value means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// Match compares statuses case-insensitively. ACTIVE counts as approved and
// a missing status counts as pending.
func (f Filter) Match(s models.Submission) bool {
	status := s.EffectiveStatus()
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return status == models.StatusPending
	case FilterApproved:
		return status == models.StatusApproved || status == models.StatusActive
	case FilterRejected:
		return status == models.StatusRejected
	}
	return false
}

// Apply returns the matching submissions in their original order.
func (f Filter) Apply(items []models.Submission) []models.Submission {
	out := make([]models.Submission, 0, len(items))
	for _, s := range items {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// FilterCounts backs the stats cards above the submissions table.
type FilterCounts struct {
	All      int `json:"all"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func Counts(items []models.Submission) FilterCounts {
	c := FilterCounts{All: len(items)}
	for _, s := range items {
		switch {
		case FilterPending.Match(s):
			c.Pending++
		case FilterApproved.Match(s):
			c.Approved++
		case FilterRejected.Match(s):
			c.Rejected++
		}
	}
	return c
}
