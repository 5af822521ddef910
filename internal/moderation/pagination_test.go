package moderation

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"ismaalAdmin/internal/models"
)

func TestFilterMatch(t *testing.T) {
	statuses := []string{"", "pending", "PENDING", "APPROVED", "active", "REJECTED"}
	subs := make([]models.Submission, len(statuses))
	for i, s := range statuses {
		subs[i] = models.Submission{Key: models.SubmissionKey{Type: models.SubmissionProduct, ID: models.EntityID(fmt.Sprint(i))}, Status: s}
	}

	cases := []struct {
		filter Filter
		want   int
	}{
		{FilterAll, 6},
		{FilterPending, 3},
		{FilterApproved, 2},
		{FilterRejected, 1},
	}
	for _, tc := range cases {
		if got := len(tc.filter.Apply(subs)); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.filter, got, tc.want)
		}
	}

	if got := Counts(subs); got != (FilterCounts{All: 6, Pending: 3, Approved: 2, Rejected: 1}) {
		t.Fatalf("unexpected counts %+v", got)
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterAll {
		t.Fatalf("empty: %v %v", f, err)
	}
	if f, err := ParseFilter("Approved"); err != nil || f != FilterApproved {
		t.Fatalf("Approved: %v %v", f, err)
	}
	if _, err := ParseFilter("active"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	p := Paginate(items, 3, 10)
	if !reflect.DeepEqual(p.Items, []int{21, 22, 23}) {
		t.Fatalf("items = %v", p.Items)
	}
	if p.TotalPages != 3 || p.StartItem != 21 || p.EndItem != 23 {
		t.Fatalf("unexpected page %+v", p)
	}

	p = Paginate(items, 9, 10)
	if p.Page != 3 {
		t.Fatalf("page should clamp to 3, got %d", p.Page)
	}

	p = Paginate([]int{}, 2, 10)
	if p.Page != 1 || p.TotalPages != 0 || p.StartItem != 0 || len(p.Items) != 0 {
		t.Fatalf("unexpected empty page %+v", p)
	}
}

func TestPageNumbers(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{2, 5, []int{1, 2, 3, 4, 5}},
		{1, 10, []int{1, 2, 0, 10}},
		{3, 10, []int{1, 2, 3, 4, 0, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{9, 10, []int{1, 0, 8, 9, 10}},
		{10, 10, []int{1, 0, 9, 10}},
	}
	for _, tc := range cases {
		if got := PageNumbers(tc.current, tc.total); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("PageNumbers(%d, %d) = %v, want %v", tc.current, tc.total, got, tc.want)
		}
	}
}

func TestViewResetsPage(t *testing.T) {
	v := NewView()
	v.SetPage(3)
	if _, page, _ := v.State(); page != 3 {
		t.Fatalf("page = %d", page)
	}

	if err := v.SetFilter(FilterPending); err != nil {
		t.Fatal(err)
	}
	if _, page, _ := v.State(); page != 1 {
		t.Fatalf("filter change must reset page, got %d", page)
	}

	v.SetPage(2)
	if err := v.SetPerPage(20); err != nil {
		t.Fatal(err)
	}
	if _, page, perPage := v.State(); page != 1 || perPage != 20 {
		t.Fatalf("page size change must reset page, got %d/%d", page, perPage)
	}

	if err := v.SetPerPage(7); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if err := v.SetFilter("archived"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestViewWindowClampsPage(t *testing.T) {
	var subs []models.Submission
	for i := 0; i < 12; i++ {
		subs = append(subs, models.Submission{Key: models.SubmissionKey{Type: models.SubmissionProduct, ID: models.EntityID(fmt.Sprint(i))}})
	}
	v := NewView()
	_ = v.SetPerPage(5)
	v.SetPage(10)

	p := v.Window(subs)
	if p.Page != 3 || len(p.Items) != 2 {
		t.Fatalf("unexpected window %+v", p)
	}
	if _, page, _ := v.State(); page != 3 {
		t.Fatalf("clamped page not stored, got %d", page)
	}
}
