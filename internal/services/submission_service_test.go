package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/session"
)

type stubSubmissionAPI struct {
	mu       sync.Mutex
	records  map[models.SubmissionType][]json.RawMessage
	fetches  int
	moderate []models.SubmissionKey
	deletes  []models.SubmissionKey

	// when set, the next moderation call signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (s *stubSubmissionAPI) PendingSubmissions(ctx context.Context, t models.SubmissionType) ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.records[t], nil
}

func (s *stubSubmissionAPI) ModerateSubmission(ctx context.Context, key models.SubmissionKey, decision models.SubmissionStatus, notes string) error {
	s.mu.Lock()
	s.moderate = append(s.moderate, key)
	started, release := s.started, s.release
	s.started, s.release = nil, nil
	s.mu.Unlock()

	if started != nil {
		close(started)
		<-release
	}
	return nil
}

func (s *stubSubmissionAPI) DeleteSubmission(ctx context.Context, key models.SubmissionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	return nil
}

func (s *stubSubmissionAPI) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func productRecords(n int) []json.RawMessage {
	out := make([]json.RawMessage, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, json.RawMessage(fmt.Sprintf(
			`{"id":%d,"name":"Item %d","status":"PENDING","createdAt":"2024-01-%02dT10:00:00Z"}`, i, i, i)))
	}
	return out
}

func newSubmissionFixture(n int) (*SubmissionService, *stubSubmissionAPI, *session.MemoryAudit) {
	api := &stubSubmissionAPI{records: map[models.SubmissionType][]json.RawMessage{
		models.SubmissionProduct: productRecords(n),
	}}
	audit := session.NewMemoryAudit()
	return NewSubmissionService(api, audit, 5, nil), api, audit
}

const admin = models.EntityID("7")

func TestSubmissionListLoadsOnceUntilRefresh(t *testing.T) {
	svc, api, _ := newSubmissionFixture(3)
	ctx := context.Background()

	page, err := svc.List(ctx, admin, SubmissionQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 3 || page.Counts.Pending != 3 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Key.ID != "3" {
		t.Fatalf("expected newest first, got %s", page.Items[0].Key)
	}

	types := len(models.SubmissionTypes())
	if _, err := svc.List(ctx, admin, SubmissionQuery{}); err != nil {
		t.Fatal(err)
	}
	if got := api.fetchCount(); got != types {
		t.Fatalf("expected one fetch per type, got %d", got)
	}

	if _, err := svc.List(ctx, admin, SubmissionQuery{Refresh: true}); err != nil {
		t.Fatal(err)
	}
	if got := api.fetchCount(); got != 2*types {
		t.Fatalf("refresh should fetch again, got %d", got)
	}

	// another admin has its own board
	if _, err := svc.List(ctx, "8", SubmissionQuery{}); err != nil {
		t.Fatal(err)
	}
	if got := api.fetchCount(); got != 3*types {
		t.Fatalf("expected a separate load for a second admin, got %d", got)
	}
}

func TestSubmissionListPageResets(t *testing.T) {
	svc, _, _ := newSubmissionFixture(12)
	ctx := context.Background()

	page, err := svc.List(ctx, admin, SubmissionQuery{Page: 3})
	if err != nil {
		t.Fatal(err)
	}
	if page.Page.Page != 3 || page.PerPage != 5 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %d/%d items=%d", page.Page.Page, page.PerPage, len(page.Items))
	}

	page, _ = svc.List(ctx, admin, SubmissionQuery{})
	if page.Page.Page != 3 {
		t.Fatalf("page should be kept between requests, got %d", page.Page.Page)
	}

	page, _ = svc.List(ctx, admin, SubmissionQuery{Filter: "pending", Page: 3})
	if page.Page.Page != 1 || page.Filter != moderation.FilterPending {
		t.Fatalf("filter change should reset to page 1, got %d %s", page.Page.Page, page.Filter)
	}

	svc.List(ctx, admin, SubmissionQuery{Page: 2})
	page, _ = svc.List(ctx, admin, SubmissionQuery{PerPage: 10})
	if page.Page.Page != 1 || page.TotalPages != 2 {
		t.Fatalf("page size change should reset to page 1, got %+v", page.Page.Page)
	}

	if _, err := svc.List(ctx, admin, SubmissionQuery{PerPage: 7}); err == nil {
		t.Fatal("expected an error for an unsupported page size")
	}
	if _, err := svc.List(ctx, admin, SubmissionQuery{Filter: "archived"}); err == nil {
		t.Fatal("expected an error for an unknown filter")
	}
}

func TestSubmissionDecisionsAreAudited(t *testing.T) {
	svc, api, audit := newSubmissionFixture(2)
	ctx := context.Background()

	var (
		mu     sync.Mutex
		events []moderation.Event
	)
	svc.OnEvent(func(adminID models.EntityID, ev moderation.Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	key := models.SubmissionKey{Type: models.SubmissionProduct, ID: "1"}
	sub, err := svc.Approve(ctx, admin, key, "looks fine")
	if err != nil {
		t.Fatal(err)
	}
	if sub.EffectiveStatus() != models.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", sub.Status)
	}
	if err := svc.Delete(ctx, admin, models.SubmissionKey{Type: models.SubmissionProduct, ID: "2"}); err != nil {
		t.Fatal(err)
	}

	page, _ := svc.List(ctx, admin, SubmissionQuery{})
	if page.TotalItems != 1 || page.Counts.Approved != 1 {
		t.Fatalf("unexpected held list %+v", page.Counts)
	}
	if len(api.moderate) != 1 || len(api.deletes) != 1 {
		t.Fatalf("unexpected upstream calls %v %v", api.moderate, api.deletes)
	}

	entries, _ := audit.Recent(ctx, 10)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0].Action != "delete" || entries[1].Action != "approve" {
		t.Fatalf("unexpected audit order %+v", entries)
	}
	if entries[1].AdminID != admin || entries[1].Notes != "looks fine" || entries[1].To != models.StatusApproved {
		t.Fatalf("unexpected approve entry %+v", entries[1])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 || events[0].Kind != moderation.EventStatusChanged || events[1].Kind != moderation.EventDeleted {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestSubmissionGetUnknownKey(t *testing.T) {
	svc, _, _ := newSubmissionFixture(1)
	_, err := svc.Get(context.Background(), admin, models.SubmissionKey{Type: models.SubmissionBusiness, ID: "1"})
	if err != moderation.ErrSubmissionNotFound {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestReapIdleBoards(t *testing.T) {
	svc, api, _ := newSubmissionFixture(1)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.List(ctx, admin, SubmissionQuery{})
	now = now.Add(20 * time.Minute)
	svc.List(ctx, "8", SubmissionQuery{})
	now = now.Add(15 * time.Minute)

	if n := svc.ReapIdle(30 * time.Minute); n != 1 {
		t.Fatalf("expected one idle board, got %d", n)
	}

	before := api.fetchCount()
	svc.List(ctx, admin, SubmissionQuery{})
	if api.fetchCount() == before {
		t.Fatal("reaped board should be loaded again")
	}
}

func TestBoardsWithRunningCallsAreKept(t *testing.T) {
	svc, api, _ := newSubmissionFixture(1)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.List(ctx, admin, SubmissionQuery{}); err != nil {
		t.Fatal(err)
	}
	fetched := api.fetchCount()

	started, release := make(chan struct{}), make(chan struct{})
	api.mu.Lock()
	api.started, api.release = started, release
	api.mu.Unlock()

	key := models.SubmissionKey{Type: models.SubmissionProduct, ID: "1"}
	done := make(chan error, 1)
	go func() {
		_, err := svc.Approve(ctx, admin, key, "")
		done <- err
	}()
	<-started

	svc.Forget(admin)
	if n := svc.ReapIdle(-time.Minute); n != 0 {
		t.Fatalf("board with a running call was reaped (%d)", n)
	}
	if _, err := svc.Reject(ctx, admin, key, ""); !errors.Is(err, moderation.ErrInFlight) {
		t.Fatalf("expected ErrInFlight for a duplicate call, got %v", err)
	}
	if api.fetchCount() != fetched {
		t.Fatal("board should not have been reloaded")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("approve: %v", err)
	}
	if n := svc.ReapIdle(-time.Minute); n != 1 {
		t.Fatalf("expected the idle board to be reaped, got %d", n)
	}
}
