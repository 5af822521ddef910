package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ismaalAdmin/internal/models"
)

type stubFetcher struct {
	records map[models.SubmissionType][]string
	failing map[models.SubmissionType]bool
	block   chan struct{}
}

func (s *stubFetcher) PendingSubmissions(ctx context.Context, t models.SubmissionType) ([]json.RawMessage, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.failing[t] {
		return nil, errors.New("source down")
	}
	var out []json.RawMessage
	for _, r := range s.records[t] {
		out = append(out, json.RawMessage(r))
	}
	return out, nil
}

func keys(subs []models.Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Key.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFetchAllScenario(t *testing.T) {
	f := &stubFetcher{
		records: map[models.SubmissionType][]string{
			models.SubmissionProduct:  {`{"id":1,"createdAt":"2024-01-01"}`},
			models.SubmissionBusiness: {`{"id":1,"status":"APPROVED","createdAt":"2024-02-01"}`},
		},
		failing: map[models.SubmissionType]bool{models.SubmissionPlanRequest: true},
	}

	subs, err := NewAggregator(f, nil).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := keys(subs), []string{"business:1", "product:1"}; !equalStrings(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	pending := FilterPending.Apply(subs)
	if len(pending) != 1 || pending[0].Key.Type != models.SubmissionProduct {
		t.Fatalf("pending = %v", keys(pending))
	}
	approved := FilterApproved.Apply(subs)
	if len(approved) != 1 || approved[0].Key.Type != models.SubmissionBusiness {
		t.Fatalf("approved = %v", keys(approved))
	}
}

func TestFetchAllToleratesEveryFailureCombination(t *testing.T) {
	types := models.SubmissionTypes()
	records := map[models.SubmissionType][]string{
		models.SubmissionProduct:      {`{"id":1}`},
		models.SubmissionProfessional: {`{"id":2}`},
		models.SubmissionBusiness:     {`{"id":3}`},
		models.SubmissionPlanRequest:  {`{"id":4}`},
	}

	for mask := 0; mask < 1<<len(types); mask++ {
		failing := map[models.SubmissionType]bool{}
		want := 0
		for i, typ := range types {
			if mask&(1<<i) != 0 {
				failing[typ] = true
			} else {
				want++
			}
		}
		subs, err := NewAggregator(&stubFetcher{records: records, failing: failing}, nil).FetchAll(context.Background())
		if err != nil {
			t.Fatalf("mask %04b: unexpected error %v", mask, err)
		}
		if len(subs) != want {
			t.Fatalf("mask %04b: got %d items, want %d", mask, len(subs), want)
		}
		for _, s := range subs {
			if failing[s.Key.Type] {
				t.Fatalf("mask %04b: record from failed source %s", mask, s.Key)
			}
		}
	}
}

func TestFetchAllOrdering(t *testing.T) {
	f := &stubFetcher{records: map[models.SubmissionType][]string{
		models.SubmissionProduct: {
			`{"id":"p-undated"}`,
			`{"id":"p-old","createdAt":"2023-05-01"}`,
			`{"id":"p-new","submittedDate":"2024-06-01T08:00:00Z","createdAt":"2020-01-01"}`,
		},
		models.SubmissionProfessional: {`{"id":"pro-undated","createdAt":"not a date"}`},
		models.SubmissionBusiness:     {`{"id":"b-tie","createdAt":"2023-05-01"}`},
		models.SubmissionPlanRequest:  {`{"id":"r-undated"}`, `[1,2,3]`, `{"id":"r-mid","createdAt":"2024-01-15 10:00:00"}`},
	}}

	subs, err := NewAggregator(f, nil).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"product:p-new",
		"planRequest:r-mid",
		"product:p-old",
		"business:b-tie",
		"product:p-undated",
		"professional:pro-undated",
		"planRequest:r-undated",
	}
	if got := keys(subs); !equalStrings(got, want) {
		t.Fatalf("order = %v\nwant    %v", got, want)
	}

	for i := 1; i < len(subs); i++ {
		a, aok := subs[i-1].EffectiveDate()
		b, bok := subs[i].EffectiveDate()
		if bok && (!aok || a.Before(b)) {
			t.Fatalf("items %d and %d out of order", i-1, i)
		}
	}
}

func TestFetchAllTagsPlanRequests(t *testing.T) {
	f := &stubFetcher{records: map[models.SubmissionType][]string{
		models.SubmissionPlanRequest: {`{"id":5,"currentPlan":{"name":"Free"},"requestedPlan":{"name":"Gold"}}`},
	}}
	subs, err := NewAggregator(f, nil).FetchAll(context.Background())
	if err != nil || len(subs) != 1 {
		t.Fatalf("got %v, %v", subs, err)
	}
	if subs[0].Label != "Plan Request" || subs[0].Name != "Plan Upgrade: Free → Gold" {
		t.Fatalf("unexpected submission %+v", subs[0])
	}
}

func TestFetchAllInterrupted(t *testing.T) {
	f := &stubFetcher{block: make(chan struct{})}
	defer close(f.block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := NewAggregator(f, nil).FetchAll(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}
