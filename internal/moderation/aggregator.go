package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"ismaalAdmin/internal/models"
)

// Fetcher returns the raw records of one submission source.
type Fetcher interface {
	PendingSubmissions(ctx context.Context, t models.SubmissionType) ([]json.RawMessage, error)
}

// Aggregator merges the four submission sources into one ordered list.
type Aggregator struct {
	fetcher Fetcher
	logger  *slog.Logger
}

func NewAggregator(fetcher Fetcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{fetcher: fetcher, logger: logger}
}

type sourceResult struct {
	items []json.RawMessage
	err   error
}

// FetchAll queries every source concurrently and waits for all of them. A
// failing source contributes nothing; the only error is ctx ending before
// the sources have all answered.
func (a *Aggregator) FetchAll(ctx context.Context) ([]models.Submission, error) {
	types := models.SubmissionTypes()
	results := make([]sourceResult, len(types))

	var wg sync.WaitGroup
	for i, t := range types {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = sourceResult{err: fmt.Errorf("panic: %v", r)}
				}
			}()
			items, err := a.fetcher.PendingSubmissions(ctx, t)
			results[i] = sourceResult{items: items, err: err}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged []models.Submission
	for i, t := range types {
		res := results[i]
		if res.err != nil {
			a.logger.Warn("submission source failed", "source", string(t), "err", res.err)
			continue
		}
		for n, raw := range res.items {
			sub, err := models.DecodeSubmission(t, raw)
			if err != nil {
				a.logger.Warn("skipping submission record", "source", string(t), "index", n, "err", err)
				continue
			}
			merged = append(merged, sub)
		}
	}

	SortByDate(merged)
	return merged, nil
}

type datedSubmission struct {
	sub   models.Submission
	at    time.Time
	dated bool
}

// SortByDate orders submissions newest first. Undated submissions go after
// every dated one; ties keep their input order.
func SortByDate(subs []models.Submission) {
	dated := make([]datedSubmission, len(subs))
	for i, s := range subs {
		at, ok := s.EffectiveDate()
		dated[i] = datedSubmission{sub: s, at: at, dated: ok}
	}

	slices.SortStableFunc(dated, func(a, b datedSubmission) int {
		switch {
		case a.dated && b.dated:
			return b.at.Compare(a.at)
		case a.dated:
			return -1
		case b.dated:
			return 1
		}
		return 0
	})

	for i := range dated {
		subs[i] = dated[i].sub
	}
}
