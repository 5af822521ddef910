package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/session"
)

// SubmissionAPI is the marketplace side of the submissions view.
type SubmissionAPI interface {
	moderation.Fetcher
	moderation.Moderator
}

// SubmissionListener receives the board events of every admin.
type SubmissionListener func(adminID models.EntityID, ev moderation.Event)

// SubmissionQuery carries the optional view changes of a list request. Zero
// values leave the current state alone.
type SubmissionQuery struct {
	Filter  string
	Page    int
	PerPage int
	Refresh bool
}

type SubmissionPage struct {
	moderation.Page[models.Submission]
	Filter   moderation.Filter       `json:"filter"`
	Counts   moderation.FilterCounts `json:"counts"`
	LoadedAt time.Time               `json:"loadedAt"`
}

type adminBoard struct {
	board    *moderation.Board
	view     *moderation.View
	loadMu   sync.Mutex
	lastUsed time.Time
	pins     int // moderation calls running on board; guarded by SubmissionService.mu
}

// SubmissionService keeps one board and view per logged-in admin.
type SubmissionService struct {
	aggregator *moderation.Aggregator
	workflow   *moderation.Workflow
	audit      session.AuditLog
	logger     *slog.Logger
	perPage    int

	mu        sync.Mutex
	boards    map[models.EntityID]*adminBoard
	listeners []SubmissionListener
	now       func() time.Time
}

func NewSubmissionService(api SubmissionAPI, audit session.AuditLog, defaultPerPage int, logger *slog.Logger) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	if !moderation.ValidPerPage(defaultPerPage) {
		defaultPerPage = moderation.DefaultPerPage
	}
	return &SubmissionService{
		aggregator: moderation.NewAggregator(api, logger),
		workflow:   moderation.NewWorkflow(api, logger),
		audit:      audit,
		logger:     logger,
		perPage:    defaultPerPage,
		boards:     make(map[models.EntityID]*adminBoard),
		now:        time.Now,
	}
}

// OnEvent registers l for status and delete events on every board, current
// and future.
func (s *SubmissionService) OnEvent(l SubmissionListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	boards := make(map[models.EntityID]*adminBoard, len(s.boards))
	for id, ab := range s.boards {
		boards[id] = ab
	}
	s.mu.Unlock()

	for id, ab := range boards {
		s.attach(id, ab.board, l)
	}
}

func (s *SubmissionService) attach(adminID models.EntityID, b *moderation.Board, l SubmissionListener) {
	b.Subscribe(func(ev moderation.Event) { l(adminID, ev) })
}

func (s *SubmissionService) boardFor(adminID models.EntityID, pin bool) *adminBoard {
	s.mu.Lock()
	defer s.mu.Unlock()

	ab, ok := s.boards[adminID]
	if !ok {
		view := moderation.NewView()
		_ = view.SetPerPage(s.perPage)
		ab = &adminBoard{board: moderation.NewBoard(), view: view}
		ab.board.Subscribe(func(ev moderation.Event) { s.record(adminID, ev) })
		for _, l := range s.listeners {
			s.attach(adminID, ab.board, l)
		}
		s.boards[adminID] = ab
	}
	if pin {
		ab.pins++
	}
	ab.lastUsed = s.now()
	return ab
}

// loaded returns the admin's board, fetching it on first use or on refresh.
func (s *SubmissionService) loaded(ctx context.Context, adminID models.EntityID, refresh bool) (*adminBoard, error) {
	ab := s.boardFor(adminID, false)
	if err := s.fill(ctx, adminID, ab, refresh); err != nil {
		return nil, err
	}
	return ab, nil
}

// pinned is loaded for moderation calls. The board stays registered, and
// so keeps its in-flight guard, until release is called.
func (s *SubmissionService) pinned(ctx context.Context, adminID models.EntityID) (*adminBoard, func(), error) {
	ab := s.boardFor(adminID, true)
	release := func() {
		s.mu.Lock()
		ab.pins--
		ab.lastUsed = s.now()
		s.mu.Unlock()
	}
	if err := s.fill(ctx, adminID, ab, false); err != nil {
		release()
		return nil, nil, err
	}
	return ab, release, nil
}

func (s *SubmissionService) fill(ctx context.Context, adminID models.EntityID, ab *adminBoard, refresh bool) error {
	ab.loadMu.Lock()
	defer ab.loadMu.Unlock()
	if _, ok := ab.board.Loaded(); ok && !refresh {
		return nil
	}

	items, err := s.aggregator.FetchAll(ctx)
	if err != nil {
		return err
	}
	ab.board.Replace(items)
	s.logger.Info("submissions loaded", "adminID", adminID.String(), "count", len(items))
	return nil
}

// List returns the current page of the admin's held list after applying the
// requested view changes. A filter or page size change goes back to page
// one; an explicit page is only honoured when neither changed.
func (s *SubmissionService) List(ctx context.Context, adminID models.EntityID, q SubmissionQuery) (SubmissionPage, error) {
	ab, err := s.loaded(ctx, adminID, q.Refresh)
	if err != nil {
		return SubmissionPage{}, err
	}

	filter, _, perPage := ab.view.State()
	reset := false
	if strings.TrimSpace(q.Filter) != "" {
		f, err := moderation.ParseFilter(q.Filter)
		if err != nil {
			return SubmissionPage{}, err
		}
		if f != filter {
			_ = ab.view.SetFilter(f)
			reset = true
		}
	}
	if q.PerPage != 0 && q.PerPage != perPage {
		if err := ab.view.SetPerPage(q.PerPage); err != nil {
			return SubmissionPage{}, err
		}
		reset = true
	}
	if q.Page > 0 && !reset {
		ab.view.SetPage(q.Page)
	}

	items := ab.board.Items()
	loadedAt, _ := ab.board.Loaded()
	filter, _, _ = ab.view.State()
	return SubmissionPage{
		Page:     ab.view.Window(items),
		Filter:   filter,
		Counts:   moderation.Counts(items),
		LoadedAt: loadedAt,
	}, nil
}

// Get returns the held copy of one submission, with its current status.
func (s *SubmissionService) Get(ctx context.Context, adminID models.EntityID, key models.SubmissionKey) (models.Submission, error) {
	ab, err := s.loaded(ctx, adminID, false)
	if err != nil {
		return models.Submission{}, err
	}
	sub, ok := ab.board.Get(key)
	if !ok {
		return models.Submission{}, moderation.ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *SubmissionService) Approve(ctx context.Context, adminID models.EntityID, key models.SubmissionKey, notes string) (models.Submission, error) {
	ab, release, err := s.pinned(ctx, adminID)
	if err != nil {
		return models.Submission{}, err
	}
	defer release()
	return s.workflow.Approve(ctx, ab.board, key, notes)
}

func (s *SubmissionService) Reject(ctx context.Context, adminID models.EntityID, key models.SubmissionKey, notes string) (models.Submission, error) {
	ab, release, err := s.pinned(ctx, adminID)
	if err != nil {
		return models.Submission{}, err
	}
	defer release()
	return s.workflow.Reject(ctx, ab.board, key, notes)
}

func (s *SubmissionService) Delete(ctx context.Context, adminID models.EntityID, key models.SubmissionKey) error {
	ab, release, err := s.pinned(ctx, adminID)
	if err != nil {
		return err
	}
	defer release()
	return s.workflow.Delete(ctx, ab.board, key)
}

// Forget drops the admin's board, as on logout. A board with moderation
// calls still running is kept and left to ReapIdle.
func (s *SubmissionService) Forget(adminID models.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ab, ok := s.boards[adminID]; ok && ab.pins == 0 {
		delete(s.boards, adminID)
	}
}

// ReapIdle drops boards unused for longer than ttl and returns how many
// were removed. Boards with moderation calls running are skipped.
func (s *SubmissionService) ReapIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, ab := range s.boards {
		if ab.pins == 0 && ab.lastUsed.Before(cutoff) {
			delete(s.boards, id)
			n++
		}
	}
	return n
}

// Audit returns the most recent moderation decisions.
func (s *SubmissionService) Audit(ctx context.Context, n int) ([]session.AuditEntry, error) {
	if s.audit == nil {
		return []session.AuditEntry{}, nil
	}
	return s.audit.Recent(ctx, n)
}

func (s *SubmissionService) record(adminID models.EntityID, ev moderation.Event) {
	if s.audit == nil {
		return
	}
	entry := session.AuditEntry{
		AdminID: adminID,
		Type:    ev.Key.Type,
		ID:      ev.Key.ID,
		From:    ev.From,
		To:      ev.To,
		Notes:   ev.Notes,
		At:      ev.At.UTC(),
	}
	switch {
	case ev.Kind == moderation.EventDeleted:
		entry.Action = "delete"
	case ev.To == models.StatusApproved:
		entry.Action = "approve"
	default:
		entry.Action = "reject"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("audit record failed", "key", ev.Key.String(), "err", err)
	}
}
