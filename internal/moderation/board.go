package moderation

import (
	"sync"
	"time"

	"ismaalAdmin/internal/models"
)

type EventKind string

const (
	EventStatusChanged EventKind = "submission.status"
	EventDeleted       EventKind = "submission.deleted"
)

// Event describes a confirmed change to a held submission.
type Event struct {
	Kind       EventKind
	Key        models.SubmissionKey
	From       models.SubmissionStatus
	To         models.SubmissionStatus
	Notes      string
	Submission models.Submission
	At         time.Time
}

type Listener func(Event)

// Board is the held submission list of one dashboard view. It also carries
// the per-submission in-flight guard. Safe for concurrent use.
type Board struct {
	mu        sync.Mutex
	items     []models.Submission
	index     map[models.SubmissionKey]int
	inFlight  map[models.SubmissionKey]struct{}
	listeners map[int]Listener
	nextID    int
	loadedAt  time.Time
}

func NewBoard() *Board {
	return &Board{
		index:     make(map[models.SubmissionKey]int),
		inFlight:  make(map[models.SubmissionKey]struct{}),
		listeners: make(map[int]Listener),
	}
}

// Replace swaps in a freshly fetched list. Calls already in flight keep
// their guard.
func (b *Board) Replace(items []models.Submission) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append([]models.Submission(nil), items...)
	b.reindex()
	b.loadedAt = time.Now()
}

func (b *Board) reindex() {
	b.index = make(map[models.SubmissionKey]int, len(b.items))
	for i, s := range b.items {
		if _, dup := b.index[s.Key]; !dup {
			b.index[s.Key] = i
		}
	}
}

// Loaded reports whether the board has been filled at least once, and when.
func (b *Board) Loaded() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadedAt, !b.loadedAt.IsZero()
}

// Items returns a copy of the held list in its sorted order.
func (b *Board) Items() []models.Submission {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Submission(nil), b.items...)
}

func (b *Board) Get(key models.SubmissionKey) (models.Submission, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.index[key]
	if !ok {
		return models.Submission{}, false
	}
	return b.items[i], true
}

// InFlight reports whether a moderation call for key is running.
func (b *Board) InFlight(key models.SubmissionKey) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.inFlight[key]
	return ok
}

// Begin claims key for a status change to target. The caller must call
// Finish once the remote call returns.
func (b *Board) Begin(key models.SubmissionKey, target models.SubmissionStatus) (models.Submission, error) {
	return b.begin(key, func(s models.Submission) error {
		if !CanTransition(s.EffectiveStatus(), target) {
			return ErrNoTransition
		}
		return nil
	})
}

// BeginDelete claims key for a delete call.
func (b *Board) BeginDelete(key models.SubmissionKey) (models.Submission, error) {
	return b.begin(key, nil)
}

func (b *Board) begin(key models.SubmissionKey, check func(models.Submission) error) (models.Submission, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.index[key]
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}
	if _, busy := b.inFlight[key]; busy {
		return models.Submission{}, ErrInFlight
	}
	if check != nil {
		if err := check(b.items[i]); err != nil {
			return models.Submission{}, err
		}
	}
	b.inFlight[key] = struct{}{}
	return b.items[i], nil
}

func (b *Board) Finish(key models.SubmissionKey) {
	b.mu.Lock()
	delete(b.inFlight, key)
	b.mu.Unlock()
}

// SetStatus rewrites the status of the entry matching key and nothing else.
func (b *Board) SetStatus(key models.SubmissionKey, status models.SubmissionStatus, notes string) (models.Submission, bool) {
	b.mu.Lock()
	i, ok := b.index[key]
	if !ok {
		b.mu.Unlock()
		return models.Submission{}, false
	}
	from := b.items[i].EffectiveStatus()
	b.items[i] = b.items[i].WithStatus(status)
	updated := b.items[i]
	listeners := b.snapshotListeners()
	b.mu.Unlock()

	notify(listeners, Event{
		Kind:       EventStatusChanged,
		Key:        key,
		From:       from,
		To:         status,
		Notes:      notes,
		Submission: updated,
		At:         time.Now(),
	})
	return updated, true
}

// Remove drops the entry matching key.
func (b *Board) Remove(key models.SubmissionKey) bool {
	b.mu.Lock()
	i, ok := b.index[key]
	if !ok {
		b.mu.Unlock()
		return false
	}
	removed := b.items[i]
	b.items = append(b.items[:i:i], b.items[i+1:]...)
	b.reindex()
	listeners := b.snapshotListeners()
	b.mu.Unlock()

	notify(listeners, Event{
		Kind:       EventDeleted,
		Key:        key,
		From:       removed.EffectiveStatus(),
		Submission: removed,
		At:         time.Now(),
	})
	return true
}

// Subscribe registers l for status and delete events. The returned func
// removes it again.
func (b *Board) Subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

func (b *Board) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, ev Event) {
	for _, l := range listeners {
		l(ev)
	}
}
