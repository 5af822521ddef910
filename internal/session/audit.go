package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ismaalAdmin/internal/models"
)

const (
	AuditKey   = "moderation:audit"
	AuditLimit = 1000
)

// AuditEntry is one confirmed moderation decision.
type AuditEntry struct {
	AdminID models.EntityID         `json:"adminId"`
	Type    models.SubmissionType   `json:"submissionType"`
	ID      models.EntityID         `json:"id"`
	Action  string                  `json:"action"`
	From    models.SubmissionStatus `json:"from,omitempty"`
	To      models.SubmissionStatus `json:"to,omitempty"`
	Notes   string                  `json:"adminNotes,omitempty"`
	At      time.Time               `json:"at"`
}

type AuditLog interface {
	Record(ctx context.Context, e AuditEntry) error
	Recent(ctx context.Context, n int) ([]AuditEntry, error)
}

// RedisAudit keeps the newest decisions in a capped Redis list.
type RedisAudit struct {
	rdb    redis.Cmdable
	key    string
	limit  int64
	logger *slog.Logger
}

func NewRedisAudit(rdb redis.Cmdable, logger *slog.Logger) *RedisAudit {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisAudit{rdb: rdb, key: AuditKey, limit: AuditLimit, logger: logger}
}

func (a *RedisAudit) Record(ctx context.Context, e AuditEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := a.rdb.LPush(ctx, a.key, b).Err(); err != nil {
		return fmt.Errorf("audit push: %w", err)
	}
	if err := a.rdb.LTrim(ctx, a.key, 0, a.limit-1).Err(); err != nil {
		return fmt.Errorf("audit trim: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. Unreadable entries are
// skipped.
func (a *RedisAudit) Recent(ctx context.Context, n int) ([]AuditEntry, error) {
	if n <= 0 || int64(n) > a.limit {
		n = int(a.limit)
	}
	raw, err := a.rdb.LRange(ctx, a.key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("audit range: %w", err)
	}
	out := make([]AuditEntry, 0, len(raw))
	for _, r := range raw {
		var e AuditEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			a.logger.Warn("skipping unreadable audit entry", "err", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// MemoryAudit is the in-process AuditLog used without Redis.
type MemoryAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
	limit   int
}

func NewMemoryAudit() *MemoryAudit {
	return &MemoryAudit{limit: AuditLimit}
}

func (a *MemoryAudit) Record(_ context.Context, e AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append([]AuditEntry{e}, a.entries...)
	if len(a.entries) > a.limit {
		a.entries = a.entries[:a.limit]
	}
	return nil
}

func (a *MemoryAudit) Recent(_ context.Context, n int) ([]AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n <= 0 || n > len(a.entries) {
		n = len(a.entries)
	}
	return append([]AuditEntry(nil), a.entries[:n]...), nil
}
