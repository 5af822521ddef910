package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ismaalAdmin/internal/models"
)

// fakeRedis implements the handful of commands the stores use.
type fakeRedis struct {
	redis.Cmdable

	mu    sync.Mutex
	kv    map[string]string
	ttl   map[string]time.Duration
	lists map[string][]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{kv: map[string]string{}, ttl: map[string]time.Duration{}, lists: map[string][]string{}}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = toString(value)
	f.ttl[key] = expiration
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	v, ok := f.kv[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.kv[k]; ok {
			delete(f.kv, k)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range values {
		f.lists[key] = append([]string{toString(v)}, f.lists[key]...)
	}
	cmd := redis.NewIntCmd(ctx, "lpush", key)
	cmd.SetVal(int64(len(f.lists[key])))
	return cmd
}

func (f *fakeRedis) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.lists[key]
	if stop+1 < int64(len(list)) {
		list = list[:stop+1]
	}
	f.lists[key] = list[start:]
	cmd := redis.NewStatusCmd(ctx, "ltrim", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.lists[key]
	if stop+1 < int64(len(list)) {
		list = list[:stop+1]
	}
	cmd := redis.NewStringSliceCmd(ctx, "lrange", key)
	cmd.SetVal(append([]string(nil), list[start:]...))
	return cmd
}

func admin() *models.AdminUser {
	return &models.AdminUser{ID: "1", Name: "Root", Email: "root@example.so", Role: models.RoleAdmin}
}

func TestSessionRoundTripOnEveryStore(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "session.json")),
		"redis":  NewRedisStore(newFakeRedis(), "", time.Hour),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := New(store, "", nil)

			_, err := s.Load(ctx)
			require.ErrorIs(t, err, ErrNoSession)

			require.NoError(t, s.Save(ctx, admin()))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, admin(), got)

			require.NoError(t, s.Clear(ctx))
			_, err = s.Load(ctx)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestSessionRejectsNonAdmin(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, "", nil)

	user := admin()
	user.Role = "USER"
	assert.ErrorIs(t, s.Save(ctx, user), ErrNotAdmin)
	assert.ErrorIs(t, s.Save(ctx, nil), ErrNotAdmin)

	// a stale record written by an older build
	require.NoError(t, store.Save(ctx, AdminUserKey, []byte(`{"id":2,"role":"USER"}`)))
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = store.Load(ctx, AdminUserKey)
	assert.ErrorIs(t, err, ErrNoSession, "non-admin record should be cleared")
}

func TestSessionDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, AdminUserKey, []byte(`not json`)))

	_, err := New(store, "", nil).Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, "theme", []byte(`"dark"`)))
	require.NoError(t, New(store, "", nil).Save(ctx, admin()))
	require.NoError(t, New(store, "", nil).Clear(ctx))

	v, err := store.Load(ctx, "theme")
	require.NoError(t, err)
	assert.JSONEq(t, `"dark"`, string(v))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRedisStoreUsesPrefixAndTTL(t *testing.T) {
	rdb := newFakeRedis()
	m := NewManager(NewRedisStore(rdb, "", 30*time.Minute), nil)

	require.NoError(t, m.Session("abc").Save(context.Background(), admin()))

	key := "admin:session:" + AdminUserKey + ":abc"
	assert.Contains(t, rdb.kv, key)
	assert.Equal(t, 30*time.Minute, rdb.ttl[key])

	_, err := m.Session("other").Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisAuditIsCapped(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	audit := NewRedisAudit(rdb, nil)
	audit.limit = 3

	for i := 1; i <= 5; i++ {
		require.NoError(t, audit.Record(ctx, AuditEntry{
			AdminID: "1",
			Type:    models.SubmissionProduct,
			ID:      models.EntityID(fmt.Sprint(i)),
			Action:  "approve",
			To:      models.StatusApproved,
			At:      time.Unix(int64(i), 0).UTC(),
		}))
	}

	assert.Len(t, rdb.lists[AuditKey], 3)

	entries, err := audit.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.EntityID("5"), entries[0].ID)
	assert.Equal(t, models.EntityID("3"), entries[2].ID)
}

func TestMemoryAudit(t *testing.T) {
	ctx := context.Background()
	audit := NewMemoryAudit()
	require.NoError(t, audit.Record(ctx, AuditEntry{ID: "1"}))
	require.NoError(t, audit.Record(ctx, AuditEntry{ID: "2"}))

	entries, err := audit.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntityID("2"), entries[0].ID)
}
