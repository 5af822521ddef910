package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"ismaalAdmin/internal/models"
)

// AdminUserKey is the record holding the cached admin identity.
const AdminUserKey = "adminUser"

var (
	ErrNoSession = errors.New("session: no admin session")
	ErrNotAdmin  = errors.New("session: user is not an admin")
)

// Session holds the cached admin identity. It is created once and handed to
// whatever needs the current admin.
type Session struct {
	store  Store
	key    string
	logger *slog.Logger
}

func New(store Store, key string, logger *slog.Logger) *Session {
	if key == "" {
		key = AdminUserKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, key: key, logger: logger}
}

// Load returns the cached admin. A record that does not decode, or whose
// role is no longer ADMIN, is cleared and reported as ErrNoSession.
func (s *Session) Load(ctx context.Context) (*models.AdminUser, error) {
	b, err := s.store.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}

	var user models.AdminUser
	if err := json.Unmarshal(b, &user); err != nil {
		s.logger.Warn("discarding unreadable session", "key", s.key, "err", err)
		_ = s.Clear(ctx)
		return nil, ErrNoSession
	}
	if !user.IsAdmin() {
		s.logger.Warn("discarding non-admin session", "key", s.key, "userID", user.ID.String())
		_ = s.Clear(ctx)
		return nil, ErrNoSession
	}
	return &user, nil
}

func (s *Session) Save(ctx context.Context, user *models.AdminUser) error {
	if user == nil || !user.IsAdmin() {
		return ErrNotAdmin
	}
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, s.key, b)
}

func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}

// Manager hands out one Session per server-side session id.
type Manager struct {
	store  Store
	logger *slog.Logger
}

func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

func (m *Manager) Session(id string) *Session {
	return New(m.store, AdminUserKey+":"+id, m.logger)
}
