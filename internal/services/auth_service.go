package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/session"
	"ismaalAdmin/utils"
)

type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AdminUser, error)
}

// AuthService logs admins in against the marketplace and keeps their
// identity in the session store behind a signed token.
type AuthService struct {
	api      AuthAPI
	sessions *session.Manager
	tokens   *utils.Manager
	ttl      time.Duration
	logger   *slog.Logger
}

func NewAuthService(api AuthAPI, sessions *session.Manager, tokens *utils.Manager, ttl time.Duration, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: api, sessions: sessions, tokens: tokens, ttl: ttl, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return models.LoginResponse{}, ErrMissingCredentials
	}

	user, err := s.api.Login(ctx, req)
	if err != nil {
		return models.LoginResponse{}, err
	}

	sid := utils.NewSessionID()
	if err := s.sessions.Session(sid).Save(ctx, user); err != nil {
		return models.LoginResponse{}, fmt.Errorf("save session: %w", err)
	}
	token, err := s.tokens.NewJWT(user.ID.String(), string(user.Role), sid, s.ttl)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("admin logged in", "adminID", user.ID.String())
	return models.LoginResponse{Token: token, User: *user}, nil
}

// Authenticate resolves a bearer token to the cached admin.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminUser, *utils.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.sessions.Session(claims.SessionID).Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if user.ID.String() != claims.AdminID {
		return nil, nil, utils.ErrInvalidToken
	}
	return user, claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if err := s.sessions.Session(claims.SessionID).Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("admin logged out", "adminID", claims.AdminID)
	return nil
}
