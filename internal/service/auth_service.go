package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-ferre-inventory/internal/session"
	"go-ferre-inventory/internal/view"
	"go-ferre-inventory/pkg/jwt"
	"go-ferre-inventory/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, username string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*session.Session, error)
	Logout(ctx context.Context, sess *session.Session) error
}

type LoginResponse struct {
	Token     string     `json:"token"`
	SessionID string     `json:"sessionId"`
	Username  string     `json:"username"`
	State     view.State `json:"state"`
}

type authService struct {
	sessions *session.Registry
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

func NewAuthService(sessions *session.Registry, secret string, ttl time.Duration, l *zap.Logger) AuthService {
	return &authService{
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger.OrNop(l),
	}
}

// Login accepts any non-empty username; there is no password check.
func (s *authService) Login(ctx context.Context, username string) (*LoginResponse, error) {
	sess, err := s.sessions.Open(ctx, username)
	if err != nil {
		if errors.Is(err, view.ErrEmptyUsername) {
			return nil, &ValidationError{Field: "username", Tag: "required"}
		}
		return nil, err
	}

	token, err := jwt.GenerateToken(s.secret, sess.ID, sess.Username, s.ttl)
	if err != nil {
		s.sessions.Close(sess.ID)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("session opened", zap.String("session_id", sess.ID), zap.String("username", sess.Username))
	return &LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		Username:  sess.Username,
		State:     sess.Machine.State(),
	}, nil
}

// ValidateToken resolves a bearer token to its live session.
func (s *authService) ValidateToken(tokenString string) (*session.Session, error) {
	claims, err := jwt.ValidateToken(s.secret, tokenString)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(claims.SessionID)
}

// Logout moves the session back to the login screen and forgets it. Callers
// ask for confirmation first.
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	err := sess.Machine.Logout(ctx, true)
	if errors.Is(err, view.ErrInvalidTransition) {
		return err
	}
	if err != nil {
		s.logger.Warn("logout render failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
	s.sessions.Close(sess.ID)
	s.logger.Info("session closed", zap.String("session_id", sess.ID), zap.String("username", sess.Username))
	return nil
}
