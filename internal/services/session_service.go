package services

import (
	"errors"
	"sync"
	"time"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/logger"
	"assetvault/internal/models"
)

// TokenIssuer signs an access token for user.
type TokenIssuer func(user *models.User) (string, error)

// sessionService authenticates users and tracks revoked tokens in memory.
type sessionService struct {
	users UserServicer
	issue TokenIssuer
	now   func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> token expiry
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(users UserServicer, issue TokenIssuer) SessionServicer {
	return &sessionService{
		users:   users,
		issue:   issue,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Register creates an account and signs the user in.
func (s *sessionService) Register(email, password, name string) Result {
	user, err := s.users.CreateUser(email, password, name)
	if err != nil {
		return failure(err)
	}
	return s.signIn(user)
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *sessionService) Login(email, password string) Result {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return failure(apperrors.ErrInvalidCredentials)
		}
		return failure(err)
	}
	if !s.users.VerifyPassword(user, password) {
		return failure(apperrors.ErrInvalidCredentials)
	}
	if err := s.users.RecordLogin(user); err != nil {
		logger.Get().Warnw("failed to record login", "user_id", user.ID, "error", err)
	}
	return s.signIn(user)
}

// Logout revokes the token until it would have expired anyway. Persisted
// assets of the user's namespace are left alone.
func (s *sessionService) Logout(tokenID string, expiresAt time.Time) Result {
	if tokenID == "" {
		return failure(apperrors.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = expiresAt
	return Result{Success: true}
}

// IsRevoked reports whether the token was logged out.
func (s *sessionService) IsRevoked(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok
}

// UpdateProfile changes the user's name or email.
func (s *sessionService) UpdateProfile(userID, name, email string) Result {
	user, err := s.users.UpdateProfile(userID, name, email)
	if err != nil {
		return failure(err)
	}
	return Result{Success: true, User: user}
}

// ChangePassword replaces the user's password.
func (s *sessionService) ChangePassword(userID, currentPassword, newPassword string) Result {
	if err := s.users.ChangePassword(userID, currentPassword, newPassword); err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

func (s *sessionService) signIn(user *models.User) Result {
	token, err := s.issue(user)
	if err != nil {
		logger.Get().Errorw("failed to issue token", "user_id", user.ID, "error", err)
		return failure(apperrors.ErrInternalServer)
	}
	return Result{Success: true, User: user, Token: token}
}

func failure(err error) Result {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return Result{Error: appErr.Message, Code: appErr.Code}
	}
	return Result{Error: apperrors.ErrInternalServer.Message, Code: apperrors.ErrInternalServer.Code}
}
