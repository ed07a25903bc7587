package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"droneport/internal/ids"
	"droneport/internal/models"
	"droneport/internal/repository"
	"droneport/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateName      = repository.ErrDuplicateName
	ErrDuplicateEmail     = repository.ErrDuplicateEmail
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByName(ctx context.Context, name string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, user models.SessionUser) (string, error)
	Destroy(ctx context.Context, token string) error
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  models.SessionUser
}

// SignUp creates the account and immediately establishes a session for it.
// The lookups are only a fast path; the insert's unique constraints are the
// authoritative duplicate check, so a race between the two still surfaces as
// ErrDuplicateName or ErrDuplicateEmail.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("name, email and password required")
	}

	if _, err := s.users.FindByName(ctx, input.Name); err == nil {
		return AuthResult{}, ErrDuplicateName
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	return s.establishSession(ctx, user)
}

// Login succeeds only for a known name with a matching password. An unknown
// name and a wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, name, password string) (AuthResult, error) {
	user, err := s.users.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.establishSession(ctx, user)
}

// Logout destroys the session. Failures are logged, never surfaced; from the
// client's perspective logout always succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session destroy failed")
	}
}

func (s *AuthService) establishSession(ctx context.Context, user models.User) (AuthResult, error) {
	sessionUser := models.SessionUser{
		Name:  user.Name,
		Email: user.Email,
	}

	token, err := s.sessions.Create(ctx, sessionUser)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		Token: token,
		User:  sessionUser,
	}, nil
}
