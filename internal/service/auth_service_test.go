package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"droneport/internal/models"
	"droneport/internal/repository"
	"droneport/internal/security"
)

// -------- test fakes --------

type fakeUserStore struct {
	byName    map[string]models.User
	byEmail   map[string]models.User
	createErr error
	created   []models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byName:  map[string]models.User{},
		byEmail: map[string]models.User{},
	}
}

func (f *fakeUserStore) add(user models.User) {
	f.byName[user.Name] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[user.Name]; ok {
		return repository.ErrDuplicateName
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.add(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) FindByName(ctx context.Context, name string) (models.User, error) {
	user, ok := f.byName[name]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeSessionStore struct {
	sessions   map[string]models.SessionUser
	destroyErr error
	destroyed  []string
	counter    int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]models.SessionUser{}}
}

func (f *fakeSessionStore) Create(ctx context.Context, user models.SessionUser) (string, error) {
	f.counter++
	token := "tok-" + string(rune('a'+f.counter))
	f.sessions[token] = user
	return token, nil
}

func (f *fakeSessionStore) Destroy(ctx context.Context, token string) error {
	f.destroyed = append(f.destroyed, token)
	if f.destroyErr != nil {
		return f.destroyErr
	}
	delete(f.sessions, token)
	return nil
}

// -------- tests --------

func TestSignUp_EstablishesSession(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, zerolog.Nop())

	result, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "TestUser",
		Email:    "test@example.com",
		Password: "1234",
	})
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a session token")
	}

	stored, ok := sessions.sessions[result.Token]
	if !ok {
		t.Fatalf("expected session stored under token")
	}
	if stored.Name != "TestUser" || stored.Email != "test@example.com" {
		t.Fatalf("session user mismatch: %+v", stored)
	}

	if len(users.created) != 1 {
		t.Fatalf("expected exactly one account created, got %d", len(users.created))
	}
	if string(users.created[0].PasswordHash) == "1234" {
		t.Fatalf("password stored verbatim; expected a hash")
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.add(models.User{Name: "Existing", Email: "test@example.com"})
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, zerolog.Nop())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Other",
		Email:    "test@example.com",
		Password: "1234",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(users.created) != 0 {
		t.Fatalf("expected no account created")
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("expected no session created")
	}
}

func TestSignUp_DuplicateName(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.add(models.User{Name: "TestUser", Email: "other@example.com"})
	svc := NewAuthService(users, newFakeSessionStore(), zerolog.Nop())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "TestUser",
		Email:    "fresh@example.com",
		Password: "1234",
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestSignUp_WriteTimeConstraintWins(t *testing.T) {
	t.Parallel()

	// Pre-checks pass but the insert loses a race; the constraint error must
	// still surface as the duplicate outcome.
	users := newFakeUserStore()
	users.createErr = repository.ErrDuplicateEmail
	svc := NewAuthService(users, newFakeSessionStore(), zerolog.Nop())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Racer",
		Email:    "race@example.com",
		Password: "1234",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail from write path, got %v", err)
	}
}

func TestLogin_UnknownNameAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("correct")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	users := newFakeUserStore()
	users.add(models.User{Name: "Known", Email: "known@example.com", PasswordHash: hash})
	svc := NewAuthService(users, newFakeSessionStore(), zerolog.Nop())

	_, errUnknown := svc.Login(context.Background(), "NoSuchUser", "whatever")
	_, errWrongPass := svc.Login(context.Background(), "Known", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown name: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("expected identical failure for both cases")
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("1234")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	users := newFakeUserStore()
	users.add(models.User{Name: "TestUser", Email: "test@example.com", PasswordHash: hash})
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, zerolog.Nop())

	result, err := svc.Login(context.Background(), "TestUser", "1234")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.User.Name != "TestUser" || result.User.Email != "test@example.com" {
		t.Fatalf("unexpected session user: %+v", result.User)
	}
	if _, ok := sessions.sessions[result.Token]; !ok {
		t.Fatalf("expected session stored")
	}
}

func TestLogout_SwallowsDestroyError(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessionStore()
	sessions.destroyErr = errors.New("redis down")
	svc := NewAuthService(newFakeUserStore(), sessions, zerolog.Nop())

	svc.Logout(context.Background(), "tok-x")

	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "tok-x" {
		t.Fatalf("expected destroy attempt for tok-x, got %v", sessions.destroyed)
	}
}
