package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	for _, u := range r.byEmail {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = strings.Repeat("0", 23) + string(rune('0'+r.nextID))
	r.byEmail[created.Email] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubThrottle blocks when blocked is set and records failures.
type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func newAuthService(repo ports.UserRepository, throttle LoginThrottle) *AuthService {
	return NewAuthService(repo, throttle, "secret", time.Hour, zerolog.Nop())
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Pass123",
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	token, user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash == "Pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("stored hash is not a bcrypt hash: %q", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %q, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %q, got %v", domain.RoleUser, claims["role"])
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	in := registerInput()
	in.Email = "  Alice@Example.COM "
	_, user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
}

func TestAuthService_Register_ReportsAllViolations(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a!",
		Email:    "not-an-email",
		Password: "short",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Short and badly charset username, bad email, short and weak password.
	if len(ve.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

func TestAuthService_Register_PasswordStrength(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	for _, password := range []string{"alllower1", "ALLUPPER1", "NoDigits"} {
		in := registerInput()
		in.Password = password
		_, _, err := svc.Register(context.Background(), in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("password %q: expected ValidationError, got %v", password, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in := registerInput()
	in.Username = "other_name"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in := registerInput()
	in.Email = "other@example.com"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	in := registerInput()
	in.Role = "superuser"
	var ve *domain.ValidationError
	if _, _, err := svc.Register(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "Pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "alice@example.com", "WrongPass1")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "Pass123")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	var ve *domain.ValidationError
	if _, _, err := svc.Login(context.Background(), "", "Pass123"); !errors.As(err, &ve) {
		t.Fatalf("missing email: expected ValidationError, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", ""); !errors.As(err, &ve) {
		t.Fatalf("missing password: expected ValidationError, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{blocked: true}
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "Pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	if _, _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _ = svc.Login(context.Background(), "alice@example.com", "WrongPass1")
	_, _, _ = svc.Login(context.Background(), "ghost@example.com", "Pass123")

	if throttle.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", throttle.failures)
	}
}

// ---------------------------------------------------------------------------
// EnsureAdmin
// ---------------------------------------------------------------------------

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if err := svc.EnsureAdmin(context.Background(), "admin", "admin@sweetshop.com", "Admin123"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	admin, err := repo.FindByEmail(context.Background(), "admin@sweetshop.com")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}

	// Second call is a no-op.
	if err := svc.EnsureAdmin(context.Background(), "admin", "admin@sweetshop.com", "Admin123"); err != nil {
		t.Fatalf("EnsureAdmin second call failed: %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single account, got %d", len(repo.byEmail))
	}
}
