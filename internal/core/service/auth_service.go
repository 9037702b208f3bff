package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which case
// no brute-force limiting is applied.
func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register validates the input, persists a new account, and returns a signed
// session token with the created user. Field rules are checked first and
// reported together; uniqueness is only consulted once the input is
// well-formed.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validateRegistration(username, email, in.Password); err != nil {
		return "", nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return "", nil, domain.NewValidationError("Role must be either user or admin")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: check email: %w", err)
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return "", nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, fmt.Errorf("register: sign token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return token, created, nil
}

// Login verifies credentials and issues a new session token. A missing user
// and a wrong password both surface as ErrInvalidCredentials so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", nil, domain.NewValidationError("Email and password are required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return token, user, nil
}

// EnsureAdmin creates the bootstrap admin account when no user with the given
// email exists. Existing accounts are left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.log.Info().Str("email", email).Msg("admin account seeded")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateRegistration checks every field rule and reports all violations
// in a single error, so clients see the complete problem set at once.
func validateRegistration(username, email, password string) error {
	var violations []string

	if len(username) < 3 || len(username) > 30 {
		violations = append(violations, "Username must be between 3 and 30 characters")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		violations = append(violations, "Username can only contain letters, numbers, and underscores")
	}

	if !emailPattern.MatchString(email) {
		violations = append(violations, "Please provide a valid email address")
	}

	if len(password) < 6 {
		violations = append(violations, "Password must be at least 6 characters long")
	}
	if !passwordMixOK(password) {
		violations = append(violations, "Password must contain at least one lowercase letter, one uppercase letter, and one number")
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func passwordMixOK(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
