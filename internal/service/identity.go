// Package service implements the ownership-scoped operations of the API:
// accounts, the person registry, the insurance ledger, and the accident
// ledger. Every mutation validates authentication and ownership before it
// touches the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"crashlog/internal/apperr"
	"crashlog/internal/auth"
	"crashlog/internal/metrics"
	"crashlog/internal/models"
	"crashlog/internal/storage"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IdentityService handles registration, login, and the current-user query.
type IdentityService struct {
	store         storage.Store
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(store storage.Store, authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
		logger:        logger,
	}
}

// CreateUserInput carries the registration fields.
type CreateUserInput struct {
	Email             string
	Password          string
	ConfirmedPassword string
	FirstName         string
	LastName          string
	Address           string
	PhoneNumber       string
}

// CreateUser registers a new account. All validation happens before any
// store write; the password is hashed and the plaintext discarded.
func (s *IdentityService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if !emailRegex.MatchString(in.Email) {
		return nil, apperr.Validation("Not a valid email")
	}
	if in.Password != in.ConfirmedPassword {
		return nil, apperr.Validation("Password and confirmed password do not match!")
	}
	if len(in.FirstName) < 2 || len(in.LastName) < 2 {
		return nil, apperr.Validation("First and last name must be at least 2 characters")
	}
	if len(in.Address) < 6 {
		return nil, apperr.Validation("Address must be at least 6 characters")
	}
	if len(in.PhoneNumber) < 7 {
		return nil, apperr.Validation("Phone number must be at least 7 digits")
	}

	user := &models.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
	}

	if err := s.authenticator.Register(ctx, user, in.Password); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return nil, apperr.Conflict("Email is already registered")
		}
		s.logger.Error("registration failed", "email", in.Email, "error", err)
		return nil, apperr.Internal("Error creating user", err)
	}

	s.metrics.UsersRegistered.Inc()
	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user's email and id.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.LoginFailures.Inc()
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return "", apperr.NotFound("Could not find that user")
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.logger.Warn("login failed", "email", email)
			return "", apperr.Unauthenticated("Incorrect credentials")
		default:
			return "", apperr.Internal("Could not log in", err)
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return "", apperr.Internal("Could not issue token", err)
	}

	s.metrics.Logins.Inc()
	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)
	return token, nil
}

// Me returns the calling user's record. userID comes from the resolved
// identity; empty means no valid credential was supplied.
func (s *IdentityService) Me(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("Could not fetch user data")
		}
		return nil, apperr.Internal("Could not fetch user data", err)
	}

	return user, nil
}

// User retrieves a user by ID for reference resolution (the owning user
// of an accident, or an insurance owner). Missing users are a soft miss.
func (s *IdentityService) User(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("Could not fetch user data", err)
	}
	return user, nil
}
