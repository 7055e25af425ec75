// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/sec"
	"github.com/taibuivan/secureblog/internal/platform/validate"
	"github.com/taibuivan/secureblog/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and verifies passwords. [*sec.PasswordHasher] satisfies it.
type PasswordHasher interface {
	HashPassword(plainTextPassword string) (string, error)
	CheckPasswordHash(plainTextPassword, existingHash string) bool
	BurnCompare(plainTextPassword string)
}

// TokenProvider issues bearer tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username string) (string, error)
}

// FailureRecorder counts rejected logins.
type FailureRecorder interface {
	LoginFailed()
}

// Service implements the credential store use cases.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokenProvider  TokenProvider
	recorder       FailureRecorder
	now            func() time.Time
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(userRepo UserRepository, hasher PasswordHasher, tokenProv TokenProvider, recorder FailureRecorder) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenProvider:  tokenProv,
		recorder:       recorder,
		now:            time.Now,
	}
}

// NormalizeUsername trims surrounding whitespace and applies Unicode NFC, so
// visually identical names compare equal at registration and at login.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ValidationError, Duplicate ("User already exists") or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	username := NormalizeUsername(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, MaxUsernameLength).
		Custom(FieldUsername, strings.ContainsRune(username, 0), "Must not contain NUL characters").
		Required(FieldPassword, input.Password).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := service.hasher.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.ValidationError(validate.MessageFailed, apperr.FieldError{
				Field:   FieldPassword,
				Message: fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes),
			})
		}
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    service.now().UTC(),
	}

	// The INSERT is the only uniqueness check, so two concurrent registrations
	// of one name cannot both succeed.
	if err := service.userRepository.Create(ctx, user); err != nil {
		if apperr.HasCode(err, apperr.CodeDuplicate) {
			return nil, apperr.Duplicate(MessageUserExists).WithCause(err)
		}
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

/*
Verify checks a username and password pair.

An unknown username and a wrong password produce the same error, and both
paths spend one bcrypt comparison.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - *User: The authenticated account
  - error: InvalidCredentials or storage errors
*/
func (service *Service) Verify(ctx context.Context, username, password string) (*User, error) {
	normalized := NormalizeUsername(username)

	if normalized == "" || password == "" {
		service.hasher.BurnCompare(password)
		return nil, service.fail()
	}

	user, err := service.userRepository.FindByUsername(ctx, normalized)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.hasher.BurnCompare(password)
			return nil, service.fail()
		}
		return nil, err
	}

	if !service.hasher.CheckPasswordHash(password, user.PasswordHash) {
		return nil, service.fail()
	}

	return user, nil
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
	User  *User
}

/*
Login verifies credentials and issues a bearer token.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - *LoginResult: Signed token and account
  - error: InvalidCredentials or internal failures
*/
func (service *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := service.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// # Directory

// ListUsers returns every registered account.
func (service *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return service.userRepository.List(ctx)
}

func (service *Service) fail() error {
	if service.recorder != nil {
		service.recorder.LoginFailed()
	}
	return apperr.InvalidCredentials()
}
