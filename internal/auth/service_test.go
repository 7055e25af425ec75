// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/secureblog/internal/auth"
	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/migration"
	"github.com/taibuivan/secureblog/internal/platform/sec"
	"github.com/taibuivan/secureblog/internal/platform/sqlite"
)

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, username string) (string, error) {
	return "token-for-" + userID, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	failures int
}

func (recorder *countingRecorder) LoginFailed() {
	recorder.mu.Lock()
	recorder.failures++
	recorder.mu.Unlock()
}

func newService(t *testing.T) (*auth.Service, *countingRecorder) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.RunSQLite(db, slog.Default()))

	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	recorder := &countingRecorder{}
	return auth.NewService(auth.NewSQLiteUserRepository(db), hasher, stubTokens{}, recorder), recorder
}

/*
TestRegister_Success stores a bcrypt hash and never the plaintext.
*/
func TestRegister_Success(t *testing.T) {
	service, _ := newService(t)

	user, err := service.Register(context.Background(), auth.RegisterInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

/*
TestRegister_Invalid rejects missing and oversize fields before hashing.
*/
func TestRegister_Invalid(t *testing.T) {
	service, _ := newService(t)

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"missing_username", auth.RegisterInput{Password: "pw"}},
		{"blank_username", auth.RegisterInput{Username: "   ", Password: "pw"}},
		{"missing_password", auth.RegisterInput{Username: "bob"}},
		{"password_over_72_bytes", auth.RegisterInput{Username: "bob", Password: strings.Repeat("x", 73)}},
		{"username_too_long", auth.RegisterInput{Username: strings.Repeat("u", 65), Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "got %v", err)
			assert.Equal(t, 400, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestRegister_Duplicate rejects a taken username, including its NFC-equivalent spelling.
*/
func TestRegister_Duplicate(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Username: "jos\u00e9", Password: "pw1"})
	require.NoError(t, err)

	for _, name := range []string{"jos\u00e9", "jose\u0301", " jos\u00e9 "} {
		_, err := service.Register(ctx, auth.RegisterInput{Username: name, Password: "pw2"})
		require.Error(t, err, name)
		assert.True(t, apperr.HasCode(err, apperr.CodeDuplicate))
		assert.Equal(t, auth.MessageUserExists, err.Error())
	}
}

/*
TestRegister_Concurrent lets exactly one of many simultaneous registrations win.
*/
func TestRegister_Concurrent(t *testing.T) {
	service, _ := newService(t)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		duplicate int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Register(context.Background(), auth.RegisterInput{Username: "race", Password: "pw"})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperr.HasCode(err, apperr.CodeDuplicate):
				duplicate++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicate)
}

/*
TestVerify_UniformFailures returns the same error for every bad-credential cause.
*/
func TestVerify_UniformFailures(t *testing.T) {
	service, recorder := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Username: "carol", Password: "right"})
	require.NoError(t, err)

	user, err := service.Verify(ctx, "carol", "right")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)

	_, wrongPassword := service.Verify(ctx, "carol", "wrong")
	_, unknownUser := service.Verify(ctx, "nobody", "right")
	_, blank := service.Verify(ctx, "", "")

	for _, err := range []error{wrongPassword, unknownUser, blank} {
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeInvalidCredentials, appError.Code)
		assert.Equal(t, "Invalid credentials", appError.Message)
		assert.Equal(t, 401, appError.HTTPStatus)
	}

	assert.Equal(t, 3, recorder.failures)
}

/*
TestLogin issues a token for the verified account.
*/
func TestLogin(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, auth.RegisterInput{Username: "dave", Password: "pw"})
	require.NoError(t, err)

	result, err := service.Login(ctx, "dave", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+registered.ID, result.Token)
	assert.Equal(t, registered.ID, result.User.ID)
}

/*
TestListUsers returns accounts in creation order.
*/
func TestListUsers(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		_, err := service.Register(ctx, auth.RegisterInput{Username: name, Password: "pw"})
		require.NoError(t, err)
	}

	users, err := service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "u1", users[0].Username)
	assert.Equal(t, "u3", users[2].Username)
}
