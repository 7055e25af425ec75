// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/sec"
)

func newTokenService(t *testing.T, secret string) *sec.TokenService {
	t.Helper()
	service, err := sec.NewHMACTokenService([]byte(secret), "secureblog.test", time.Hour)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip issues and verifies a token carrying the identity claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "test_secret")

	token, err := service.GenerateAccessToken("user-1", "alice")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Failures classifies every rejected token.
*/
func TestTokenService_Failures(t *testing.T) {
	service := newTokenService(t, "test_secret")
	foreign := newTokenService(t, "another_secret")

	foreignToken, err := foreign.GenerateAccessToken("user-1", "alice")
	require.NoError(t, err)

	stale := newTokenService(t, "test_secret").WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})
	staleToken, err := stale.GenerateAccessToken("user-1", "alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "invalid.token.here", sec.ErrTokenMalformed},
		{"empty", "", sec.ErrTokenMalformed},
		{"wrong_signature", foreignToken, sec.ErrTokenMalformed},
		{"expired", staleToken, sec.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifyToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

/*
TestTokenService_Construction rejects unusable settings.
*/
func TestTokenService_Construction(t *testing.T) {
	_, err := sec.NewHMACTokenService(nil, "iss", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewHMACTokenService([]byte("s"), "iss", 0)
	assert.Error(t, err)

	_, err = sec.NewRSATokenService("/does/not/exist.pem", "/nope.pem", "iss", time.Hour)
	assert.Error(t, err)
}
