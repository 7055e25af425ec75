// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/ctxutil"
	"github.com/taibuivan/secureblog/internal/platform/middleware"
	"github.com/taibuivan/secureblog/internal/platform/sec"
)

type stubVerifier struct {
	token  string
	userID string
}

func (stub stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	switch tokenStr {
	case stub.token:
		return &sec.AuthClaims{UserID: stub.userID, Username: "alice"}, nil
	case "expired":
		return nil, fmt.Errorf("%w: past exp", sec.ErrTokenExpired)
	default:
		return nil, sec.ErrTokenMalformed
	}
}

type countingRecorder map[string]int

func (recorder countingRecorder) TokenRejected(reason string) { recorder[reason]++ }

/*
TestAuthenticate distinguishes a missing token (401) from an invalid one (403).
*/
func TestAuthenticate(t *testing.T) {
	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = ctxutil.GetAuthUser(r.Context()).UserID
		w.WriteHeader(http.StatusOK)
	})

	recorder := countingRecorder{}
	handler := middleware.Authenticate(stubVerifier{token: "good", userID: "u1"}, recorder)(inner)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"no_header", "", http.StatusUnauthorized, apperr.CodeUnauthenticated},
		{"blank_bearer", "Bearer   ", http.StatusUnauthorized, apperr.CodeUnauthenticated},
		{"other_scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, apperr.CodeUnauthenticated},
		{"garbage_token", "Bearer not-a-jwt", http.StatusForbidden, apperr.CodeInvalidToken},
		{"expired_token", "Bearer expired", http.StatusForbidden, apperr.CodeInvalidToken},
		{"valid_token", "bearer good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
			}
		})
	}

	assert.Equal(t, "u1", seenUserID)
	assert.Equal(t, 3, recorder["missing"])
	assert.Equal(t, 1, recorder["malformed"])
	assert.Equal(t, 1, recorder["expired"])
}

/*
TestBearerToken parses the header leniently on case and whitespace.
*/
func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "  BEARER  abc.def.ghi ")

	token, ok := middleware.BearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}
