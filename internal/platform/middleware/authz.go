// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/platform/ctxkey"
	"github.com/taibuivan/secureblog/internal/platform/ctxutil"
	"github.com/taibuivan/secureblog/internal/platform/respond"
	"github.com/taibuivan/secureblog/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Declaring it here decouples the middleware from [sec.TokenService] so tests
// can inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// RejectionRecorder counts bearer rejections by reason.
type RejectionRecorder interface {
	TokenRejected(reason string)
}

// Authenticate requires a valid bearer token on every request it wraps.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>'.
//  2. Absent header, other scheme or blank token: 401 "No token provided".
//  3. Token fails verification (signature, format, expiry): 403 "Invalid token".
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, recorder RejectionRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Presence ───────────────────────────────────────────────────
			tokenStr, ok := BearerToken(request)
			if !ok {
				record(recorder, "missing")
				respond.Error(writer, request, apperr.Unauthenticated())
				return
			}

			// ── 2. Verification ───────────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				reason := "malformed"
				if errors.Is(err, sec.ErrTokenExpired) {
					reason = "expired"
				}
				record(recorder, reason)
				respond.Error(writer, request, apperr.InvalidToken().WithCause(err))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if identity := identityFrom(request.Context()); identity != nil {
				identity.set(claims.UserID)
			}
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
//
// The scheme is matched case-insensitively; surrounding whitespace is ignored.
func BearerToken(request *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func record(recorder RejectionRecorder, reason string) {
	if recorder != nil {
		recorder.TokenRejected(reason)
	}
}

// # Identity Slot

// Identity carries the authenticated user id from the bearer check back up to
// the access logger, which wraps it.
type Identity struct {
	mu     sync.Mutex
	userID string
}

// UserID returns the recorded user id, or "" for anonymous requests.
func (identity *Identity) UserID() string {
	identity.mu.Lock()
	defer identity.mu.Unlock()
	return identity.userID
}

func (identity *Identity) set(userID string) {
	identity.mu.Lock()
	identity.userID = userID
	identity.mu.Unlock()
}

func withIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

func identityFrom(ctx context.Context) *Identity {
	identity, _ := ctx.Value(ctxkey.KeyIdentity).(*Identity)
	return identity
}
