// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package csrf implements cookie-bound, double-submit anti-forgery protection.

A per-client secret is bound to the browser by an httpOnly, SameSite=Strict
cookie. Tokens handed to the page are derived from that secret:

	token = salt "." base64url(HMAC-SHA256(secret, salt))

so any number of tokens verify against one secret, and a cross-site page that
cannot read the token cannot forge one.

Lifecycle:

  - No token issued: the request carries no cookie (or an unknown session).
  - Token issued, pending validation: the cookie is set and the page holds a token.

Every failure in [Guard.Validate] fails closed, and [Guard.Protect] translates
all of them into the single "Invalid CSRF token" response.
*/
package csrf

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/constants"
	"github.com/taibuivan/secureblog/internal/platform/respond"
	"github.com/taibuivan/secureblog/internal/platform/sec"
)

// Validation failures. All of them surface to the client as the same 403.
var (
	ErrNoSecret     = errors.New("csrf: no secret bound to request")
	ErrMissingToken = errors.New("csrf: token missing from request")
	ErrMalformed    = errors.New("csrf: token malformed")
	ErrMismatch     = errors.New("csrf: token does not match secret")
)

const (
	saltBytes   = 8
	secretBytes = 32
)

// SecretStore binds a secret to the client issuing the request.
type SecretStore interface {
	// Load returns the secret bound to the request, or [ErrNoSecret].
	Load(ctx context.Context, request *http.Request) (string, error)

	// Establish returns the bound secret, creating one and setting the
	// binding cookie on writer when none exists yet.
	Establish(ctx context.Context, writer http.ResponseWriter, request *http.Request) (string, error)
}

// RejectionRecorder counts anti-forgery rejections by reason.
type RejectionRecorder interface {
	CSRFRejected(reason string)
}

// Guard issues and validates anti-forgery tokens.
type Guard struct {
	store    SecretStore
	recorder RejectionRecorder
}

// NewGuard creates a Guard backed by store. recorder may be nil.
func NewGuard(store SecretStore, recorder RejectionRecorder) *Guard {
	return &Guard{store: store, recorder: recorder}
}

// TokenResponse is the body of GET /csrf-token.
type TokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// # Issuance

// IssueToken binds a secret to the client if needed and returns a fresh token for it.
func (guard *Guard) IssueToken(writer http.ResponseWriter, request *http.Request) (string, error) {
	secret, err := guard.store.Establish(request.Context(), writer, request)
	if err != nil {
		return "", err
	}
	return deriveToken(secret)
}

// TokenHandler serves GET /csrf-token.
func (guard *Guard) TokenHandler(writer http.ResponseWriter, request *http.Request) {
	token, err := guard.IssueToken(writer, request)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	// Tokens are per-response; intermediaries must not replay them.
	writer.Header().Set("Cache-Control", "no-store")
	respond.OK(writer, TokenResponse{CSRFToken: token})
}

// # Validation

// Validate checks the submitted token against the secret bound to the request.
func (guard *Guard) Validate(request *http.Request) error {
	secret, err := guard.store.Load(request.Context(), request)
	if err != nil {
		return err
	}

	token := submittedToken(request)
	if token == "" {
		return ErrMissingToken
	}

	return verifyToken(secret, token)
}

// Protect rejects unsafe requests that do not carry a valid token.
//
// GET, HEAD and OPTIONS pass through untouched.
func (guard *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(writer, request)
			return
		}

		if err := guard.Validate(request); err != nil {
			guard.reject(writer, request, err)
			return
		}

		next.ServeHTTP(writer, request)
	})
}

func (guard *Guard) reject(writer http.ResponseWriter, request *http.Request, err error) {
	if guard.recorder != nil {
		guard.recorder.CSRFRejected(reason(err))
	}
	respond.Error(writer, request, translate(err))
}

// translate is the one place validation errors become client responses.
//
// Store outages are reported as such, but still reject the request.
func translate(err error) *apperr.AppError {
	switch {
	case errors.Is(err, ErrNoSecret),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrMalformed),
		errors.Is(err, ErrMismatch):
		return apperr.InvalidCSRF().WithCause(err)
	default:
		return apperr.ServiceUnavailable("Anti-forgery check unavailable").WithCause(err)
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrNoSecret):
		return "no_secret"
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrMismatch):
		return "mismatch"
	default:
		return "store_error"
	}
}

// submittedToken reads the token from the headers, falling back to a urlencoded form field.
func submittedToken(request *http.Request) string {
	for _, header := range []string{constants.HeaderXCSRFToken, constants.HeaderXXSRFToken} {
		if token := strings.TrimSpace(request.Header.Get(header)); token != "" {
			return token
		}
	}

	contentType := request.Header.Get(constants.HeaderContentType)
	if strings.HasPrefix(contentType, constants.ContentTypeForm) {
		return strings.TrimSpace(request.PostFormValue(constants.FormFieldCSRF))
	}
	return ""
}

// # Token Derivation

// NewSecret generates a random secret suitable for a [SecretStore].
func NewSecret() (string, error) {
	return sec.GenerateSecureToken(secretBytes)
}

func deriveToken(secret string) (string, error) {
	salt, err := sec.GenerateSecureToken(saltBytes)
	if err != nil {
		return "", err
	}
	return salt + "." + sign(secret, salt), nil
}

func verifyToken(secret, token string) error {
	salt, signature, found := strings.Cut(token, ".")
	if !found || salt == "" || signature == "" {
		return ErrMalformed
	}

	provided, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return ErrMalformed
	}

	expected, _ := base64.RawURLEncoding.DecodeString(sign(secret, salt))
	if !hmac.Equal(provided, expected) {
		return ErrMismatch
	}
	return nil
}

func sign(secret, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(salt))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
