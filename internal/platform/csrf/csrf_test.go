// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package csrf_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/csrf"
)

var cookieOptions = csrf.CookieOptions{Name: "_csrf", TTL: time.Hour}

type countingRecorder map[string]int

func (recorder countingRecorder) CSRFRejected(reason string) { recorder[reason]++ }

// issue performs GET /csrf-token and returns the token and binding cookie.
func issue(t *testing.T, guard *csrf.Guard, cookies ...*http.Cookie) (string, []*http.Cookie) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/csrf-token", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	guard.TokenHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body csrf.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.CSRFToken)
	return body.CSRFToken, rec.Result().Cookies()
}

func protected(guard *csrf.Guard) http.Handler {
	return guard.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func post(handler http.Handler, token string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{}`))
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["code"].(string)
}

/*
TestIssueToken_Cookie verifies the binding cookie attributes.
*/
func TestIssueToken_Cookie(t *testing.T) {
	guard := csrf.NewGuard(csrf.NewCookieStore(cookieOptions), nil)

	_, cookies := issue(t, guard)
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, "_csrf", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
}

/*
TestIssueToken_ReusesSecret returns distinct tokens that all verify against one secret.
*/
func TestIssueToken_ReusesSecret(t *testing.T) {
	guard := csrf.NewGuard(csrf.NewCookieStore(cookieOptions), nil)
	handler := protected(guard)

	first, cookies := issue(t, guard)
	second, again := issue(t, guard, cookies...)

	assert.Empty(t, again, "an existing binding must not be replaced")
	assert.NotEqual(t, first, second)

	assert.Equal(t, http.StatusOK, post(handler, first, cookies).Code)
	assert.Equal(t, http.StatusOK, post(handler, second, cookies).Code)
}

/*
TestProtect_Rejections covers every fail-closed path with the same 403 body.
*/
func TestProtect_Rejections(t *testing.T) {
	recorder := countingRecorder{}
	guard := csrf.NewGuard(csrf.NewCookieStore(cookieOptions), recorder)
	handler := protected(guard)

	token, cookies := issue(t, guard)
	otherToken, _ := issue(t, guard)

	tests := []struct {
		name    string
		token   string
		cookies []*http.Cookie
		reason  string
	}{
		{"no_cookie", token, nil, "no_secret"},
		{"no_token", "", cookies, "missing_token"},
		{"garbage_token", "garbage", cookies, "malformed"},
		{"bad_base64", "salt.%%%", cookies, "malformed"},
		{"foreign_secret", otherToken, cookies, "mismatch"},
		{"tampered_salt", "X" + token, cookies, "mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := recorder[tt.reason]
			rec := post(handler, tt.token, tt.cookies)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, apperr.CodeInvalidCSRF, errorCode(t, rec))
			assert.Contains(t, rec.Body.String(), "Invalid CSRF token")
			assert.Equal(t, before+1, recorder[tt.reason])
		})
	}
}

/*
TestProtect_SafeMethods lets reads through without a token.
*/
func TestProtect_SafeMethods(t *testing.T) {
	handler := protected(csrf.NewGuard(csrf.NewCookieStore(cookieOptions), nil))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, "/posts", nil))
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(method, "/posts", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code, method)
	}
}

/*
TestValidate_AlternateTransports accepts X-XSRF-Token and the _csrf form field.
*/
func TestValidate_AlternateTransports(t *testing.T) {
	guard := csrf.NewGuard(csrf.NewCookieStore(cookieOptions), nil)
	token, cookies := issue(t, guard)

	t.Run("xsrf_header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.Header.Set("X-XSRF-Token", token)
		req.AddCookie(cookies[0])
		assert.NoError(t, guard.Validate(req))
	})

	t.Run("form_field", func(t *testing.T) {
		form := url.Values{"_csrf": {token}}
		req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		assert.NoError(t, guard.Validate(req))
	})

	t.Run("form_field_ignored_for_json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(`{"_csrf":"`+token+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookies[0])
		assert.ErrorIs(t, guard.Validate(req), csrf.ErrMissingToken)
	})
}
