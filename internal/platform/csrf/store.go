// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package csrf

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// CookieOptions describes the binding cookie shared by every store.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (options CookieOptions) write(writer http.ResponseWriter, value string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     options.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(options.TTL.Seconds()),
		HttpOnly: true,
		Secure:   options.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (options CookieOptions) read(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(options.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// CookieStore keeps the secret itself in the binding cookie.
//
// The cookie is httpOnly, so page scripts can read tokens but never the secret.
type CookieStore struct {
	options CookieOptions
}

// NewCookieStore creates a store that binds secrets by cookie alone.
func NewCookieStore(options CookieOptions) *CookieStore {
	return &CookieStore{options: options}
}

// Load implements [SecretStore].
func (store *CookieStore) Load(_ context.Context, request *http.Request) (string, error) {
	secret, ok := store.options.read(request)
	if !ok {
		return "", ErrNoSecret
	}
	return secret, nil
}

// Establish implements [SecretStore].
func (store *CookieStore) Establish(ctx context.Context, writer http.ResponseWriter, request *http.Request) (string, error) {
	secret, err := store.Load(ctx, request)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrNoSecret) {
		return "", err
	}

	secret, err = NewSecret()
	if err != nil {
		return "", err
	}
	store.options.write(writer, secret)
	return secret, nil
}
