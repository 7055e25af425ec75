// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared by the consumers.
package sec

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Callers map both to the same "invalid token" response,
// but logs and metrics keep them apart.
var (
	ErrTokenMalformed = errors.New("auth: malformed token")
	ErrTokenExpired   = errors.New("auth: token expired")
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The identity travels inside the token so the bearer middleware can rebuild
// the caller without a database round-trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenService handles generation and verification of JWT access tokens.
//
// It signs with HS256 from a shared secret, or RS256 when loaded from PEM key files.
type TokenService struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewHMACTokenService creates a TokenService signing with HS256.
func NewHMACTokenService(secret []byte, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty jwt secret")
	}
	if timeToLive <= 0 {
		return nil, fmt.Errorf("auth: invalid token lifetime %s", timeToLive)
	}

	return &TokenService{
		method:    jwt.SigningMethodHS256,
		signKey:   secret,
		verifyKey: secret,
		issuer:    issuer,
		ttl:       timeToLive,
		now:       time.Now,
	}, nil
}

// NewRSATokenService creates a TokenService signing with RS256.
// It reads RSA keys from the provided filesystem paths.
func NewRSATokenService(privateKeyPath, publicKeyPath, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if timeToLive <= 0 {
		return nil, fmt.Errorf("auth: invalid token lifetime %s", timeToLive)
	}

	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to parse public key: %w", err)
	}

	return &TokenService{
		method:    jwt.SigningMethodRS256,
		signKey:   privateKey,
		verifyKey: publicKey,
		issuer:    issuer,
		ttl:       timeToLive,
		now:       time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

// TTL reports the lifetime applied to new tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// GenerateAccessToken creates a new signed JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID, username string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.signKey)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// It returns an error wrapping [ErrTokenExpired] for stale tokens and
// [ErrTokenMalformed] for everything else.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.verifyKey, nil
	},
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	return claims, nil
}
