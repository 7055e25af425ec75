// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers, CSRF transport and cookie configuration.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "secureblog-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds database/redis connection and migrations at boot.
	StartupTimeout = 30 * time.Second

	// MaxRequestBodyBytes caps JSON payloads accepted by handlers.
	MaxRequestBodyBytes = 1 << 20
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderXCSRFToken    = "X-CSRF-Token"
	HeaderXXSRFToken    = "X-XSRF-Token"
	HeaderContentType   = "Content-Type"
	BearerScheme        = "bearer"
	ContentTypeJSON     = "application/json; charset=utf-8"
	ContentTypeForm     = "application/x-www-form-urlencoded"
	FormFieldCSRF       = "_csrf"
	RedisPrefixCSRF     = "csrf:secret:"
	MetricsNamespace    = "secureblog"
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)
