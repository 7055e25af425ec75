// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/platform/config"
)

/*
TestLoad_Defaults verifies the documented defaults with the minimum environment.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, config.CSRFStoreCookie, cfg.CSRFStore)
	assert.Equal(t, "_csrf", cfg.CSRFCookieName)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UsesRSA())
	assert.False(t, cfg.TrustProxyHeaders)
}

/*
TestLoad_MissingSecret fails fast without a signing secret, whether the
variable is absent, empty or blank.
*/
func TestLoad_MissingSecret(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))
		t.Setenv("DB_DRIVER", "sqlite")

		_, err := config.Load()
		assert.Error(t, err)
	})

	for _, value := range []string{"", "   "} {
		t.Run("value_"+strconv.Quote(value), func(t *testing.T) {
			t.Setenv("JWT_SECRET", value)
			t.Setenv("DB_DRIVER", "sqlite")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}

/*
TestLoad_RSAWithoutSecret accepts a key pair in place of the shared secret.
*/
func TestLoad_RSAWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesRSA())
	assert.Empty(t, cfg.JWTSecret)
}

/*
TestValidate_CrossField covers rules that depend on more than one variable.
*/
func TestValidate_CrossField(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			DBDriver:       config.DriverSQLite,
			SQLitePath:     ":memory:",
			CSRFStore:      config.CSRFStoreCookie,
			JWTSecret:      "secret",
			JWTTTL:         time.Hour,
			RateLimitRPS:   1,
			RateLimitBurst: 1,
		}
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"valid", func(*config.Config) {}, true},
		{"postgres_without_url", func(c *config.Config) { c.DBDriver = config.DriverPostgres }, false},
		{"unknown_driver", func(c *config.Config) { c.DBDriver = "oracle" }, false},
		{"redis_store_without_url", func(c *config.Config) { c.CSRFStore = config.CSRFStoreRedis }, false},
		{"redis_store_with_url", func(c *config.Config) {
			c.CSRFStore = config.CSRFStoreRedis
			c.RedisURL = "redis://localhost:6379/0"
		}, true},
		{"half_rsa_pair", func(c *config.Config) { c.JWTPrivKeyPath = "key.pem" }, false},
		{"no_secret", func(c *config.Config) { c.JWTSecret = "" }, false},
		{"rsa_pair_without_secret", func(c *config.Config) {
			c.JWTSecret = ""
			c.JWTPrivKeyPath = "private.pem"
			c.JWTPubKeyPath = "public.pem"
		}, true},
		{"zero_ttl", func(c *config.Config) { c.JWTTTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestIsOriginAllowed matches configured origins case-insensitively.
*/
func TestIsOriginAllowed(t *testing.T) {
	cfg := config.Config{AllowedOrigins: []string{"http://localhost:3000", " https://blog.example "}}

	assert.True(t, cfg.IsOriginAllowed("http://localhost:3000"))
	assert.True(t, cfg.IsOriginAllowed("https://BLOG.example"))
	assert.False(t, cfg.IsOriginAllowed("https://evil.example"))
}
