// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/secureblog/internal/api"
)

/*
TestReadiness_Degraded reports 503 and names the failing dependency.
*/
func TestReadiness_Degraded(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, readiness := api.NewHealthHandlers(logger,
		api.Check{Name: "sqlite", Probe: func(context.Context) error { return nil }},
		api.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }},
		api.Check{Name: "skipped"},
	)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].OK)
	assert.False(t, body.Checks[1].OK)
	assert.Equal(t, "connection refused", body.Checks[1].Error)
}

/*
TestLiveness_AlwaysOK needs no dependencies.
*/
func TestLiveness_AlwaysOK(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(slog.Default())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}
