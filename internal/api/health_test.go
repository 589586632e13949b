// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

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

	"github.com/taibuivan/comicshelf/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestHealth_Liveness verifies the liveness probe never consults dependencies.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{
		CheckDatabase: func(context.Context) error { return errors.New("down") },
	}, discardLogger())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestHealth_Readiness covers healthy, degraded and optional-cache cases.
*/
func TestHealth_Readiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       HealthDependencies
		wantStatus int
		wantState  string
		wantChecks int
		wantCode   string
	}{
		{"All healthy", HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready", 2, ""},
		{"Redis not configured", HealthDependencies{CheckDatabase: healthy}, http.StatusOK, "ready", 1, ""},
		{"Database down", HealthDependencies{CheckDatabase: failing, CheckCache: healthy}, http.StatusServiceUnavailable, "degraded", 2, apperr.CodeServiceUnavailable},
		{"Redis down", HealthDependencies{CheckDatabase: healthy, CheckCache: failing}, http.StatusServiceUnavailable, "degraded", 2, apperr.CodeServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, readiness := NewHealthHandlers(tc.deps, discardLogger())

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tc.wantStatus, recorder.Code)

			var body struct {
				Status string        `json:"status"`
				Code   string        `json:"code"`
				Checks []checkResult `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tc.wantState, body.Status)
			assert.Equal(t, tc.wantCode, body.Code)
			assert.Len(t, body.Checks, tc.wantChecks)
		})
	}
}
