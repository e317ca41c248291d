// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/artadmin/internal/testutil"
	"github.com/olegiv/artadmin/internal/version"
)

type stubCounter struct {
	counts map[string]int64
	err    error
}

func (s stubCounter) Counts(context.Context) (map[string]int64, error) {
	return s.counts, s.err
}

func decodeHealth(t *testing.T, rr *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	return status
}

func TestHealthHealthy(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db, stubCounter{counts: map[string]int64{"pending": 2}}, version.Info{Version: "v1.2.3", GitCommit: "abc1234"}, true)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	status := decodeHealth(t, rr)
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "v1.2.3", status.Version)
	assert.Equal(t, StatusHealthy, status.Checks["database"].Status)
	assert.Contains(t, status.Checks["translation"].Message, "2 pending")
}

func TestHealthDegraded(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	tests := []struct {
		name    string
		jobs    JobCounter
		enabled bool
		check   string
	}{
		{"translator disabled", stubCounter{counts: map[string]int64{}}, false, "translator"},
		{"dead jobs", stubCounter{counts: map[string]int64{"dead": 1}}, true, "translation"},
		{"count failure", stubCounter{err: errors.New("boom")}, true, "translation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(db, tt.jobs, version.Info{}, tt.enabled)
			rr := httptest.NewRecorder()
			h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			status := decodeHealth(t, rr)
			assert.Equal(t, StatusDegraded, status.Status)
			assert.Equal(t, StatusDegraded, status.Checks[tt.check].Status)
		})
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup() // closed database fails every ping

	h := NewHealthHandler(db, nil, version.Info{}, true)

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, StatusUnhealthy, decodeHealth(t, rr).Status)

	rr = httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestLivenessAndReadiness(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewHealthHandler(db, nil, version.Info{}, true)

	rr := httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rr.Body.String())
}
