// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the unauthenticated operational endpoints.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/version"
)

// Check statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// JobCounter reports translation job counts per status.
type JobCounter interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db                 *sql.DB
	jobs               JobCounter
	version            version.Info
	translationEnabled bool
	startTime          time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, jobs JobCounter, info version.Info, translationEnabled bool) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		jobs:               jobs,
		version:            info,
		translationEnabled: translationEnabled,
		startTime:          time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Commit    string           `json:"commit,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health.
// The database decides the HTTP status; dead translation jobs or a
// disabled translator only degrade the report.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	checks := map[string]Check{
		"database":    dbCheck,
		"translator":  h.checkTranslator(),
		"translation": h.checkJobs(r.Context()),
	}

	overall := StatusHealthy
	for _, c := range checks {
		if c.Status != StatusHealthy {
			overall = StatusDegraded
		}
	}
	code := http.StatusOK
	if dbCheck.Status == StatusUnhealthy {
		overall = StatusUnhealthy
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Commit:    h.version.GitCommit,
		Checks:    checks,
	})
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - checks if the service can serve traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.checkDatabase(r.Context()).Status != StatusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// checkDatabase verifies database connectivity. Driver errors are not
// exposed on this unauthenticated endpoint.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: StatusUnhealthy, Message: "Database unreachable", Latency: latency.String()}
	}
	return Check{Status: StatusHealthy, Message: "Connected", Latency: latency.String()}
}

func (h *HealthHandler) checkTranslator() Check {
	if !h.translationEnabled {
		return Check{Status: StatusDegraded, Message: "Machine translation is not configured"}
	}
	return Check{Status: StatusHealthy, Message: "Configured"}
}

// checkJobs reports the translation backlog.
func (h *HealthHandler) checkJobs(ctx context.Context) Check {
	if h.jobs == nil {
		return Check{Status: StatusHealthy}
	}
	counts, err := h.jobs.Counts(ctx)
	if err != nil {
		return Check{Status: StatusDegraded, Message: "Failed to count translation jobs"}
	}
	msg := fmt.Sprintf("%d pending, %d processing, %d dead",
		counts[model.JobStatusPending], counts[model.JobStatusProcessing], counts[model.JobStatusDead])
	if counts[model.JobStatusDead] > 0 {
		return Check{Status: StatusDegraded, Message: msg}
	}
	return Check{Status: StatusHealthy, Message: msg}
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
