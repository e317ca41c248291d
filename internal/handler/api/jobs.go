// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "net/http"

// ListTranslationJobs handles GET /api/v1/translation-jobs
// Query: status, limit, offset
func (h *Handler) ListTranslationJobs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50, 1, 500)
	offset := queryInt(r, "offset", 0, 0, 0)

	jobs, err := h.svc.Jobs.List(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err, "list translation jobs")
		return
	}
	WriteSuccess(w, jobs, &Meta{Total: int64(len(jobs)), Limit: limit, Offset: offset})
}

// TranslationJobCounts handles GET /api/v1/translation-jobs/counts
func (h *Handler) TranslationJobCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Jobs.Counts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "count translation jobs")
		return
	}
	WriteSuccess(w, counts, nil)
}

// RetryTranslationJob handles POST /api/v1/translation-jobs/{id}/retry
func (h *Handler) RetryTranslationJob(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "translation job")
	if !ok {
		return
	}
	job, err := h.svc.Jobs.Retry(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "retry translation job")
		return
	}
	WriteMessage(w, "Translation job queued", job)
}

// ListEvents handles GET /api/v1/events
// Query: level, category, limit, offset
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(r, "limit", 50, 1, 500)
	offset := queryInt(r, "offset", 0, 0, 0)

	events, err := h.svc.Events.List(r.Context(), q.Get("level"), q.Get("category"), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err, "list events")
		return
	}
	WriteSuccess(w, events, &Meta{Total: int64(len(events)), Limit: limit, Offset: offset})
}

// CacheStats handles GET /api/v1/cache
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, h.svc.Cache.Stats(), nil)
}

// ClearCache handles DELETE /api/v1/cache
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cache.Clear(r.Context()); err != nil {
		h.writeServiceError(w, r, err, "clear cache")
		return
	}
	h.logger.Info("cache cleared via API")
	WriteMessage(w, "Cache cleared", nil)
}
