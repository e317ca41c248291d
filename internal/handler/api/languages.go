// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListLanguages handles GET /api/v1/languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.svc.Languages.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "list languages")
		return
	}
	WriteSuccess(w, langs, &Meta{Total: int64(len(langs))})
}

// GetLanguage handles GET /api/v1/languages/{code}
func (h *Handler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.svc.Languages.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve language")
		return
	}
	WriteSuccess(w, lang, nil)
}
