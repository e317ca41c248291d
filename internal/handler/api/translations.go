// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/artadmin/internal/service"
)

// UpdateTranslationRequest is the body of PUT /translations/{id}.
type UpdateTranslationRequest struct {
	Value *string `json:"value"`
}

// ListTranslations handles GET /api/v1/translations
// Query: entity_type (required), entity_id, limit, offset
func (h *Handler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	f := service.TranslationFilter{
		EntityType: r.URL.Query().Get("entity_type"),
		EntityID:   queryInt(r, "entity_id", 0, 0, 0),
		Limit:      queryInt(r, "limit", 100, 1, 500),
		Offset:     queryInt(r, "offset", 0, 0, 0),
	}

	rows, err := h.svc.Translations.List(r.Context(), f)
	if err != nil {
		h.writeServiceError(w, r, err, "list translations")
		return
	}
	meta := &Meta{Total: int64(len(rows))}
	if f.EntityID == 0 {
		meta.Limit, meta.Offset = f.Limit, f.Offset
	}
	WriteSuccess(w, rows, meta)
}

// UpdateTranslation handles PUT /api/v1/translations/{id}
func (h *Handler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "translation")
	if !ok {
		return
	}
	var req UpdateTranslationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Value == nil {
		WriteError(w, http.StatusBadRequest, "value is required")
		return
	}

	t, err := h.svc.Translations.UpdateValue(r.Context(), id, *req.Value)
	if err != nil {
		h.writeServiceError(w, r, err, "update translation")
		return
	}
	WriteMessage(w, "Translation updated", t)
}
