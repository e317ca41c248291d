// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "net/http"

// SwapRequest is the body of POST /presale-artworks/swap.
type SwapRequest struct {
	FirstID  int64 `json:"first_id"`
	SecondID int64 `json:"second_id"`
}

// SwapPresaleArtworks handles POST /api/v1/presale-artworks/swap
func (h *Handler) SwapPresaleArtworks(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FirstID <= 0 || req.SecondID <= 0 {
		WriteError(w, http.StatusBadRequest, "first_id and second_id are required")
		return
	}

	if err := h.svc.PresaleArtworks.SwapOrder(r.Context(), req.FirstID, req.SecondID); err != nil {
		h.writeServiceError(w, r, err, "swap presale artworks")
		return
	}
	WriteMessage(w, "Presale artworks reordered", nil)
}
