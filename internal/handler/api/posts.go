// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/artadmin/internal/service"
)

// CreateTranslationRequest is the body of POST /seo-posts/{id}/translations.
type CreateTranslationRequest struct {
	LanguageCode string `json:"language_code"`
}

// ListSeoPosts handles GET /api/v1/seo-posts
// Query: language, status, pivots (bool), page, per_page
func (h *Handler) ListSeoPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pivotsOnly, _ := strconv.ParseBool(q.Get("pivots"))

	page, err := h.svc.Posts.List(r.Context(), service.PostFilter{
		LanguageCode: q.Get("language"),
		Status:       strings.ToUpper(q.Get("status")),
		PivotsOnly:   pivotsOnly,
		Page:         queryInt(r, "page", 1, 1, 0),
		PerPage:      queryInt(r, "per_page", 20, 1, 100),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "list posts")
		return
	}

	pages := page.Total / page.PerPage
	if page.Total%page.PerPage != 0 {
		pages++
	}
	WriteSuccess(w, page.Posts, &Meta{
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   pages,
	})
}

// GetSeoPost handles GET /api/v1/seo-posts/{id}
func (h *Handler) GetSeoPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	post, err := h.svc.Posts.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "retrieve post")
		return
	}
	WriteSuccess(w, post, nil)
}

// CreateSeoPost handles POST /api/v1/seo-posts
// A body with original_post_id creates a translation of that pivot.
func (h *Handler) CreateSeoPost(w http.ResponseWriter, r *http.Request) {
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.svc.Posts.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "create post")
		return
	}
	WriteCreated(w, "Post created", post)
}

// UpdateSeoPost handles PUT /api/v1/seo-posts/{id}
// Translations of a changed pivot are refreshed in the background.
func (h *Handler) UpdateSeoPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.svc.Posts.Update(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "update post")
		return
	}
	WriteMessage(w, "Post updated", post)
}

// DeleteSeoPost handles DELETE /api/v1/seo-posts/{id}
func (h *Handler) DeleteSeoPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "delete post")
		return
	}
	WriteMessage(w, "Post deleted", nil)
}

// ListSeoPostTranslations handles GET /api/v1/seo-posts/{id}/translations
func (h *Handler) ListSeoPostTranslations(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	posts, err := h.svc.Posts.ListTranslations(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "list post translations")
		return
	}
	WriteSuccess(w, posts, &Meta{Total: int64(len(posts))})
}

// CreateSeoPostTranslation handles POST /api/v1/seo-posts/{id}/translations
func (h *Handler) CreateSeoPostTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	var req CreateTranslationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LanguageCode == "" {
		WriteError(w, http.StatusBadRequest, "language_code is required")
		return
	}

	post, err := h.svc.Posts.CreateTranslation(r.Context(), id, req.LanguageCode)
	if err != nil {
		h.writeServiceError(w, r, err, "create post translation")
		return
	}
	WriteCreated(w, "Translation created", post)
}

// ListSeoPostTags handles GET /api/v1/seo-posts/{id}/tags
func (h *Handler) ListSeoPostTags(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	tags, err := h.svc.Posts.Tags(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "list post tags")
		return
	}
	WriteSuccess(w, tags, &Meta{Total: int64(len(tags))})
}

// PinSeoPost handles POST /api/v1/seo-posts/{id}/pin
func (h *Handler) PinSeoPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	if err := h.svc.Posts.Pin(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "pin post")
		return
	}
	WriteMessage(w, "Post group pinned", nil)
}

// UnpinSeoPost handles DELETE /api/v1/seo-posts/{id}/pin
func (h *Handler) UnpinSeoPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "post")
	if !ok {
		return
	}
	if err := h.svc.Posts.Unpin(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "unpin post")
		return
	}
	WriteMessage(w, "Post group unpinned", nil)
}
