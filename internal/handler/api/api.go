// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON admin API handlers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/service"
	"github.com/olegiv/artadmin/internal/translator"
)

// maxBodyBytes caps request bodies; post content is the largest payload.
const maxBodyBytes = 4 << 20

// Services bundles the services the API exposes.
type Services struct {
	Languages       *service.LanguageService
	Artists         *service.ArtistService
	LandingArtists  *service.LandingArtistService
	Glossary        *service.GlossaryService
	PresaleArtworks *service.PresaleArtworkService
	Translations    *service.TranslationService
	Posts           *service.PostService
	Jobs            *service.JobService
	Events          *service.EventService
	Cache           *cache.Manager
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc    Services
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Response is the standard API response wrapper.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int64 `json:"page,omitempty"`
	PerPage int64 `json:"per_page,omitempty"`
	Pages   int64 `json:"pages,omitempty"`
	Limit   int64 `json:"limit,omitempty"`
	Offset  int64 `json:"offset,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response carrying data.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// WriteCreated writes a 201 response carrying the created resource.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// WriteMessage writes a 200 response for a mutation.
func WriteMessage(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// WriteError writes a failed response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message})
}

// writeServiceError maps service errors to responses. Unknown errors are
// logged and answered with a generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTranslationExists):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNotPivot):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, translator.ErrDisabled):
		WriteError(w, http.StatusServiceUnavailable, translator.ErrDisabled.Error())
	default:
		h.logger.Error("failed to "+action, "error", err, "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// decodeJSON decodes the request body into dst. It writes a 400 response
// and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "Request body is empty")
			return false
		}
		WriteError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// parseIDParam parses the {id} URL parameter. It writes a 400 response and
// returns false when the parameter is not a positive integer.
func parseIDParam(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid "+entityName+" ID")
		return 0, false
	}
	return id, true
}

// queryInt returns the integer query parameter name, or def when it is
// missing or malformed. Values are clamped to [minVal, maxVal].
func queryInt(r *http.Request, name string, def, minVal, maxVal int64) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return def
	}
	if v < minVal {
		return minVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
