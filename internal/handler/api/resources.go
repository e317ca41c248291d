// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// crudService is the shape shared by the editorial entity services.
type crudService[T, In any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id int64, in In) (T, error)
	Delete(ctx context.Context, id int64) error
}

// resource serves list/get/create/update/delete for one entity.
type resource[T, In any] struct {
	h    *Handler
	svc  crudService[T, In]
	name string // singular, lowercase
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, POST /, GET /{id}, PUT /{id}, DELETE /{id}
func registerCRUD[T, In any](r chi.Router, base string, res resource[T, In]) {
	r.Get(base, res.list)
	r.Post(base, res.create)
	r.Get(base+"/{id}", res.get)
	r.Put(base+"/{id}", res.update)
	r.Delete(base+"/{id}", res.delete)
}

func (res resource[T, In]) list(w http.ResponseWriter, r *http.Request) {
	items, err := res.svc.List(r.Context())
	if err != nil {
		res.h.writeServiceError(w, r, err, "list "+res.name+"s")
		return
	}
	WriteSuccess(w, items, &Meta{Total: int64(len(items))})
}

func (res resource[T, In]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, res.name)
	if !ok {
		return
	}
	item, err := res.svc.Get(r.Context(), id)
	if err != nil {
		res.h.writeServiceError(w, r, err, "retrieve "+res.name)
		return
	}
	WriteSuccess(w, item, nil)
}

func (res resource[T, In]) create(w http.ResponseWriter, r *http.Request) {
	var in In
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := res.svc.Create(r.Context(), in)
	if err != nil {
		res.h.writeServiceError(w, r, err, "create "+res.name)
		return
	}
	WriteCreated(w, capitalizeFirst(res.name)+" created", item)
}

func (res resource[T, In]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, res.name)
	if !ok {
		return
	}
	var in In
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := res.svc.Update(r.Context(), id, in)
	if err != nil {
		res.h.writeServiceError(w, r, err, "update "+res.name)
		return
	}
	WriteMessage(w, capitalizeFirst(res.name)+" updated", item)
}

func (res resource[T, In]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, res.name)
	if !ok {
		return
	}
	if err := res.svc.Delete(r.Context(), id); err != nil {
		res.h.writeServiceError(w, r, err, "delete "+res.name)
		return
	}
	WriteMessage(w, capitalizeFirst(res.name)+" deleted", nil)
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
