// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/service"
)

// Route paths relative to /api/v1.
const (
	RouteLanguages       = "/languages"
	RouteArtists         = "/artists"
	RouteLandingArtists  = "/landing-artists"
	RouteGlossary        = "/glossary"
	RoutePresaleArtworks = "/presale-artworks"
	RouteTranslations    = "/translations"
	RouteSeoPosts        = "/seo-posts"
	RouteJobs            = "/translation-jobs"
	RouteEvents          = "/events"
	RouteCache           = "/cache"
)

// Register mounts every API route on r. Authentication is applied by the
// caller.
func (h *Handler) Register(r chi.Router) {
	r.Get(RouteLanguages, h.ListLanguages)
	r.Get(RouteLanguages+"/{code}", h.GetLanguage)

	registerCRUD(r, RouteArtists, resource[model.Artist, service.ArtistInput]{h: h, svc: h.svc.Artists, name: "artist"})
	registerCRUD(r, RouteLandingArtists, resource[model.LandingArtist, service.LandingArtistInput]{h: h, svc: h.svc.LandingArtists, name: "landing artist"})
	registerCRUD(r, RouteGlossary, resource[model.GlossaryItem, service.GlossaryInput]{h: h, svc: h.svc.Glossary, name: "glossary item"})

	r.Post(RoutePresaleArtworks+"/swap", h.SwapPresaleArtworks)
	registerCRUD(r, RoutePresaleArtworks, resource[model.PresaleArtwork, service.PresaleArtworkInput]{h: h, svc: h.svc.PresaleArtworks, name: "presale artwork"})

	r.Get(RouteTranslations, h.ListTranslations)
	r.Put(RouteTranslations+"/{id}", h.UpdateTranslation)

	r.Route(RouteSeoPosts, func(r chi.Router) {
		r.Get("/", h.ListSeoPosts)
		r.Post("/", h.CreateSeoPost)
		r.Get("/{id}", h.GetSeoPost)
		r.Put("/{id}", h.UpdateSeoPost)
		r.Delete("/{id}", h.DeleteSeoPost)
		r.Get("/{id}/translations", h.ListSeoPostTranslations)
		r.Post("/{id}/translations", h.CreateSeoPostTranslation)
		r.Get("/{id}/tags", h.ListSeoPostTags)
		r.Post("/{id}/pin", h.PinSeoPost)
		r.Delete("/{id}/pin", h.UnpinSeoPost)
	})

	r.Get(RouteJobs, h.ListTranslationJobs)
	r.Get(RouteJobs+"/counts", h.TranslationJobCounts)
	r.Post(RouteJobs+"/{id}/retry", h.RetryTranslationJob)

	r.Get(RouteEvents, h.ListEvents)

	r.Get(RouteCache, h.CacheStats)
	r.Delete(RouteCache, h.ClearCache)
}
