// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"log/slog"

	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/translator"
	"github.com/olegiv/artadmin/internal/util"
)

func artistFromStore(a store.Artist) model.Artist {
	return model.Artist{
		ID:               a.ID,
		Name:             a.Name,
		Slug:             a.Slug,
		Biography:        util.PtrFromNullString(a.Biography),
		ShortDescription: util.PtrFromNullString(a.ShortDescription),
		AvatarURL:        a.AvatarUrl,
		WalletAddress:    a.WalletAddress,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func landingArtistFromStore(a store.LandingArtist) model.LandingArtist {
	return model.LandingArtist{
		ID:          a.ID,
		ArtistID:    a.ArtistID,
		Title:       util.PtrFromNullString(a.Title),
		Description: util.PtrFromNullString(a.Description),
		ImageURL:    a.ImageUrl,
		Position:    a.Position,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func glossaryItemFromStore(g store.GlossaryItem) model.GlossaryItem {
	return model.GlossaryItem{
		ID:         g.ID,
		Term:       g.Term,
		Definition: g.Definition,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func presaleArtworkFromStore(p store.PresaleArtwork) model.PresaleArtwork {
	price, err := model.ParseMoney(p.Price)
	if err != nil {
		slog.Warn("invalid stored artwork price", "artwork_id", p.ID, "price", p.Price, "error", err)
	}
	return model.PresaleArtwork{
		ID:          p.ID,
		ArtistID:    util.PtrFromNullInt64(p.ArtistID),
		Title:       p.Title,
		Description: util.PtrFromNullString(p.Description),
		ImageURL:    p.ImageUrl,
		Price:       price,
		Currency:    p.Currency,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func translationFromStore(t store.Translation) model.Translation {
	return model.Translation{
		ID:         t.ID,
		EntityType: t.EntityType,
		EntityID:   t.EntityID,
		Field:      t.Field,
		Value:      t.Value,
		LanguageID: t.LanguageID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// postFromStore decodes the JSON columns of a post row. languageCode may be
// empty when the caller does not know it.
func postFromStore(p store.SeoPost, languageCode string) model.SeoPost {
	content, err := model.ParseContent(p.Content)
	if err != nil {
		slog.Warn("invalid stored post content", "post_id", p.ID, "error", err)
	}
	return model.SeoPost{
		ID:                   p.ID,
		LanguageID:           p.LanguageID,
		LanguageCode:         languageCode,
		OriginalPostID:       util.PtrFromNullInt64(p.OriginalPostID),
		Title:                p.Title,
		MetaDescription:      p.MetaDescription,
		MetaKeywords:         model.DecodeStrings(p.MetaKeywords),
		ListTags:             model.DecodeStrings(p.ListTags),
		Slug:                 p.Slug,
		Content:              content,
		Excerpt:              p.Excerpt,
		Status:               p.Status,
		Pinned:               p.Pinned,
		MainImageURL:         p.MainImageUrl,
		MainImageAlt:         p.MainImageAlt,
		MainImageCaption:     p.MainImageCaption,
		GeneratedHTML:        p.GeneratedHtml,
		JSONLD:               p.JsonLd,
		GeneratedArticleHTML: p.GeneratedArticleHtml,
		TranslationStatus:    p.TranslationStatus,
		TranslationError:     p.TranslationError,
		TranslatedAt:         util.PtrFromNullTime(p.TranslatedAt),
		PublishedAt:          util.PtrFromNullTime(p.PublishedAt),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func jobFromStore(j store.TranslationJob) model.TranslationJob {
	return model.TranslationJob{
		ID:            j.ID,
		BatchID:       j.BatchID,
		Kind:          j.Kind,
		PivotPostID:   j.PivotPostID,
		TargetPostID:  j.TargetPostID,
		ChangedFields: model.DecodeStrings(j.ChangedFields),
		Status:        j.Status,
		Attempts:      j.Attempts,
		LastError:     j.LastError,
		NextAttemptAt: j.NextAttemptAt,
		CompletedAt:   util.PtrFromNullTime(j.CompletedAt),
		CreatedAt:     j.CreatedAt,
	}
}

func eventFromStore(e store.Event) model.Event {
	return model.Event{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}

func translatorLanguage(l store.Language) translator.Language {
	return translator.Language{Code: l.Code, Name: l.Name}
}
