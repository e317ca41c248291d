// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/artadmin/internal/cache"
	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/seo"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/translator"
	"github.com/olegiv/artadmin/internal/util"
)

// JobNotifier is told about translation jobs that are ready to run.
// Jobs it drops are still picked up by the periodic sweep.
type JobNotifier interface {
	Enqueue(jobIDs ...int64)
}

// PostInput is the editable part of a blog post.
type PostInput struct {
	LanguageCode     string               `json:"language_code"`
	OriginalPostID   *int64               `json:"original_post_id"`
	Title            string               `json:"title"`
	MetaDescription  string               `json:"meta_description"`
	MetaKeywords     []string             `json:"meta_keywords"`
	ListTags         []string             `json:"list_tags"`
	Slug             string               `json:"slug"`
	Content          []model.ContentBlock `json:"content"`
	Excerpt          string               `json:"excerpt"`
	Status           string               `json:"status"`
	MainImageURL     string               `json:"main_image_url"`
	MainImageAlt     string               `json:"main_image_alt"`
	MainImageCaption string               `json:"main_image_caption"`
}

// PostFilter selects a page of posts.
type PostFilter struct {
	LanguageCode string
	Status       string
	PivotsOnly   bool
	Page         int64
	PerPage      int64
}

// PostPage is one page of posts.
type PostPage struct {
	Posts   []model.SeoPost `json:"posts"`
	Total   int64           `json:"total"`
	Page    int64           `json:"page"`
	PerPage int64           `json:"per_page"`
}

// PostService manages blog posts and their translation groups.
//
// A pivot post is the source of truth of its group. Saving a pivot writes the
// group status to every translation in the same transaction and queues one
// propagation job per translation when its text changed.
type PostService struct {
	db         *sql.DB
	queries    *store.Queries
	cache      *cache.Manager
	translator translator.Translator
	notifier   JobNotifier
	site       seo.SiteConfig
	logger     *slog.Logger
}

// NewPostService creates a new PostService. notifier may be nil.
func NewPostService(db *sql.DB, cm *cache.Manager, tr translator.Translator, notifier JobNotifier, site seo.SiteConfig, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostService{
		db:         db,
		queries:    store.New(db),
		cache:      cm,
		translator: tr,
		notifier:   notifier,
		site:       site,
		logger:     logger,
	}
}

func (s *PostService) languageCode(ctx context.Context, languageID int64) string {
	lang, err := s.cache.Languages.ByID(ctx, languageID)
	if err != nil {
		return ""
	}
	return lang.Code
}

func (s *PostService) decode(ctx context.Context, p store.SeoPost) model.SeoPost {
	return postFromStore(p, s.languageCode(ctx, p.LanguageID))
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id int64) (model.SeoPost, error) {
	p, err := s.queries.GetSeoPostByID(ctx, id)
	if err != nil {
		return model.SeoPost{}, notFound(err, "post")
	}
	return s.decode(ctx, p), nil
}

// List returns a page of posts, pinned first and newest first.
func (s *PostService) List(ctx context.Context, f PostFilter) (PostPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}

	filter := store.SeoPostFilter{Status: f.Status, PivotsOnly: f.PivotsOnly}
	if f.Status != "" && !model.IsValidPostStatus(f.Status) {
		return PostPage{}, invalid("unknown status %q", f.Status)
	}
	if f.LanguageCode != "" {
		lang, err := s.cache.Languages.ByCode(ctx, f.LanguageCode)
		if err != nil {
			return PostPage{}, invalid("unknown language %q", f.LanguageCode)
		}
		filter.LanguageID = lang.ID
	}

	path := cache.ListPath(cache.PathSeoPosts,
		"lang="+f.LanguageCode,
		"status="+f.Status,
		"pivots="+strconv.FormatBool(f.PivotsOnly),
		"page="+strconv.FormatInt(f.Page, 10),
		"per_page="+strconv.FormatInt(f.PerPage, 10))

	return cache.Remember(ctx, s.cache, path, func(ctx context.Context) (PostPage, error) {
		total, err := s.queries.CountSeoPosts(ctx, filter)
		if err != nil {
			return PostPage{}, fmt.Errorf("counting posts: %w", err)
		}
		rows, err := s.queries.ListSeoPosts(ctx, filter, f.PerPage, (f.Page-1)*f.PerPage)
		if err != nil {
			return PostPage{}, fmt.Errorf("listing posts: %w", err)
		}
		page := PostPage{Posts: make([]model.SeoPost, 0, len(rows)), Total: total, Page: f.Page, PerPage: f.PerPage}
		for _, r := range rows {
			page.Posts = append(page.Posts, s.decode(ctx, r))
		}
		return page, nil
	})
}

// ListTranslations returns the translation rows of a pivot.
func (s *PostService) ListTranslations(ctx context.Context, pivotID int64) ([]model.SeoPost, error) {
	pivot, err := s.queries.GetSeoPostByID(ctx, pivotID)
	if err != nil {
		return nil, notFound(err, "post")
	}
	if pivot.OriginalPostID.Valid {
		return nil, ErrNotPivot
	}

	rows, err := s.queries.ListPostTranslations(ctx, pivotID)
	if err != nil {
		return nil, fmt.Errorf("listing translations: %w", err)
	}
	out := make([]model.SeoPost, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.decode(ctx, r))
	}
	return out, nil
}

// Tags returns the tags linked to a post.
func (s *PostService) Tags(ctx context.Context, id int64) ([]model.Tag, error) {
	if _, err := s.queries.GetSeoPostByID(ctx, id); err != nil {
		return nil, notFound(err, "post")
	}
	path := cache.ListPath(cache.PathTags, "post="+strconv.FormatInt(id, 10))
	return cache.Remember(ctx, s.cache, path, func(ctx context.Context) ([]model.Tag, error) {
		rows, err := s.queries.ListTagsForPost(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		return tagsFromStore(rows), nil
	})
}

func validatePostInput(in *PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title is required")
	}
	switch in.Status {
	case "":
		in.Status = model.PostStatusDraft
	case model.PostStatusDraft, model.PostStatusPublished:
	default:
		return invalid("unknown status %q", in.Status)
	}
	for i, b := range in.Content {
		switch b.Type {
		case model.BlockHeader, model.BlockParagraph, model.BlockList, model.BlockQuote, model.BlockImage:
		default:
			return invalid("content block %d has unknown type %q", i, b.Type)
		}
	}
	if in.Slug != "" && !util.IsValidSlug(in.Slug) {
		return invalid("slug %q is not valid", in.Slug)
	}
	return nil
}

// uniqueSlug returns base, or base with a numeric suffix, unused in the
// language.
func (s *PostService) uniqueSlug(ctx context.Context, base string, languageID, excludeID int64) (string, error) {
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; i < 1000; i++ {
		n, err := s.queries.SeoPostSlugExists(ctx, candidate, languageID, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", invalid("no free slug for %q", base)
}

// buildContent renders the derived artifacts of a row from its own fields in
// its own language.
func buildContent(site *seo.SiteConfig, fields model.PostFields, languageCode, slug, imageURL string, publishedAt sql.NullTime, now time.Time) store.SeoPostContent {
	derived := seo.Build(&seo.PostData{
		LanguageCode:     languageCode,
		Title:            fields.Title,
		MetaDescription:  fields.MetaDescription,
		MetaKeywords:     fields.MetaKeywords,
		Slug:             slug,
		Content:          fields.Content,
		Excerpt:          fields.Excerpt,
		MainImageURL:     imageURL,
		MainImageAlt:     fields.MainImageAlt,
		MainImageCaption: fields.MainImageCaption,
		PublishedAt:      util.PtrFromNullTime(publishedAt),
		ModifiedAt:       now,
	}, site)

	return store.SeoPostContent{
		Title:                fields.Title,
		MetaDescription:      fields.MetaDescription,
		MetaKeywords:         model.EncodeStrings(fields.MetaKeywords),
		ListTags:             model.EncodeStrings(fields.ListTags),
		Slug:                 slug,
		Content:              model.EncodeContent(fields.Content),
		Excerpt:              fields.Excerpt,
		MainImageUrl:         imageURL,
		MainImageAlt:         fields.MainImageAlt,
		MainImageCaption:     fields.MainImageCaption,
		GeneratedHtml:        derived.HTML,
		JsonLd:               derived.JSONLD,
		GeneratedArticleHtml: derived.ArticleHTML,
	}
}

func (in *PostInput) fields() model.PostFields {
	return model.PostFields{
		Title:            in.Title,
		MetaDescription:  in.MetaDescription,
		MetaKeywords:     in.MetaKeywords,
		Content:          in.Content,
		Excerpt:          in.Excerpt,
		ListTags:         in.ListTags,
		MainImageAlt:     in.MainImageAlt,
		MainImageCaption: in.MainImageCaption,
	}
}

// Create inserts a post. With OriginalPostID set the row becomes a
// translation of that pivot and inherits its status and pinned flag.
func (s *PostService) Create(ctx context.Context, in PostInput) (model.SeoPost, error) {
	if err := validatePostInput(&in); err != nil {
		return model.SeoPost{}, err
	}

	var lang store.Language
	var err error
	if in.LanguageCode == "" {
		lang, err = s.cache.Languages.Default(ctx)
	} else {
		lang, err = s.cache.Languages.ByCode(ctx, in.LanguageCode)
	}
	if err != nil {
		return model.SeoPost{}, invalid("unknown language %q", in.LanguageCode)
	}

	now := time.Now().UTC()
	params := store.CreateSeoPostParams{
		LanguageID:        lang.ID,
		OriginalPostID:    util.NullInt64FromPtr(in.OriginalPostID),
		Status:            in.Status,
		TranslationStatus: model.SyncStatusSynced,
		CreatedAt:         now,
	}

	if in.OriginalPostID != nil {
		pivot, err := s.queries.GetSeoPostByID(ctx, *in.OriginalPostID)
		if err != nil {
			return model.SeoPost{}, notFound(err, "pivot post")
		}
		if pivot.OriginalPostID.Valid {
			return model.SeoPost{}, ErrNotPivot
		}
		if err := s.checkNoTranslation(ctx, pivot, lang.ID); err != nil {
			return model.SeoPost{}, err
		}
		params.Status = pivot.Status
		params.Pinned = pivot.Pinned
		params.PublishedAt = pivot.PublishedAt
		params.TranslatedAt = util.NullTimeFromValue(now)
	} else if in.Status == model.PostStatusPublished {
		params.PublishedAt = util.NullTimeFromValue(now)
	}

	slug := in.Slug
	if slug == "" {
		slug = util.Slugify(in.Title)
	}
	slug, err = s.uniqueSlug(ctx, slug, lang.ID, 0)
	if err != nil {
		return model.SeoPost{}, err
	}
	params.SeoPostContent = buildContent(&s.site, in.fields(), lang.Code, slug, in.MainImageURL, params.PublishedAt, now)

	var created store.SeoPost
	err = store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		row, err := q.CreateSeoPost(ctx, params)
		if err != nil {
			return err
		}
		if _, err := linkPostTags(ctx, q, row.ID, in.ListTags, now); err != nil {
			return err
		}
		created, err = q.GetSeoPostByID(ctx, row.ID)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			if in.OriginalPostID != nil {
				return model.SeoPost{}, ErrTranslationExists
			}
			return model.SeoPost{}, invalid("slug %q is already in use", slug)
		}
		return model.SeoPost{}, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		"post_id", created.ID,
		"language", lang.Code,
		"pivot_id", params.OriginalPostID.Int64)
	s.cache.Revalidate(ctx, cache.PathSeoPosts, cache.PathTags)
	return postFromStore(created, lang.Code), nil
}

// checkNoTranslation fails with ErrTranslationExists when languageID is the
// pivot's own language or already has a translation.
func (s *PostService) checkNoTranslation(ctx context.Context, pivot store.SeoPost, languageID int64) error {
	if pivot.LanguageID == languageID {
		return ErrTranslationExists
	}
	_, err := s.queries.GetPostTranslationForLanguage(ctx, pivot.ID, languageID)
	switch {
	case err == nil:
		return ErrTranslationExists
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return fmt.Errorf("checking translation: %w", err)
	}
}

// changedFields lists the text fields that differ between a stored post and
// the incoming input.
func changedFields(old model.SeoPost, in *PostInput) []string {
	var changed []string
	add := func(name string, differs bool) {
		if differs {
			changed = append(changed, name)
		}
	}
	add("title", old.Title != in.Title)
	add("meta_description", old.MetaDescription != in.MetaDescription)
	add("meta_keywords", model.EncodeStrings(old.MetaKeywords) != model.EncodeStrings(in.MetaKeywords))
	add("content", model.EncodeContent(old.Content) != model.EncodeContent(in.Content))
	add("excerpt", old.Excerpt != in.Excerpt)
	add("list_tags", model.EncodeStrings(old.ListTags) != model.EncodeStrings(in.ListTags))
	add("main_image_url", old.MainImageURL != in.MainImageURL)
	add("main_image_alt", old.MainImageAlt != in.MainImageAlt)
	add("main_image_caption", old.MainImageCaption != in.MainImageCaption)
	return changed
}

func sameNullTime(a, b sql.NullTime) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Time.Equal(b.Time)
}

// Update overwrites a post. Updating a pivot synchronizes the group status
// and queues propagation to every translation whose source text changed.
// Updating a translation only edits that row; its status stays the group's.
func (s *PostService) Update(ctx context.Context, id int64, in PostInput) (model.SeoPost, error) {
	existing, err := s.queries.GetSeoPostByID(ctx, id)
	if err != nil {
		return model.SeoPost{}, notFound(err, "post")
	}
	if err := validatePostInput(&in); err != nil {
		return model.SeoPost{}, err
	}

	langCode := s.languageCode(ctx, existing.LanguageID)
	old := postFromStore(existing, langCode)
	isPivot := old.IsPivot()
	now := time.Now().UTC()

	slug := existing.Slug
	if in.Slug != "" && in.Slug != existing.Slug {
		if slug, err = s.uniqueSlug(ctx, in.Slug, existing.LanguageID, id); err != nil {
			return model.SeoPost{}, err
		}
	}

	status := existing.Status
	publishedAt := existing.PublishedAt
	if isPivot {
		status = in.Status
		switch {
		case status == model.PostStatusDraft:
			publishedAt = sql.NullTime{}
		case !publishedAt.Valid:
			publishedAt = util.NullTimeFromValue(now)
		}
	}
	publishedChanged := !sameNullTime(publishedAt, existing.PublishedAt)

	changed := changedFields(old, &in)
	content := buildContent(&s.site, in.fields(), langCode, slug, in.MainImageURL, publishedAt, now)

	var jobIDs []int64
	var updated store.SeoPost
	err = store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		if _, err := q.UpdateSeoPostContent(ctx, id, content, now); err != nil {
			return err
		}
		if _, err := linkPostTags(ctx, q, id, in.ListTags, now); err != nil {
			return err
		}

		if isPivot {
			if _, err := q.SetGroupStatus(ctx, id, status, publishedAt, now); err != nil {
				return err
			}
			translations, err := q.ListPostTranslations(ctx, id)
			if err != nil {
				return err
			}
			if publishedChanged {
				if err := s.refreshDerived(ctx, q, translations, publishedAt, now); err != nil {
					return err
				}
			}
			if len(changed) > 0 {
				jobIDs, err = enqueuePropagation(ctx, q, id, translations, changed, now)
				if err != nil {
					return err
				}
			}
		}

		var err error
		updated, err = q.GetSeoPostByID(ctx, id)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.SeoPost{}, invalid("slug %q is already in use", slug)
		}
		return model.SeoPost{}, fmt.Errorf("updating post: %w", err)
	}

	if len(jobIDs) > 0 {
		s.logger.Info("post translations queued",
			"category", model.EventCategoryTranslation,
			"post_id", id,
			"jobs", len(jobIDs),
			"changed_fields", strings.Join(changed, ","))
		if s.notifier != nil {
			s.notifier.Enqueue(jobIDs...)
		}
	}
	s.cache.Revalidate(ctx, cache.PathSeoPosts, cache.PathTags)
	return postFromStore(updated, langCode), nil
}

// enqueuePropagation writes one outbox row per translation and marks the
// translations pending. Older queued work for the same rows is retired.
func enqueuePropagation(ctx context.Context, q *store.Queries, pivotID int64, translations []store.SeoPost, changed []string, now time.Time) ([]int64, error) {
	batch := uuid.NewString()
	ids := make([]int64, 0, len(translations))
	for _, t := range translations {
		if err := q.SupersedePendingJobs(ctx, t.ID, now); err != nil {
			return nil, err
		}
		job, err := q.CreateTranslationJob(ctx, store.CreateTranslationJobParams{
			BatchID:       batch,
			Kind:          model.JobKindPropagate,
			PivotPostID:   pivotID,
			TargetPostID:  t.ID,
			ChangedFields: model.EncodeStrings(changed),
			CreatedAt:     now,
		})
		if err != nil {
			return nil, err
		}
		if err := q.SetTranslationState(ctx, t.ID, model.SyncStatusPending, "", sql.NullTime{}); err != nil {
			return nil, err
		}
		ids = append(ids, job.ID)
	}
	return ids, nil
}

// refreshDerived regenerates the derived artifacts of translations after the
// group's publication date changed.
func (s *PostService) refreshDerived(ctx context.Context, q *store.Queries, translations []store.SeoPost, publishedAt sql.NullTime, now time.Time) error {
	for _, t := range translations {
		post := s.decode(ctx, t)
		content := buildContent(&s.site, post.Fields(), post.LanguageCode, t.Slug, t.MainImageUrl, publishedAt, now)
		if _, err := q.UpdateSeoPostContent(ctx, t.ID, content, now); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a post. Deleting a pivot removes its whole group.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteSeoPost(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("post: %w", ErrNotFound)
	}

	s.logger.Info("post deleted", "post_id", id)
	s.cache.Revalidate(ctx, cache.PathSeoPosts, cache.PathTags)
	return nil
}

// CreateTranslation machine-translates a pivot into languageCode and stores
// the result as a new translation row.
func (s *PostService) CreateTranslation(ctx context.Context, pivotID int64, languageCode string) (model.SeoPost, error) {
	pivot, err := s.queries.GetSeoPostByID(ctx, pivotID)
	if err != nil {
		return model.SeoPost{}, notFound(err, "post")
	}
	if pivot.OriginalPostID.Valid {
		return model.SeoPost{}, ErrNotPivot
	}

	target, err := s.cache.Languages.ByCode(ctx, languageCode)
	if err != nil {
		return model.SeoPost{}, invalid("unknown language %q", languageCode)
	}
	if err := s.checkNoTranslation(ctx, pivot, target.ID); err != nil {
		return model.SeoPost{}, err
	}
	source, err := s.cache.Languages.ByID(ctx, pivot.LanguageID)
	if err != nil {
		return model.SeoPost{}, fmt.Errorf("loading pivot language: %w", err)
	}

	src := postFromStore(pivot, source.Code)
	fields, err := s.translator.TranslatePost(ctx, src.Fields(), translatorLanguage(source), translatorLanguage(target))
	if err != nil {
		s.logger.Warn("post translation failed",
			"category", model.EventCategoryTranslation,
			"post_id", pivotID,
			"language", target.Code,
			"error", err)
		return model.SeoPost{}, fmt.Errorf("translating post: %w", err)
	}

	return s.Create(ctx, PostInput{
		LanguageCode:     target.Code,
		OriginalPostID:   &pivot.ID,
		Title:            fields.Title,
		MetaDescription:  fields.MetaDescription,
		MetaKeywords:     fields.MetaKeywords,
		ListTags:         fields.ListTags,
		Content:          fields.Content,
		Excerpt:          fields.Excerpt,
		MainImageURL:     pivot.MainImageUrl,
		MainImageAlt:     fields.MainImageAlt,
		MainImageCaption: fields.MainImageCaption,
	})
}

// Pin makes the group of id the only pinned group.
func (s *PostService) Pin(ctx context.Context, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pivotID := post.PivotID()

	err = store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		if err := q.SetPinnedGroup(ctx, util.NullInt64FromValue(pivotID), time.Now().UTC()); err != nil {
			return err
		}
		return q.PinGroup(ctx, pivotID)
	})
	if err != nil {
		return fmt.Errorf("pinning post: %w", err)
	}

	s.logger.Info("post group pinned", "pivot_id", pivotID)
	s.cache.Revalidate(ctx, cache.PathSeoPosts)
	return nil
}

// Unpin clears the pinned group if it is the group of id.
func (s *PostService) Unpin(ctx context.Context, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pivotID := post.PivotID()

	err = store.RunInTx(ctx, s.db, func(q *store.Queries) error {
		pinned, err := q.GetPinnedGroup(ctx)
		if err != nil {
			return err
		}
		if !pinned.Valid || pinned.Int64 != pivotID {
			return nil
		}
		if err := q.SetPinnedGroup(ctx, sql.NullInt64{}, time.Now().UTC()); err != nil {
			return err
		}
		return q.UnpinAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("unpinning post: %w", err)
	}

	s.cache.Revalidate(ctx, cache.PathSeoPosts)
	return nil
}
