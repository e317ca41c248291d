// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/artadmin/internal/model"
	"github.com/olegiv/artadmin/internal/store"
	"github.com/olegiv/artadmin/internal/util"
)

type tagRef struct {
	Name string
	Slug string
}

// tagSlug falls back to transliteration for names without any ASCII word
// characters, e.g. Cyrillic tags.
func tagSlug(name string) string {
	if slug := util.TagSlug(name); slug != "" {
		return slug
	}
	return util.Slugify(name)
}

// normalizeTags deduplicates names by slug. The first spelling wins and
// names without a usable slug are dropped.
func normalizeTags(names []string) []tagRef {
	seen := make(map[string]bool, len(names))
	out := make([]tagRef, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		slug := tagSlug(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, tagRef{Name: name, Slug: slug})
	}
	return out
}

// linkPostTags replaces the tag relations of a post on the caller's
// transaction. Existing tags keep their first-ever spelling. The post's
// list_tags column is rewritten with the canonical names, which are returned.
func linkPostTags(ctx context.Context, q *store.Queries, postID int64, names []string, now time.Time) ([]string, error) {
	refs := normalizeTags(names)

	if err := q.DeletePostTags(ctx, postID); err != nil {
		return nil, fmt.Errorf("clearing post tags: %w", err)
	}

	canonical := make([]string, 0, len(refs))
	for _, ref := range refs {
		if err := q.InsertTagIfAbsent(ctx, ref.Name, ref.Slug, now); err != nil {
			return nil, fmt.Errorf("inserting tag %q: %w", ref.Slug, err)
		}
		tag, err := q.GetTagBySlug(ctx, ref.Slug)
		if err != nil {
			return nil, fmt.Errorf("loading tag %q: %w", ref.Slug, err)
		}
		if err := q.AddPostTag(ctx, postID, tag.ID); err != nil {
			return nil, fmt.Errorf("linking tag %q: %w", ref.Slug, err)
		}
		canonical = append(canonical, tag.Name)
	}

	if err := q.UpdatePostListTags(ctx, postID, model.EncodeStrings(canonical)); err != nil {
		return nil, fmt.Errorf("writing list tags: %w", err)
	}
	return canonical, nil
}

func tagsFromStore(rows []store.SeoTag) []model.Tag {
	out := make([]model.Tag, 0, len(rows))
	for _, t := range rows {
		out = append(out, model.Tag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}
