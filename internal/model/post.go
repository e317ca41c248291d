// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Post publication statuses
const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
)

// IsValidPostStatus reports whether s is a known publication status.
func IsValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Translation sync states of a post row. A pivot is always synced.
const (
	SyncStatusSynced  = "synced"
	SyncStatusPending = "pending"
	SyncStatusFailed  = "failed"
)

// Content block types
const (
	BlockHeader    = "header"
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockQuote     = "quote"
	BlockImage     = "image"
)

// ContentBlock is one element of a post body. Text fields hold inline
// markdown.
type ContentBlock struct {
	Type    string   `json:"type"`
	Text    string   `json:"text,omitempty"`
	Level   int      `json:"level,omitempty"`   // header: 1..6
	Ordered bool     `json:"ordered,omitempty"` // list
	Items   []string `json:"items,omitempty"`   // list
	Caption string   `json:"caption,omitempty"` // quote author, image caption
	URL     string   `json:"url,omitempty"`     // image
	Alt     string   `json:"alt,omitempty"`     // image
}

// ParseContent decodes a serialized post body. An empty string is an empty body.
func ParseContent(raw string) ([]ContentBlock, error) {
	if raw == "" {
		return nil, nil
	}
	var blocks []ContentBlock
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	for i, b := range blocks {
		switch b.Type {
		case BlockHeader, BlockParagraph, BlockList, BlockQuote, BlockImage:
		default:
			return nil, fmt.Errorf("content block %d: unknown type %q", i, b.Type)
		}
	}
	return blocks, nil
}

// EncodeContent serializes a post body. A nil body encodes as "[]".
func EncodeContent(blocks []ContentBlock) string {
	if blocks == nil {
		blocks = []ContentBlock{}
	}
	b, _ := json.Marshal(blocks)
	return string(b)
}

// EncodeStrings serializes a string array column.
func EncodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}

// DecodeStrings parses a string array column; malformed input yields nil.
func DecodeStrings(raw string) []string {
	var values []string
	if raw == "" {
		return values
	}
	_ = json.Unmarshal([]byte(raw), &values)
	return values
}

// PostFields is the machine-translatable text of a post.
type PostFields struct {
	Title            string         `json:"title"`
	MetaDescription  string         `json:"meta_description"`
	MetaKeywords     []string       `json:"meta_keywords"`
	Content          []ContentBlock `json:"content"`
	Excerpt          string         `json:"excerpt"`
	ListTags         []string       `json:"list_tags"`
	MainImageAlt     string         `json:"main_image_alt"`
	MainImageCaption string         `json:"main_image_caption"`
}

// SeoPost is a blog post row: either a pivot (OriginalPostID == nil) or a
// translation of one.
type SeoPost struct {
	ID                   int64          `json:"id"`
	LanguageID           int64          `json:"language_id"`
	LanguageCode         string         `json:"language_code,omitempty"`
	OriginalPostID       *int64         `json:"original_post_id"`
	Title                string         `json:"title"`
	MetaDescription      string         `json:"meta_description"`
	MetaKeywords         []string       `json:"meta_keywords"`
	ListTags             []string       `json:"list_tags"`
	Slug                 string         `json:"slug"`
	Content              []ContentBlock `json:"content"`
	Excerpt              string         `json:"excerpt"`
	Status               string         `json:"status"`
	Pinned               bool           `json:"pinned"`
	MainImageURL         string         `json:"main_image_url"`
	MainImageAlt         string         `json:"main_image_alt"`
	MainImageCaption     string         `json:"main_image_caption"`
	GeneratedHTML        string         `json:"generated_html"`
	JSONLD               string         `json:"json_ld"`
	GeneratedArticleHTML string         `json:"generated_article_html"`
	TranslationStatus    string         `json:"translation_status"`
	TranslationError     string         `json:"translation_error,omitempty"`
	TranslatedAt         *time.Time     `json:"translated_at,omitempty"`
	PublishedAt          *time.Time     `json:"published_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// IsPivot returns true if the post is the source of its translation group.
func (p *SeoPost) IsPivot() bool {
	return p.OriginalPostID == nil
}

// PivotID returns the id of the group's pivot.
func (p *SeoPost) PivotID() int64 {
	if p.OriginalPostID != nil {
		return *p.OriginalPostID
	}
	return p.ID
}

// Fields extracts the translatable text of the post.
func (p *SeoPost) Fields() PostFields {
	return PostFields{
		Title:            p.Title,
		MetaDescription:  p.MetaDescription,
		MetaKeywords:     p.MetaKeywords,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		ListTags:         p.ListTags,
		MainImageAlt:     p.MainImageAlt,
		MainImageCaption: p.MainImageCaption,
	}
}

// Tag is a deduplicated post tag.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
