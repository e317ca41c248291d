// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the derived artifacts stored with every blog post:
// rendered body HTML, the full article HTML and BlogPosting structured data.
package seo

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/olegiv/artadmin/internal/model"
)

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName string
	SiteURL  string
}

// PostData is the input of Build: one post row in one language.
type PostData struct {
	LanguageCode     string
	Title            string
	MetaDescription  string
	MetaKeywords     []string
	Slug             string
	Content          []model.ContentBlock
	Excerpt          string
	MainImageURL     string
	MainImageAlt     string
	MainImageCaption string
	PublishedAt      *time.Time
	ModifiedAt       time.Time
}

// Derived holds the generated columns of a post.
type Derived struct {
	HTML        string
	ArticleHTML string
	JSONLD      string
}

// Build regenerates every derived artifact of a post from its own content.
func Build(post *PostData, site *SiteConfig) Derived {
	body := RenderContent(post.Content)
	return Derived{
		HTML:        body,
		ArticleHTML: renderArticle(post, body),
		JSONLD:      BuildBlogPostingSchema(post, body, site),
	}
}

// PostURL returns the public URL of a post.
func PostURL(site *SiteConfig, languageCode, slug string) string {
	return strings.TrimSuffix(site.SiteURL, "/") + "/" + languageCode + "/blog/" + slug
}

func renderArticle(post *PostData, body string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<article lang="%s">`+"\n", html.EscapeString(post.LanguageCode))
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(post.Title))
	if post.Excerpt != "" {
		fmt.Fprintf(&sb, "<p><em>%s</em></p>\n", html.EscapeString(post.Excerpt))
	}
	if post.MainImageURL != "" {
		sb.WriteString(figure(post.MainImageURL, post.MainImageAlt, post.MainImageCaption))
	}
	sb.WriteString(body)
	sb.WriteString("</article>\n")
	return sb.String()
}

// BlogPostingSchema represents JSON-LD BlogPosting structured data.
type BlogPostingSchema struct {
	Context          string     `json:"@context"`
	Type             string     `json:"@type"`
	Headline         string     `json:"headline"`
	Description      string     `json:"description,omitempty"`
	InLanguage       string     `json:"inLanguage,omitempty"`
	Keywords         string     `json:"keywords,omitempty"`
	Image            string     `json:"image,omitempty"`
	DatePublished    string     `json:"datePublished,omitempty"`
	DateModified     string     `json:"dateModified,omitempty"`
	Publisher        *OrgSchema `json:"publisher,omitempty"`
	MainEntityOfPage string     `json:"mainEntityOfPage,omitempty"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildBlogPostingSchema creates JSON-LD for a post. The description falls
// back to the excerpt and then to the start of the body text.
func BuildBlogPostingSchema(post *PostData, body string, site *SiteConfig) string {
	schema := BlogPostingSchema{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         post.Title,
		Description:      post.MetaDescription,
		InLanguage:       post.LanguageCode,
		Keywords:         strings.Join(post.MetaKeywords, ", "),
		Image:            makeAbsoluteURL(post.MainImageURL, site.SiteURL),
		MainEntityOfPage: PostURL(site, post.LanguageCode, post.Slug),
		Publisher:        &OrgSchema{Type: "Organization", Name: site.SiteName},
	}

	if schema.Description == "" {
		if post.Excerpt != "" {
			schema.Description = post.Excerpt
		} else {
			schema.Description = truncateText(stripHTML(body), 160)
		}
	}
	if post.PublishedAt != nil {
		schema.DatePublished = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	if !post.ModifiedAt.IsZero() {
		schema.DateModified = post.ModifiedAt.UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	return string(data)
}

// stripHTML removes HTML tags from a string.
func stripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			result.WriteRune(' ')
		case !inTag:
			result.WriteRune(r)
		}
	}
	return html.UnescapeString(strings.Join(strings.Fields(result.String()), " "))
}

// truncateText truncates text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
