// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/olegiv/artadmin/internal/model"
)

// htmlSanitizer strips anything unsafe that inline markdown could smuggle in.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown renders inline markdown; raw HTML in the source is dropped.
var markdown = goldmark.New()

// inline renders a single line of markdown without the wrapping paragraph.
func inline(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src)
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}

// RenderContent turns structured content blocks into sanitized HTML.
func RenderContent(blocks []model.ContentBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Type {
		case model.BlockHeader:
			level := b.Level
			if level < 2 || level > 6 {
				level = 2 // h1 is the post title
			}
			fmt.Fprintf(&sb, "<h%d>%s</h%d>\n", level, inline(b.Text), level)
		case model.BlockParagraph:
			if text := inline(b.Text); text != "" {
				fmt.Fprintf(&sb, "<p>%s</p>\n", text)
			}
		case model.BlockList:
			tag := "ul"
			if b.Ordered {
				tag = "ol"
			}
			sb.WriteString("<" + tag + ">\n")
			for _, item := range b.Items {
				fmt.Fprintf(&sb, "<li>%s</li>\n", inline(item))
			}
			sb.WriteString("</" + tag + ">\n")
		case model.BlockQuote:
			sb.WriteString("<blockquote>")
			fmt.Fprintf(&sb, "<p>%s</p>", inline(b.Text))
			if b.Caption != "" {
				fmt.Fprintf(&sb, "<cite>%s</cite>", html.EscapeString(b.Caption))
			}
			sb.WriteString("</blockquote>\n")
		case model.BlockImage:
			if b.URL == "" {
				continue
			}
			sb.WriteString(figure(b.URL, b.Alt, b.Caption))
		}
	}
	return htmlSanitizer.Sanitize(sb.String())
}

func figure(src, alt, caption string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<figure><img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
	if caption != "" {
		fmt.Fprintf(&sb, "<figcaption>%s</figcaption>", html.EscapeString(caption))
	}
	sb.WriteString("</figure>\n")
	return sb.String()
}
