// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translator machine-translates editorial text between content
// languages.
package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/artadmin/internal/model"
)

// ErrDisabled is returned by every call of a translator without credentials.
// Retrying cannot succeed.
var ErrDisabled = errors.New("machine translation is not configured")

// Language identifies a source or target language.
type Language struct {
	Code string
	Name string
}

func (l Language) String() string {
	if l.Name == "" {
		return l.Code
	}
	return fmt.Sprintf("%s (%s)", l.Name, l.Code)
}

// Translator translates text. Implementations must be safe for concurrent use.
type Translator interface {
	// TranslateText translates a single plain-text or inline-markdown value.
	TranslateText(ctx context.Context, text string, source, target Language) (string, error)

	// TranslatePost translates every text field of a post. Structure (block
	// types, header levels, image URLs) is preserved.
	TranslatePost(ctx context.Context, fields model.PostFields, source, target Language) (model.PostFields, error)
}

// IsPermanent reports whether err will not go away on retry.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrDisabled)
}

// Disabled is the Translator used when no provider is configured.
type Disabled struct{}

// TranslateText always fails with ErrDisabled.
func (Disabled) TranslateText(context.Context, string, Language, Language) (string, error) {
	return "", ErrDisabled
}

// TranslatePost always fails with ErrDisabled.
func (Disabled) TranslatePost(context.Context, model.PostFields, Language, Language) (model.PostFields, error) {
	return model.PostFields{}, ErrDisabled
}

// restoreStructure copies the non-translatable parts of source blocks onto
// the translated ones and rejects responses that changed the block layout.
func restoreStructure(source, translated []model.ContentBlock) ([]model.ContentBlock, error) {
	if len(source) != len(translated) {
		return nil, fmt.Errorf("translated content has %d blocks, expected %d", len(translated), len(source))
	}

	out := make([]model.ContentBlock, len(source))
	for i, src := range source {
		tr := translated[i]
		b := src
		switch src.Type {
		case model.BlockList:
			if len(tr.Items) != len(src.Items) {
				return nil, fmt.Errorf("translated list block %d has %d items, expected %d", i, len(tr.Items), len(src.Items))
			}
			b.Items = tr.Items
		case model.BlockImage:
			b.Alt = tr.Alt
			b.Caption = tr.Caption
		default:
			b.Text = tr.Text
			b.Caption = tr.Caption
		}
		out[i] = b
	}
	return out, nil
}
