// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Language is a content language. Exactly one language is the default
// (source) language; every other one is a translation target.
type Language struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`        // ISO 639-1: en, fr, es
	Name       string    `json:"name"`        // English, French, Spanish
	NativeName string    `json:"native_name"` // English, Français, Español
	IsDefault  bool      `json:"is_default"`
	Direction  string    `json:"direction"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsRTL returns true if the language is right-to-left.
func (l *Language) IsRTL() bool {
	return l.Direction == DirectionRTL
}

// Tag returns the BCP 47 tag for the language code, or language.Und.
func (l *Language) Tag() language.Tag {
	tag, err := language.Parse(l.Code)
	if err != nil {
		return language.Und
	}
	return tag
}

// EnglishName returns the English display name of the language, falling
// back to the stored name when the code is not a known tag.
func (l *Language) EnglishName() string {
	tag := l.Tag()
	if tag == language.Und {
		return l.Name
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return l.Name
}
