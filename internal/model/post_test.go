// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestParseContent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"empty string", "", 0, false},
		{"empty array", "[]", 0, false},
		{"two blocks", `[{"type":"header","text":"Hi","level":2},{"type":"paragraph","text":"Body"}]`, 2, false},
		{"unknown type", `[{"type":"video"}]`, 0, true},
		{"not json", `{`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := ParseContent(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(blocks) != tt.want {
				t.Errorf("len(blocks) = %d, want %d", len(blocks), tt.want)
			}
		})
	}
}

func TestEncodeContentNil(t *testing.T) {
	if got := EncodeContent(nil); got != "[]" {
		t.Errorf("EncodeContent(nil) = %q, want []", got)
	}
	if got := EncodeStrings(nil); got != "[]" {
		t.Errorf("EncodeStrings(nil) = %q, want []", got)
	}
}

func TestDecodeStrings(t *testing.T) {
	got := DecodeStrings(`["art","nft"]`)
	if len(got) != 2 || got[0] != "art" || got[1] != "nft" {
		t.Errorf("DecodeStrings() = %v", got)
	}
	if got := DecodeStrings("garbage"); len(got) != 0 {
		t.Errorf("DecodeStrings(garbage) = %v, want empty", got)
	}
}

func TestSeoPostPivot(t *testing.T) {
	pivot := SeoPost{ID: 7}
	if !pivot.IsPivot() || pivot.PivotID() != 7 {
		t.Errorf("pivot: IsPivot=%v PivotID=%d", pivot.IsPivot(), pivot.PivotID())
	}

	orig := int64(7)
	tr := SeoPost{ID: 9, OriginalPostID: &orig}
	if tr.IsPivot() || tr.PivotID() != 7 {
		t.Errorf("translation: IsPivot=%v PivotID=%d", tr.IsPivot(), tr.PivotID())
	}
}

func TestPostStatusValidation(t *testing.T) {
	if !IsValidPostStatus(PostStatusDraft) || !IsValidPostStatus(PostStatusPublished) {
		t.Error("known statuses rejected")
	}
	if IsValidPostStatus("draft") {
		t.Error("lowercase status accepted")
	}
	if !IsValidJobStatus(JobStatusDead) || IsValidJobStatus("failed") {
		t.Error("IsValidJobStatus mismatch")
	}
}
