// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullInt64FromPtr(t *testing.T) {
	tests := []struct {
		name     string
		input    *int64
		expected sql.NullInt64
	}{
		{
			name:     "nil pointer",
			input:    nil,
			expected: sql.NullInt64{},
		},
		{
			name:     "positive value",
			input:    ptr(int64(42)),
			expected: sql.NullInt64{Int64: 42, Valid: true},
		},
		{
			name:     "zero value",
			input:    ptr(int64(0)),
			expected: sql.NullInt64{Int64: 0, Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NullInt64FromPtr(tt.input)
			if result != tt.expected {
				t.Errorf("NullInt64FromPtr() = %v, expected %v", result, tt.expected)
			}
			back := PtrFromNullInt64(result)
			if (back == nil) != (tt.input == nil) || (back != nil && *back != *tt.input) {
				t.Errorf("PtrFromNullInt64() = %v, expected %v", back, tt.input)
			}
		})
	}
}

func TestNullStringFromPtr(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected sql.NullString
	}{
		{
			name:     "nil pointer",
			input:    nil,
			expected: sql.NullString{},
		},
		{
			name:     "empty string is valid",
			input:    strPtr(""),
			expected: sql.NullString{String: "", Valid: true},
		},
		{
			name:     "text",
			input:    strPtr("biography"),
			expected: sql.NullString{String: "biography", Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NullStringFromPtr(tt.input)
			if result != tt.expected {
				t.Errorf("NullStringFromPtr() = %v, expected %v", result, tt.expected)
			}
			back := PtrFromNullString(result)
			if (back == nil) != (tt.input == nil) || (back != nil && *back != *tt.input) {
				t.Errorf("PtrFromNullString() = %v, expected %v", back, tt.input)
			}
		})
	}
}

func TestNullTime(t *testing.T) {
	if PtrFromNullTime(sql.NullTime{}) != nil {
		t.Error("PtrFromNullTime(NULL) != nil")
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := PtrFromNullTime(NullTimeFromValue(now))
	if got == nil || !got.Equal(now) {
		t.Errorf("PtrFromNullTime() = %v, want %v", got, now)
	}
	if v := NullInt64FromValue(3); !v.Valid || v.Int64 != 3 {
		t.Errorf("NullInt64FromValue(3) = %v", v)
	}
}

// Helper functions for tests
func ptr(v int64) *int64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}
