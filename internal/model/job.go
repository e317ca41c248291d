// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"
)

// Translation job kinds
const (
	JobKindPropagate = "propagate"
)

// Translation job states
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusDead       = "dead"
)

// IsValidJobStatus reports whether s is a known job state.
func IsValidJobStatus(s string) bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusDone, JobStatusDead:
		return true
	}
	return false
}

// TranslationJob is an outbox entry asking the worker to re-translate one
// translation row from its pivot.
type TranslationJob struct {
	ID            int64      `json:"id"`
	BatchID       string     `json:"batch_id"`
	Kind          string     `json:"kind"`
	PivotPostID   int64      `json:"pivot_post_id"`
	TargetPostID  int64      `json:"target_post_id"`
	ChangedFields []string   `json:"changed_fields"`
	Status        string     `json:"status"`
	Attempts      int64      `json:"attempts"`
	LastError     string     `json:"last_error,omitempty"`
	NextAttemptAt time.Time  `json:"next_attempt_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
