// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build metadata injected via ldflags.
package version

import "fmt"

// Info describes the running binary.
type Info struct {
	Version   string // git tag, "dev" for local builds
	GitCommit string // short commit hash
	BuildTime string // RFC3339
}

// New fills empty fields with placeholders.
func New(v, commit, built string) Info {
	if v == "" {
		v = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return Info{Version: v, GitCommit: commit, BuildTime: built}
}

// IsRelease reports whether the binary was built from a tag.
func (i Info) IsRelease() bool {
	return i.Version != "" && i.Version != "dev"
}

// String renders the line printed by -version.
func (i Info) String() string {
	return fmt.Sprintf("artadmin %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}
