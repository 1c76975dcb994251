// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "v1.2.0",
		GitCommit: "abc1234",
		BuildTime: "2026-01-30T12:00:00Z",
	}
	want := "sitekit v1.2.0 (abc1234) built 2026-01-30T12:00:00Z"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInfoStringZeroValue(t *testing.T) {
	var info Info
	if got := info.String(); got != "sitekit dev" {
		t.Errorf("String() = %q, want %q", got, "sitekit dev")
	}
}
