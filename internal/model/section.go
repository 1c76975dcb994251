// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// Section is one content block of a public page, keyed by the natural key
// (Page, Key). Data is an opaque JSON document owned by the frontend;
// the store never interprets it.
type Section struct {
	ID        int64           `json:"id"`
	Page      string          `json:"page"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
