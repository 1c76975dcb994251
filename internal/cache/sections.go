// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

const sectionKeyPrefix = "sections:"

// SectionCache caches the published sections of a page so public reads
// skip the database. Writes to a page invalidate its entry.
type SectionCache struct {
	cache Cacher
	ttl   time.Duration
}

// NewSectionCache creates a section cache on top of a Cacher backend.
func NewSectionCache(backend Cacher, ttl time.Duration) *SectionCache {
	return &SectionCache{
		cache: backend,
		ttl:   ttl,
	}
}

// GetPage returns the cached sections for a page.
// The second return value is false on a miss.
func (sc *SectionCache) GetPage(ctx context.Context, page string) ([]model.Section, bool) {
	data, err := sc.cache.Get(ctx, sectionKeyPrefix+page)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("section cache read failed", "page", page, "error", err)
		}
		return nil, false
	}

	var sections []model.Section
	if err := json.Unmarshal(data, &sections); err != nil {
		// Stale or corrupt entry, drop it
		_ = sc.cache.Delete(ctx, sectionKeyPrefix+page)
		return nil, false
	}
	return sections, true
}

// SetPage stores the sections for a page.
func (sc *SectionCache) SetPage(ctx context.Context, page string, sections []model.Section) {
	data, err := json.Marshal(sections)
	if err != nil {
		return
	}
	if err := sc.cache.Set(ctx, sectionKeyPrefix+page, data, sc.ttl); err != nil {
		slog.Warn("section cache write failed", "page", page, "error", err)
	}
}

// InvalidatePage removes the cached sections for a page.
func (sc *SectionCache) InvalidatePage(ctx context.Context, page string) {
	if err := sc.cache.Delete(ctx, sectionKeyPrefix+page); err != nil {
		slog.Warn("section cache invalidation failed", "page", page, "error", err)
	}
}

// InvalidateAll removes every cached page.
func (sc *SectionCache) InvalidateAll(ctx context.Context) {
	type prefixDeleter interface {
		DeleteByPrefix(ctx context.Context, prefix string) error
	}
	if pd, ok := sc.cache.(prefixDeleter); ok {
		if err := pd.DeleteByPrefix(ctx, sectionKeyPrefix); err != nil {
			slog.Warn("section cache flush failed", "error", err)
		}
		return
	}
	_ = sc.cache.Clear(ctx)
}

// Close releases the underlying cache backend.
func (sc *SectionCache) Close() error {
	return sc.cache.Close()
}
