// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies to keep decode memory bounded.
const maxBodyBytes = 1 << 20 // 1 MiB

// ParseIDParam extracts and parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// decodeJSON decodes the request body into dst.
// Writes a 400 response and returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is required", nil)
		default:
			WriteBadRequest(w, "Invalid JSON body", nil)
		}
		return false
	}
	return true
}

// requireID parses the {id} parameter, writing a 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entity+" ID", nil)
		return 0, false
	}
	return id, true
}
