// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/models"
	"inkwell/internal/validation"
)

// Ads serves /ads.
type Ads struct {
	store    AdStore
	validate *validation.Validator
}

// NewAds creates the Ads handler group.
func NewAds(store AdStore, v *validation.Validator) *Ads {
	return &Ads{store: store, validate: v}
}

// List returns ads, newest first. ?position= filters by slot and the
// presence of ?active restricts to active ads.
func (h *Ads) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ads, err := h.store.List(r.Context(), models.AdFilter{
		Position:   q.Get("position"),
		ActiveOnly: q.Has("active"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// Create adds an ad. Ads are active unless the request says otherwise.
func (h *Ads) Create(w http.ResponseWriter, r *http.Request) {
	var req adCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to the ad named by ?id=.
func (h *Ads) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req adUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.store.Update(r.Context(), id, req.toPatch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes the ad named by ?id=.
func (h *Ads) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w)
}
