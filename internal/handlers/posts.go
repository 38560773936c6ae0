// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
	"inkwell/internal/validation"
)

// Posts serves /posts and /post. Reads are public; writes require a session.
// Every detail fetch counts a view.
type Posts struct {
	store    PostStore
	validate *validation.Validator
}

// NewPosts creates the Posts handler group.
func NewPosts(store PostStore, v *validation.Validator) *Posts {
	return &Posts{store: store, validate: v}
}

// List answers GET /posts in one of three modes:
//
//	?featured=1   the newest featured published post, 404 if none
//	?search=q     up to 20 published posts matching title or excerpt
//	otherwise     a page of posts filtered by category and status
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	if q.Get("featured") == "1" {
		post, err := h.store.Featured(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if post == nil {
			writeError(w, r, domainerrors.NotFound("No featured post"))
			return
		}
		writeJSON(w, http.StatusOK, post)
		return
	}

	if q.Has("search") {
		posts, err := h.store.Search(ctx, q.Get("search"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, posts)
		return
	}

	page, err := h.store.List(ctx, postFilter(q))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// postFilter reads the list query. A non-numeric or non-positive page
// means page 1; a page past the end yields an empty page. An unknown
// status matches no posts.
func postFilter(q url.Values) models.PostFilter {
	f := models.PostFilter{
		CategorySlug: q.Get("category"),
		Status:       models.PostStatus(q.Get("status")),
		All:          q.Has("all"),
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err == nil || errors.Is(err, strconv.ErrRange) {
		f.Page = page
	}
	return f
}

// Show answers GET /post?slug= with the post, counting this request as a
// view. The returned views include it.
func (h *Posts) Show(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeError(w, r, domainerrors.Validation("Slug is required"))
		return
	}

	post, err := h.store.ViewBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if post == nil {
		writeError(w, r, domainerrors.NotFound("Post not found"))
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create adds a post. Missing slug, status, read time, category and author
// take their defaults.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}
	post, err := req.toModel()
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), post)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to the post named by ?id=.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req postUpdateRequest
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

// Delete removes the post named by ?id= together with its comments.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
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
