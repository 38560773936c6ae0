// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
	"inkwell/internal/validation"
)

var errPostIDRequired = domainerrors.Validation("post_id is required")

// Comments serves /comments. Both reading and posting are public.
type Comments struct {
	store    CommentStore
	validate *validation.Validator
}

// NewComments creates the Comments handler group.
func NewComments(store CommentStore, v *validation.Validator) *Comments {
	return &Comments{store: store, validate: v}
}

// List returns the comments of ?post_id=, oldest first.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePositiveInt(r.URL.Query().Get("post_id"), errPostIDRequired)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.store.ListByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Create adds a comment. The avatar is derived from the author name.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	var req commentCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.normalize()
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.store.Create(r.Context(), &models.Comment{
		PostID:     req.PostID,
		AuthorName: req.AuthorName,
		Content:    req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
