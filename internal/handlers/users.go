// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/validation"
)

// Users serves /users. Every route requires a session.
type Users struct {
	users    UserStore
	validate *validation.Validator
}

// NewUsers creates the Users handler group.
func NewUsers(users UserStore, v *validation.Validator) *Users {
	return &Users{users: users, validate: v}
}

// List returns all users, oldest first.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Create adds a user. The role defaults to collaborator.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.normalize()
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.users.Create(r.Context(), &models.User{
		Username: req.Username,
		Name:     req.Name,
		Avatar:   req.Avatar,
		Role:     models.Role(req.Role),
	}, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user created", "user_id", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to the user named by ?id=. Username and
// role are only changed when an admin edits someone else; otherwise they
// are ignored.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req userUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return
	}
	actor, err := h.users.FindByID(ctx, sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if actor == nil {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return
	}

	patch := req.toPatch(actor.IsAdmin() && actor.ID != id)
	if patch.IsEmpty() {
		writeError(w, r, domainerrors.Validation("Nothing to update"))
		return
	}

	updated, err := h.users.Update(ctx, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes the user named by ?id=. Nobody can delete their own
// account or the last admin.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return
	}
	if err := h.users.DeleteGuarded(r.Context(), sess.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user deleted", "user_id", id, "by", sess.UserID)
	writeSuccess(w)
}
