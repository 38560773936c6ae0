// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the Inkwell API.
// Handlers are grouped by resource and receive their dependencies through
// the handler struct. Every error response has the shape {"error": "..."}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
	"inkwell/internal/session"
)

// maxJSONBody caps request bodies for JSON endpoints (1 MB).
const maxJSONBody = 1 << 20

var errIDRequired = domainerrors.Validation("ID required")

// CategoryStore is the persistence the Categories handler needs.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, id int64, p models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// AuthorStore is the persistence the Authors handler needs.
type AuthorStore interface {
	List(ctx context.Context) ([]models.Author, error)
	FindByID(ctx context.Context, id int64) (*models.Author, error)
	Create(ctx context.Context, a *models.Author) (*models.Author, error)
	Update(ctx context.Context, id int64, p models.AuthorPatch) (*models.Author, error)
	Delete(ctx context.Context, id int64) error
}

// PostStore is the persistence the Posts handler needs.
type PostStore interface {
	List(ctx context.Context, f models.PostFilter) (*models.PostPage, error)
	Search(ctx context.Context, q string) ([]models.Post, error)
	Featured(ctx context.Context) (*models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	ViewBySlug(ctx context.Context, slug string) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, id int64, p models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence the Auth and Users handlers need.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User, password string) (*models.User, error)
	Update(ctx context.Context, id int64, p models.UserPatch) (*models.User, error)
	SetPassword(ctx context.Context, id int64, password string) error
	DeleteGuarded(ctx context.Context, actorID, targetID int64) error
	CheckPassword(user *models.User, password string) bool
}

// AdStore is the persistence the Ads handler needs.
type AdStore interface {
	List(ctx context.Context, f models.AdFilter) ([]models.Ad, error)
	FindByID(ctx context.Context, id int64) (*models.Ad, error)
	Create(ctx context.Context, a *models.Ad) (*models.Ad, error)
	Update(ctx context.Context, id int64, p models.AdPatch) (*models.Ad, error)
	Delete(ctx context.Context, id int64) error
}

// CommentStore is the persistence the Comments handler needs.
type CommentStore interface {
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
}

// Sessions creates, refreshes and destroys login sessions.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type errorBody struct {
	Error string `json:"error"`
}

type successBody struct {
	Success bool `json:"success"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}

// writeError maps err to its HTTP status and a client-safe message.
// Server errors are logged with the full cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := domainerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, errorBody{Error: domainerrors.ClientMessage(err)})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successBody{Success: true})
}

// decodeJSON reads the request body into dst. Malformed, empty and
// oversized bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return domainerrors.Validation("Request body is empty")
	case errors.As(err, &maxErr):
		return domainerrors.Validation("Request body too large")
	default:
		return domainerrors.Validation("Invalid JSON body").WithCause(err)
	}
}

// parseID reads the positive integer "id" query parameter.
func parseID(r *http.Request) (int64, error) {
	return parsePositiveInt(r.URL.Query().Get("id"), errIDRequired)
}

func parsePositiveInt(raw string, errInvalid error) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalid
	}
	return id, nil
}
