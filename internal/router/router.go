// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. Reads are public; writes sit behind RequireAuth.
package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/storage"
)

// Options controls the parts of the routing table that depend on config.
type Options struct {
	TrustProxy        bool
	CORSOrigin        string
	UploadRequireAuth bool

	// UploadDir is served under /uploads/ when set. Leave it empty when
	// uploads go to object storage.
	UploadDir string
}

// Handlers groups the resource handlers mounted by the router.
type Handlers struct {
	Posts      *handlers.Posts
	Categories *handlers.Categories
	Authors    *handlers.Authors
	Ads        *handlers.Ads
	Comments   *handlers.Comments
	Auth       *handlers.Auth
	Users      *handlers.Users
	Upload     *handlers.Upload
}

// Limiters are the per-IP rate limiters for login and comment posting.
type Limiters struct {
	Login   *middleware.RateLimiter
	Comment *middleware.RateLimiter
}

// New creates the chi router with all middleware and routes wired up.
func New(opts Options, sessions middleware.SessionGetter, h Handlers, lim Limiters) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.CORSOrigin))
	r.Use(middleware.LoadSession(sessions))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", healthHandler)

	// Public reads.
	r.Get("/posts", h.Posts.List)
	r.Get("/post", h.Posts.Show)
	r.Get("/categories", h.Categories.List)
	r.Get("/authors", h.Authors.List)
	r.Get("/ads", h.Ads.List)
	r.Get("/comments", h.Comments.List)
	r.With(lim.Comment.Middleware).Post("/comments", h.Comments.Create)

	// Auth actions decide for themselves whether a session is needed.
	r.Group(func(r chi.Router) {
		r.Use(forAction("login", lim.Login.Middleware))
		r.Get("/auth", h.Auth.ServeHTTP)
		r.Post("/auth", h.Auth.ServeHTTP)
	})

	// Dashboard writes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/posts", h.Posts.Create)
		r.Put("/posts", h.Posts.Update)
		r.Delete("/posts", h.Posts.Delete)

		r.Post("/categories", h.Categories.Create)
		r.Put("/categories", h.Categories.Update)
		r.Delete("/categories", h.Categories.Delete)

		r.Post("/authors", h.Authors.Create)
		r.Put("/authors", h.Authors.Update)
		r.Delete("/authors", h.Authors.Delete)

		r.Post("/ads", h.Ads.Create)
		r.Put("/ads", h.Ads.Update)
		r.Delete("/ads", h.Ads.Delete)

		r.Get("/users", h.Users.List)
		r.Post("/users", h.Users.Create)
		r.Put("/users", h.Users.Update)
		r.Delete("/users", h.Users.Delete)
	})

	upload := r.With()
	if opts.UploadRequireAuth {
		upload = r.With(middleware.RequireAuth)
	}
	upload.Post("/upload", h.Upload.ServeHTTP)

	if opts.UploadDir != "" {
		files := http.StripPrefix(storage.LocalURLPrefix, http.FileServer(http.Dir(opts.UploadDir)))
		r.Get(storage.LocalURLPrefix+"*", noDirListing(files))
	}

	return r
}

// forAction applies mw only to requests whose ?action= equals action.
func forAction(action string, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("action") == action {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// noDirListing answers 404 for directory paths instead of an index page.
func noDirListing(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			writeJSONError(w, http.StatusNotFound, "Not found")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
