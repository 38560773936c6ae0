// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/storage"
)

const (
	// maxUploadSize is the maximum accepted image size (5 MB).
	maxUploadSize = 5 << 20

	// multipartOverhead leaves room for boundaries and part headers.
	multipartOverhead = 64 << 10

	uploadField = "image"
)

// allowedImageTypes maps accepted MIME types to their canonical extension.
// The type is the one the client declared; contents are not inspected.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

var (
	errNoImage     = domainerrors.Validation("No image file provided")
	errInvalidType = domainerrors.Validation("Invalid file type. Allowed: jpg, png, gif, webp")
	errTooLarge    = domainerrors.Validation("File too large. Max 5MB")
	errSaveFailed  = domainerrors.Internal("Failed to save file")
)

// Upload serves POST /upload (multipart field "image").
type Upload struct {
	backend storage.Backend
}

// NewUpload creates the upload handler writing to backend.
func NewUpload(backend storage.Backend) *Upload {
	return &Upload{backend: backend}
}

// ServeHTTP stores one image and answers 201 {"url": "..."}. Every check
// runs before anything is written to the backend.
func (u *Upload) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, errTooLarge)
			return
		}
		writeError(w, r, domainerrors.Validation("Invalid multipart form").WithCause(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, r, errNoImage)
		return
	}
	defer file.Close()

	contentType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, errInvalidType)
		return
	}
	typeExt, ok := allowedImageTypes[contentType]
	if !ok {
		writeError(w, r, errInvalidType)
		return
	}
	if header.Size > maxUploadSize {
		writeError(w, r, errTooLarge)
		return
	}

	name := "img_" + uuid.New().String() + uploadExt(header.Filename, typeExt)
	url, err := u.backend.Save(r.Context(), name, contentType, file, header.Size)
	if err != nil {
		writeError(w, r, errSaveFailed.WithCause(err))
		return
	}

	slog.Info("image uploaded", "name", name, "type", contentType, "size", header.Size)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// uploadExt keeps the client's extension when it is a plain short
// extension, otherwise uses the one for the declared type.
func uploadExt(filename, fallback string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if safeExt.MatchString(ext) {
		return ext
	}
	return fallback
}
