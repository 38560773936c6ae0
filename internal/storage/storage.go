// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded images. Two backends exist: a local
// directory served by the API itself, and an S3-compatible bucket
// configured for path-style access.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidName is returned when an object name contains path elements.
var ErrInvalidName = errors.New("storage: invalid object name")

// Backend stores an uploaded file under name and returns the URL clients
// use to fetch it.
type Backend interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// validName rejects names that could escape the upload prefix.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && path.Base(name) == name
}
