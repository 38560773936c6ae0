// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalURLPrefix is the URL path under which local uploads are served.
const LocalURLPrefix = "/uploads/"

// Local stores uploads in a directory on disk.
type Local struct {
	dir string
}

// NewLocal returns a Local backend rooted at dir, creating it if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes body to dir/name. The file is written under a temporary name
// and renamed into place, so readers never observe a partial file. An
// existing file with the same name is never replaced.
func (l *Local) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(l.dir, name)
	// Link fails if dst exists, unlike Rename.
	if err := os.Link(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("store upload %s: %w", name, err)
	}
	if err := os.Chmod(dst, 0o644); err != nil {
		return "", fmt.Errorf("chmod upload %s: %w", name, err)
	}

	return LocalURLPrefix + name, nil
}
