// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
)

// AuthorStore manages post bylines.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore returns a new AuthorStore.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, role, bio, avatar`

func scanAuthor(scanner interface{ Scan(...any) error }) (*models.Author, error) {
	var a models.Author
	if err := scanner.Scan(&a.ID, &a.Name, &a.Role, &a.Bio, &a.Avatar); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all authors ordered by name.
func (s *AuthorStore) List(ctx context.Context) ([]models.Author, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	items := []models.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an author by ID. Returns nil if not found.
func (s *AuthorStore) FindByID(ctx context.Context, id int64) (*models.Author, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// Create inserts a new author and returns it.
func (s *AuthorStore) Create(ctx context.Context, a *models.Author) (*models.Author, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO authors (name, role, bio, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING `+authorColumns,
		a.Name, a.Role, a.Bio, a.Avatar,
	)
	result, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return result, nil
}

// Update applies a partial update and returns the stored author.
func (s *AuthorStore) Update(ctx context.Context, id int64, p models.AuthorPatch) (*models.Author, error) {
	if p.IsEmpty() {
		return nil, errNothingToUpdate
	}

	var b updateBuilder
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Role != nil {
		b.set("role", *p.Role)
	}
	if p.Bio != nil {
		b.set("bio", *p.Bio)
	}
	if p.Avatar != nil {
		b.set("avatar", *p.Avatar)
	}

	query, args := b.build("authors", id, authorColumns)
	a, err := scanAuthor(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return a, nil
}

// Delete removes an author by ID. Authors still credited on posts cannot be
// deleted.
func (s *AuthorStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if foreignKeyConstraint(err) != "" {
		return domainerrors.Conflict("Author still has posts").WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}
