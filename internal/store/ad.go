// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
)

// AdStore manages promotional blocks.
type AdStore struct {
	db *sql.DB
}

// NewAdStore returns a new AdStore.
func NewAdStore(db *sql.DB) *AdStore {
	return &AdStore{db: db}
}

const adColumns = `id, title, description, image, link, link_text, active, position, created_at`

func scanAd(scanner interface{ Scan(...any) error }) (*models.Ad, error) {
	var a models.Ad
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Description, &a.Image, &a.Link,
		&a.LinkText, &a.Active, &a.Position, &a.CreatedAt.Time,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns ads newest first, optionally narrowed to one position and to
// active ads only.
func (s *AdStore) List(ctx context.Context, f models.AdFilter) ([]models.Ad, error) {
	var (
		where []string
		args  []any
	)
	if f.Position != "" {
		args = append(args, f.Position)
		where = append(where, fmt.Sprintf("position = $%d", len(args)))
	}
	if f.ActiveOnly {
		where = append(where, "active")
	}

	query := `SELECT ` + adColumns + ` FROM ads`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	defer rows.Close()

	ads := []models.Ad{}
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		ads = append(ads, *a)
	}
	return ads, rows.Err()
}

// FindByID retrieves an ad by ID. Returns nil if not found.
func (s *AdStore) FindByID(ctx context.Context, id int64) (*models.Ad, error) {
	a, err := scanAd(s.db.QueryRowContext(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ad by id: %w", err)
	}
	return a, nil
}

// Create inserts a new ad. Empty link text and position take their
// defaults; Active is stored as given.
func (s *AdStore) Create(ctx context.Context, a *models.Ad) (*models.Ad, error) {
	linkText := a.LinkText
	if linkText == "" {
		linkText = models.DefaultAdLinkText
	}
	position := a.Position
	if position == "" {
		position = models.DefaultAdPosition
	}

	created, err := scanAd(s.db.QueryRowContext(ctx, `
		INSERT INTO ads (title, description, image, link, link_text, active, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+adColumns,
		a.Title, a.Description, a.Image, a.Link, linkText, a.Active, position,
	))
	if err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	return created, nil
}

// Update applies a partial update and returns the stored ad.
func (s *AdStore) Update(ctx context.Context, id int64, p models.AdPatch) (*models.Ad, error) {
	if p.IsEmpty() {
		return nil, errNothingToUpdate
	}

	var b updateBuilder
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Description != nil {
		b.set("description", *p.Description)
	}
	if p.Image != nil {
		b.set("image", *p.Image)
	}
	if p.Link != nil {
		b.set("link", *p.Link)
	}
	if p.LinkText != nil {
		b.set("link_text", *p.LinkText)
	}
	if p.Active != nil {
		b.set("active", *p.Active)
	}
	if p.Position != nil {
		b.set("position", *p.Position)
	}

	query, args := b.build("ads", id, adColumns)
	a, err := scanAd(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update ad: %w", err)
	}
	return a, nil
}

// Delete removes an ad by ID.
func (s *AdStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	return nil
}
