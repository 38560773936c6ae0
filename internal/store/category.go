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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, color`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	if err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.Color); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. An empty color falls back
// to the default.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	color := c.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, color)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, color,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, domainerrors.Conflictf("Slug %q already in use", c.Slug).WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update applies a partial update and returns the stored category.
func (s *CategoryStore) Update(ctx context.Context, id int64, p models.CategoryPatch) (*models.Category, error) {
	if p.IsEmpty() {
		return nil, errNothingToUpdate
	}

	var b updateBuilder
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Slug != nil {
		b.set("slug", *p.Slug)
	}
	if p.Color != nil {
		b.set("color", *p.Color)
	}

	query, args := b.build("categories", id, categoryColumns)
	c, err := scanCategory(s.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == sql.ErrNoRows:
		return nil, domainerrors.ErrNotFound
	case isUniqueViolation(err):
		return nil, domainerrors.Conflict("Slug already in use").WithCause(err)
	case err != nil:
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category by ID. Deleting a missing category is not an
// error; deleting one that still has posts is a conflict.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if foreignKeyConstraint(err) != "" {
		return domainerrors.Conflict("Category still has posts").WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
