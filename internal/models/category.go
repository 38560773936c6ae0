// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#2563eb"

// Category groups posts. Every post belongs to exactly one category.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// CategoryPatch holds the fields of a partial category update.
// Nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Slug  *string
	Color *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Color == nil
}
