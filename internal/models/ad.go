// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Ad defaults applied on creation.
const (
	DefaultAdLinkText = "Saiba mais"
	DefaultAdPosition = "sidebar"
)

// Ad is a promotional block placed by the frontend. Position is free-form;
// the dashboard uses sidebar, article_bottom and home_banner.
type Ad struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	LinkText    string    `json:"link_text"`
	Active      bool      `json:"active"`
	Position    string    `json:"position"`
	CreatedAt   Timestamp `json:"created_at"`
}

// AdPatch holds the fields of a partial ad update.
type AdPatch struct {
	Title       *string
	Description *string
	Image       *string
	Link        *string
	LinkText    *string
	Active      *bool
	Position    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AdPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil && p.Link == nil &&
		p.LinkText == nil && p.Active == nil && p.Position == nil
}

// AdFilter narrows the ad listing.
type AdFilter struct {
	Position   string
	ActiveOnly bool
}
