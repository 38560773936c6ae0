// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "math"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Listing limits.
const (
	PostsPerPage      = 10
	SearchResultLimit = 20
	DefaultReadTime   = 5

	// MaxPage is the largest page whose offset still fits in an int.
	MaxPage = math.MaxInt/PostsPerPage + 1
)

// Post is an article. The JSON form embeds the full category and author;
// the raw foreign keys stay server-side.
type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image"`
	CategoryID    int64      `json:"-"`
	AuthorID      int64      `json:"-"`
	Category      Category   `json:"category"`
	Author        Author     `json:"author"`
	Tags          []string   `json:"tags"`
	ReadTime      int        `json:"read_time"`
	Views         int64      `json:"views"`
	Status        PostStatus `json:"status"`
	Featured      bool       `json:"featured"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     Timestamp  `json:"updated_at"`
}

// IsPublished returns true if the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostPatch holds the fields of a partial post update. Nil fields are left
// unchanged; updated_at is refreshed regardless.
type PostPatch struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	CategoryID    *int64
	AuthorID      *int64
	Tags          *[]string
	ReadTime      *int
	Status        *PostStatus
	Featured      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Slug == nil && p.Excerpt == nil && p.Content == nil &&
		p.FeaturedImage == nil && p.CategoryID == nil && p.AuthorID == nil &&
		p.Tags == nil && p.ReadTime == nil && p.Status == nil && p.Featured == nil
}

// PostFilter selects posts for the paginated listing.
type PostFilter struct {
	Page         int
	CategorySlug string
	// Status restricts to one status. Empty means published only, unless
	// All is set.
	Status PostStatus
	All    bool
}

// Offset returns the row offset for the filter's page (1-indexed, clamped).
func (f PostFilter) Offset() int {
	return (f.CurrentPage() - 1) * PostsPerPage
}

// CurrentPage returns the requested page, clamped to [1, MaxPage].
func (f PostFilter) CurrentPage() int {
	return min(max(1, f.Page), MaxPage)
}

// PostPage is one page of the post listing.
type PostPage struct {
	Data        []Post `json:"data"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	Total       int    `json:"total"`
}

// TotalPages returns max(1, ceil(total / PostsPerPage)).
func TotalPages(total int) int {
	pages := (total + PostsPerPage - 1) / PostsPerPage
	return max(1, pages)
}
