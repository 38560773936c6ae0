// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
)

// PostStore manages posts. Every read joins the post's category and author
// so callers always receive the full DTO.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postFields is the select list shared by every post query. The source
// relation must be aliased p.
const postFields = `
	p.id, p.title, p.slug, p.excerpt, p.content, p.featured_image,
	p.category_id, p.author_id, p.tags, p.read_time, p.views, p.status, p.featured,
	p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.color,
	a.id, a.name, a.role, a.bio, a.avatar`

const postJoins = `
	JOIN categories c ON c.id = p.category_id
	JOIN authors a ON a.id = p.author_id`

const postSelect = `SELECT ` + postFields + ` FROM posts p ` + postJoins

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p    models.Post
		tags []byte
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.CategoryID, &p.AuthorID, &tags, &p.ReadTime, &p.Views, &p.Status, &p.Featured,
		&p.CreatedAt.Time, &p.UpdatedAt.Time,
		&p.Category.ID, &p.Category.Name, &p.Category.Slug, &p.Category.Color,
		&p.Author.ID, &p.Author.Name, &p.Author.Role, &p.Author.Bio, &p.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &p.Tags); err != nil || p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func (s *PostStore) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// List returns one page of posts, newest first. The total counts every post
// matching the filter, not just the page.
func (s *PostStore) List(ctx context.Context, f models.PostFilter) (*models.PostPage, error) {
	var (
		where []string
		args  []any
	)
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	} else if !f.All {
		where = append(where, "p.status = 'published'")
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts p JOIN categories c ON c.id = p.category_id`+whereClause,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	pageArgs := append(args, models.PostsPerPage, f.Offset())
	query := postSelect + whereClause +
		fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", len(pageArgs)-1, len(pageArgs))

	posts, err := s.queryPosts(ctx, query, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &models.PostPage{
		Data:        posts,
		CurrentPage: f.CurrentPage(),
		TotalPages:  models.TotalPages(total),
		Total:       total,
	}, nil
}

// Search returns up to SearchResultLimit published posts whose title or
// excerpt contains q, case-insensitively. Wildcards in q are not escaped.
func (s *PostStore) Search(ctx context.Context, q string) ([]models.Post, error) {
	posts, err := s.queryPosts(ctx, postSelect+`
		WHERE p.status = 'published' AND (p.title ILIKE $1 OR p.excerpt ILIKE $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2`,
		"%"+q+"%", models.SearchResultLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return posts, nil
}

// Featured returns the most recently created post that is both featured and
// published. Returns nil if there is none.
func (s *PostStore) Featured(ctx context.Context) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, postSelect+`
		WHERE p.featured AND p.status = 'published'
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT 1`)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find featured post: %w", err)
	}
	return p, nil
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// ViewBySlug increments the view counter of the post with the given slug and
// returns the post carrying the incremented count. The increment and the
// read happen in one statement. Returns nil if no post has the slug.
func (s *PostStore) ViewBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		WITH p AS (
			UPDATE posts SET views = views + 1
			WHERE slug = $1
			RETURNING *
		)
		SELECT `+postFields+` FROM p `+postJoins,
		slug,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("view post: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with its category and author.
// Zero-valued optional fields take their defaults.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return nil, err
	}

	status := p.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	readTime := p.ReadTime
	if readTime == 0 {
		readTime = models.DefaultReadTime
	}
	authorID := p.AuthorID
	if authorID == 0 {
		authorID = models.DefaultAuthorID
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, excerpt, content, featured_image, category_id, author_id,
		                   tags, read_time, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)
		RETURNING id`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.CategoryID, authorID,
		tags, readTime, status, p.Featured,
	).Scan(&id)
	if err := translatePostWrite(err); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	created, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("create post: row %d vanished", id)
	}
	return created, nil
}

// Update applies a partial update, refreshes updated_at and returns the
// stored post.
func (s *PostStore) Update(ctx context.Context, id int64, p models.PostPatch) (*models.Post, error) {
	if p.IsEmpty() {
		return nil, errNothingToUpdate
	}

	var b updateBuilder
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Slug != nil {
		b.set("slug", *p.Slug)
	}
	if p.Excerpt != nil {
		b.set("excerpt", *p.Excerpt)
	}
	if p.Content != nil {
		b.set("content", *p.Content)
	}
	if p.FeaturedImage != nil {
		b.set("featured_image", *p.FeaturedImage)
	}
	if p.CategoryID != nil {
		b.set("category_id", *p.CategoryID)
	}
	if p.AuthorID != nil {
		b.set("author_id", *p.AuthorID)
	}
	if p.Tags != nil {
		tags, err := encodeTags(*p.Tags)
		if err != nil {
			return nil, err
		}
		b.set("tags", tags)
	}
	if p.ReadTime != nil {
		b.set("read_time", *p.ReadTime)
	}
	if p.Status != nil {
		b.set("status", *p.Status)
	}
	if p.Featured != nil {
		b.set("featured", *p.Featured)
	}
	b.setExpr("updated_at = NOW()")

	query, args := b.build("posts", id, "id")
	var updatedID int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, domainerrors.ErrNotFound
	}
	if err := translatePostWrite(err); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	updated, err := s.FindByID(ctx, updatedID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domainerrors.ErrNotFound
	}
	return updated, nil
}

// Delete removes a post and, through the foreign key cascade, its comments.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// encodeTags renders tags as a JSON array, never null.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// translatePostWrite maps constraint violations from a post insert or update
// to domain errors. Other errors pass through unchanged.
func translatePostWrite(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domainerrors.Conflict("Slug already in use").WithCause(err)
	}
	switch foreignKeyConstraint(err) {
	case "":
		return err
	case "posts_author_id_fkey":
		return domainerrors.Validation("Author does not exist").WithCause(err)
	default:
		return domainerrors.Validation("Category does not exist").WithCause(err)
	}
}
