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

// CommentStore manages reader comments.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, author_name, avatar, content, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	if err := scanner.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.Avatar, &c.Content, &c.CreatedAt.Time); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost returns a post's comments, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created_at ASC, id ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// Create stores a comment. The avatar is always derived from the author
// name; any avatar on c is ignored.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	created, err := scanComment(s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, author_name, avatar, content)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		c.PostID, c.AuthorName, models.CommentAvatar(c.AuthorName), c.Content,
	))
	if foreignKeyConstraint(err) != "" {
		return nil, domainerrors.NotFound("Post not found").WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}
