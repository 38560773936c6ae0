// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "net/url"

// avatarBaseURL generates a stable placeholder avatar per seed string.
const avatarBaseURL = "https://i.pravatar.cc/150?u="

// Comment is a reader comment on a post. Comments are visible as soon as
// they are created.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Avatar     string    `json:"avatar"`
	Content    string    `json:"content"`
	CreatedAt  Timestamp `json:"created_at"`
}

// CommentAvatar returns the avatar URL for a commenter. The same name always
// yields the same URL.
func CommentAvatar(authorName string) string {
	return avatarBaseURL + url.QueryEscape(authorName)
}
