// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DefaultAuthorID is the author assigned to posts created without one.
const DefaultAuthorID int64 = 1

// Author is the public byline attached to posts. Authors are not login
// accounts; see User for those.
type Author struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// AuthorPatch holds the fields of a partial author update.
type AuthorPatch struct {
	Name   *string
	Role   *string
	Bio    *string
	Avatar *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.Role == nil && p.Bio == nil && p.Avatar == nil
}
