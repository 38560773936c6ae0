// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
)

func TestAuthorStoreUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewAuthorStore(db)
	ctx := context.Background()
	a := testAuthor(t, db)

	bio := "Writes about Go."
	updated, err := s.Update(ctx, a.ID, models.AuthorPatch{Bio: &bio})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Bio != bio || updated.Name != a.Name {
		t.Errorf("unexpected author after update: %+v", updated)
	}

	cat := testCategory(t, db)
	testPost(t, db, cat, a, models.PostStatusDraft)
	if err := s.Delete(ctx, a.ID); !domainerrors.Is(err, domainerrors.ErrConflict) {
		t.Errorf("expected conflict deleting credited author, got %v", err)
	}
}
