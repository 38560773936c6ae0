package database

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed creates data only when no user exists. We call it twice to verify
	// idempotency. The database is not cleared first because other test
	// packages may be running concurrently against it.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&userCount); err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 admin user, got %d", userCount)
	}

	var catCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&catCount); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if catCount < 1 {
		t.Errorf("expected at least 1 category, got %d", catCount)
	}
}

func TestSeedAdminPassword(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var hash string
	err = db.QueryRow("SELECT password FROM users WHERE username = $1", seedAdminUsername).Scan(&hash)
	if err != nil {
		t.Skipf("skipping: default admin was changed or removed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(seedAdminPassword)) != nil {
		t.Skip("skipping: default admin password was changed")
	}
}

func TestSeedDataIsConsistent(t *testing.T) {
	slugs := make(map[string]bool)
	for _, c := range seedCategories {
		if slugs[c.slug] {
			t.Errorf("duplicate category slug %q", c.slug)
		}
		slugs[c.slug] = true
	}

	featured := 0
	postSlugs := make(map[string]bool)
	for _, p := range seedPosts {
		if postSlugs[p.slug] {
			t.Errorf("duplicate post slug %q", p.slug)
		}
		postSlugs[p.slug] = true
		if p.featured {
			featured++
		}
		if p.categoryID < 1 || int(p.categoryID) > len(seedCategories) {
			t.Errorf("post %q references unknown category %d", p.slug, p.categoryID)
		}
		if p.authorID < 1 || int(p.authorID) > len(seedAuthors) {
			t.Errorf("post %q references unknown author %d", p.slug, p.authorID)
		}
	}
	if featured != 1 {
		t.Errorf("expected exactly one featured post, got %d", featured)
	}

	for _, c := range seedComments {
		if c.postID < 1 || int(c.postID) > len(seedPosts) {
			t.Errorf("comment by %q references unknown post %d", c.name, c.postID)
		}
	}
}
