// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// schemaDB returns a connection whose search_path is a fresh, migrated
// schema of its own, for tests that need to control every row of a table.
// The schema is dropped when the test finishes.
func schemaDB(t *testing.T) *sql.DB {
	t.Helper()
	base := testDB(t)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := base.Exec("CREATE SCHEMA " + schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	db, err := sql.Open("pgx", testDSN()+"&search_path="+schema)
	if err != nil {
		t.Fatalf("open schema db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		base.Exec("DROP SCHEMA " + schema + " CASCADE")
	})

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

// uniq returns prefix plus a short random suffix, safe to use as a slug or
// username.
func uniq(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// testCategory creates a throwaway category and removes it (and any posts
// left in it) when the test ends.
func testCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()
	slug := uniq("test-cat")
	c, err := NewCategoryStore(db).Create(context.Background(), &models.Category{Name: "Test " + slug, Slug: slug})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE category_id = $1", c.ID)
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// testAuthor creates a throwaway author, removed when the test ends.
func testAuthor(t *testing.T, db *sql.DB) *models.Author {
	t.Helper()
	a, err := NewAuthorStore(db).Create(context.Background(), &models.Author{Name: uniq("Test Author")})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE author_id = $1", a.ID)
		db.Exec("DELETE FROM authors WHERE id = $1", a.ID)
	})
	return a
}

// testPost creates a post in the given category and author. The post is
// removed with its category.
func testPost(t *testing.T, db *sql.DB, cat *models.Category, author *models.Author, status models.PostStatus) *models.Post {
	t.Helper()
	slug := uniq("test-post")
	p, err := NewPostStore(db).Create(context.Background(), &models.Post{
		Title:      "Post " + slug,
		Slug:       slug,
		Excerpt:    "excerpt for " + slug,
		CategoryID: cat.ID,
		AuthorID:   author.ID,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// cleanUsers removes test users by username. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", username)
	}
}
