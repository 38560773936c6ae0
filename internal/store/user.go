package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, password, name, avatar, role, created_at`

var errUsernameTaken = domainerrors.Conflict("Username already in use")

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Avatar, &u.Role, &u.CreatedAt.Time)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByUsername retrieves a user by username. Returns nil if not found.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by ID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password. An empty role
// defaults to collaborator.
func (s *UserStore) Create(ctx context.Context, u *models.User, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	role := u.Role
	if role == "" {
		role = models.RoleCollaborator
	}

	created, err := scanUser(s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, name, avatar, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Username, hash, u.Name, u.Avatar, role,
	))
	if isUniqueViolation(err) {
		return nil, errUsernameTaken.WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Update applies a partial update. A non-nil Password is hashed before it
// is stored.
func (s *UserStore) Update(ctx context.Context, id int64, p models.UserPatch) (*models.User, error) {
	if p.IsEmpty() {
		return nil, errNothingToUpdate
	}

	var b updateBuilder
	if p.Username != nil {
		b.set("username", *p.Username)
	}
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Avatar != nil {
		b.set("avatar", *p.Avatar)
	}
	if p.Role != nil {
		b.set("role", *p.Role)
	}
	if p.Password != nil {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		b.set("password", hash)
	}

	query, args := b.build("users", id, userColumns)
	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == sql.ErrNoRows:
		return nil, domainerrors.ErrNotFound
	case isUniqueViolation(err):
		return nil, errUsernameTaken.WithCause(err)
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// SetPassword replaces a user's password.
func (s *UserStore) SetPassword(ctx context.Context, id int64, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteGuarded removes the target user on behalf of actorID. Users cannot
// delete themselves, and the last admin cannot be deleted. The admin rows
// are locked before counting so concurrent deletes serialize. Deleting a
// missing user is not an error.
func (s *UserStore) DeleteGuarded(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return domainerrors.Forbidden("You cannot delete your own account")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM users WHERE role = 'admin' ORDER BY id FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("lock admins: %w", err)
	}
	admins := 0
	targetIsAdmin := false
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan admin: %w", err)
		}
		admins++
		if id == targetID {
			targetIsAdmin = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("lock admins: %w", err)
	}
	rows.Close()

	if targetIsAdmin && admins <= 1 {
		return domainerrors.Forbidden("Cannot delete the only admin")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return tx.Commit()
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if domainerrors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domainerrors.Validation("password must not exceed 72 bytes").WithCause(err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
