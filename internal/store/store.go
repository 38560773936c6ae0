// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Inkwell entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Lookups return (nil, nil) when the row does not exist. Mutations return
// *errors.Error values for outcomes the caller caused (duplicate slug,
// missing parent row, empty patch) and wrapped errors for everything else.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	domainerrors "inkwell/internal/errors"
)

// Postgres SQLSTATE codes the stores translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var errNothingToUpdate = domainerrors.Validation("Nothing to update")

// pgError extracts the Postgres error from err, or nil.
func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == pgUniqueViolation
}

// foreignKeyConstraint returns the name of the violated foreign key
// constraint, or "" if err is not a foreign key violation.
func foreignKeyConstraint(err error) string {
	pgErr := pgError(err)
	if pgErr == nil || pgErr.Code != pgForeignKeyViolation {
		return ""
	}
	if pgErr.ConstraintName == "" {
		return "unknown"
	}
	return pgErr.ConstraintName
}

// updateBuilder assembles a parameterized UPDATE statement from the
// non-nil fields of a patch.
type updateBuilder struct {
	sets []string
	args []any
}

// set adds "col = $n" bound to val.
func (b *updateBuilder) set(col string, val any) {
	b.args = append(b.args, val)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

// setExpr adds a raw assignment such as "updated_at = NOW()".
func (b *updateBuilder) setExpr(expr string) {
	b.sets = append(b.sets, expr)
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build returns the statement and its arguments. The row is selected by id
// and the statement returns the given columns.
func (b *updateBuilder) build(table string, id int64, returning string) (string, []any) {
	args := append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.sets, ", "), len(args), returning)
	return query, args
}
