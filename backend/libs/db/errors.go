package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the services care about.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// UniqueViolation reports whether err is a unique constraint violation and, if so,
// the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	return violation(err, CodeUniqueViolation)
}

// ForeignKeyViolation reports whether err is a foreign key violation and, if so,
// the name of the violated constraint.
func ForeignKeyViolation(err error) (string, bool) {
	return violation(err, CodeForeignKeyViolation)
}

func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return "", false
	}
	return pgErr.ConstraintName, true
}
