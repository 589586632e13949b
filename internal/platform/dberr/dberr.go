// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/comicshelf/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Constraint violations stay internal errors: the catalogue surfaces every
// storage failure as a generic 500. The SQLSTATE is kept in the cause chain
// so the server log still tells a duplicate key from a lost connection.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Classified Postgres failures
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperr.Internal(fmt.Errorf("%s: %s (%s): %w", action, classify(pgErr.Code), pgErr.ConstraintName, err))
	}

	// 3. Everything else (network, context, scan) becomes an Internal Server Error
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err was caused by a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// classify maps a SQLSTATE to a short log label.
func classify(code string) string {
	switch code {
	case pgerrcode.UniqueViolation:
		return "unique_violation"
	case pgerrcode.CheckViolation:
		return "check_violation"
	case pgerrcode.NotNullViolation:
		return "not_null_violation"
	case pgerrcode.UndefinedTable:
		return "undefined_table"
	case pgerrcode.QueryCanceled:
		return "query_canceled"
	}
	return "sqlstate_" + code
}
