package repository

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Builder configuré pour les placeholders PostgreSQL ($1, $2, ...).
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Codes d'erreur PostgreSQL (classe 23 — violation de contrainte d'intégrité).
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func isForeignKeyViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pqForeignKeyViolation {
		return false
	}
	return constraint == "" || strings.Contains(pqErr.Constraint, constraint)
}
