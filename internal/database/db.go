package database

import (
	"errors"

	"github.com/BradenHooton/reviewhub/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPostgresError translates driver errors into model sentinel errors
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrConflict
		case "23502", "23514", "22001": // not_null, check, string too long
			return models.ErrUnprocessable
		case "22P02": // invalid_text_representation, e.g. malformed uuid
			return models.ErrNotFound
		}
	}

	return err
}
