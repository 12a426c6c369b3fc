package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	orig := NewNotFound("user", map[string]any{"user_id": "42"})
	wrapped := fmt.Errorf("lookup: %w", orig)

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "user not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("get user: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.True(t, errors.Is(de, pgx.ErrNoRows))
}

func TestToDomainErrorMapsPgCodes(t *testing.T) {
	unique := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.Equal(t, "CONFLICT", unique.Code)
	assert.Equal(t, http.StatusBadRequest, unique.HTTPStatus)
	assert.Equal(t, "users_email_key", unique.Details["constraint"])
	assert.Equal(t, "Email already in use", unique.Message)

	other := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "roles_name_key"})
	assert.Equal(t, "CONFLICT", other.Code)
	assert.Equal(t, "already in use", other.Message)

	fk := ToDomainError(&pgconn.PgError{Code: "23503"})
	assert.Equal(t, "REFERENCED", fk.Code)
	assert.Equal(t, http.StatusConflict, fk.HTTPStatus)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}
