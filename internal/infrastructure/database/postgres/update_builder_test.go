// File: internal/infrastructure/database/postgres/update_builder_test.go
package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
)

func TestBuildUserUpdateEmpty(t *testing.T) {
	_, _, err := buildUserUpdate(1, models.UserUpdate{}, time.Now())
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
}

func TestBuildUserUpdateRejectsImmutableColumns(t *testing.T) {
	now := time.Now().UTC()

	for _, column := range []string{"id", "created_at", "updated_at", "no_such_column"} {
		_, _, err := buildUserUpdate(1, models.UserUpdate{column: "x"}, now)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidInput, "column %q must be rejected", column)
	}
}

func TestBuildUserUpdateDeterministicOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	update := models.UserUpdate{
		"password_reset_token":      "abc",
		"email":                     "new@example.com",
		"password_reset_expires_at": now.Add(15 * time.Minute),
	}

	query, values, err := buildUserUpdate(7, update, now)
	require.NoError(t, err)

	// Columns come out sorted, updated_at is stamped last, id closes the list.
	assert.Contains(t, query, "SET email = $1, password_reset_expires_at = $2, password_reset_token = $3, updated_at = $4 WHERE id = $5")
	require.Len(t, values, 5)
	assert.Equal(t, "new@example.com", values[0])
	assert.Equal(t, now.Add(15*time.Minute), values[1])
	assert.Equal(t, "abc", values[2])
	assert.Equal(t, now, values[3])
	assert.Equal(t, int64(7), values[4])
}

func TestBuildUserUpdateNilClearsColumn(t *testing.T) {
	now := time.Now().UTC()

	query, values, err := buildUserUpdate(7, models.UserUpdate{
		"password_reset_token": nil,
	}, now)
	require.NoError(t, err)

	assert.Contains(t, query, "password_reset_token = $1")
	assert.Nil(t, values[0])
}
