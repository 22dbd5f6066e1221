// File: internal/infrastructure/database/postgres/update_builder.go
package postgres

import (
	"fmt"
	"sort"
	"strings"
	"time"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
)

// buildUserUpdate assembles a parameterized UPDATE from a partial update.
// Only provided columns land in the SET clause, updated_at is always
// stamped, and id/created_at can never be overwritten. Columns are sorted
// so the generated SQL is deterministic.
func buildUserUpdate(id int64, update models.UserUpdate, now time.Time) (string, []interface{}, error) {
	if len(update) == 0 {
		return "", nil, fmt.Errorf("empty update: %w", domainErrors.ErrInvalidInput)
	}

	columns := make([]string, 0, len(update))
	for column := range update {
		if _, ok := models.UserUpdatableColumns[column]; !ok {
			return "", nil, fmt.Errorf("column %q is not updatable: %w", column, domainErrors.ErrInvalidInput)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	setClauses := make([]string, 0, len(columns)+1)
	values := make([]interface{}, 0, len(columns)+2)
	for i, column := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i+1))
		values = append(values, update[column])
	}
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", len(columns)+1))
	values = append(values, now)
	values = append(values, id)

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(columns)+2, userColumns,
	)
	return query, values, nil
}
