// File: internal/infrastructure/database/postgres/managers.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/models"
)

const managerColumns = `id, name, telegram_chat_id, created_at, updated_at`

func scanManager(row pgx.Row) (*models.Manager, error) {
	m := &models.Manager{}
	err := row.Scan(&m.ID, &m.Name, &m.TelegramChatID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateManager registers a new manager.
func (d *Database) CreateManager(ctx context.Context, params models.CreateManagerParams) (*models.Manager, error) {
	query := `
		INSERT INTO managers (name, telegram_chat_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + managerColumns
	m, err := scanManager(d.pool.QueryRow(ctx, query, params.Name, params.TelegramChatID, time.Now().UTC()))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrTelegramIDExists
		}
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}
	return m, nil
}

// FindManagerByTelegramID retrieves a manager by Telegram chat id.
func (d *Database) FindManagerByTelegramID(ctx context.Context, telegramChatID string) (*models.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE telegram_chat_id = $1`
	m, err := scanManager(d.pool.QueryRow(ctx, query, telegramChatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to find manager by telegram id: %w", err)
	}
	return m, nil
}

// AllManagers returns every registered manager.
func (d *Database) AllManagers(ctx context.Context) ([]models.Manager, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+managerColumns+` FROM managers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query managers: %w", err)
	}
	defer rows.Close()

	var managers []models.Manager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate managers: %w", err)
	}
	return managers, nil
}
