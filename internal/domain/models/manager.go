// File: internal/domain/models/manager.go
package models

import "time"

// Manager represents a moderator reachable over Telegram.
type Manager struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	TelegramChatID string    `json:"telegram_chat_id" db:"telegram_chat_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CreateManagerParams carries the fields needed to register a manager.
type CreateManagerParams struct {
	Name           string
	TelegramChatID string
}
