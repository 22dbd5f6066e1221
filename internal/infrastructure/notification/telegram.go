// File: internal/infrastructure/notification/telegram.go
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/lolmatina/coincash-back/internal/domain/errors"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramBot broadcasts moderation events to every registered manager
// through the Bot API.
type TelegramBot struct {
	botToken   string
	db         repository.Database
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTelegramBot(botToken string, db repository.Database, logger *zap.Logger) *TelegramBot {
	return &TelegramBot{
		botToken:   botToken,
		db:         db,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// SendDocumentSubmission notifies every manager about a new submission.
// A failed delivery to one manager does not stop the broadcast; the send
// fails only when no manager could be reached.
func (t *TelegramBot) SendDocumentSubmission(ctx context.Context, sub interfaces.DocumentSubmission) error {
	managers, err := t.db.AllManagers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load managers: %w", err)
	}
	if len(managers) == 0 {
		t.logger.Warn("document submission received but no managers are registered",
			zap.String("email", sub.Email))
		return nil
	}

	text := fmt.Sprintf(
		"New document submission\n\nName: %s\nEmail: %s\n\nFront: %s\nBack: %s\nSelfie: %s",
		sub.Name, sub.Email, sub.FrontURL, sub.BackURL, sub.SelfieURL,
	)

	delivered := 0
	for _, m := range managers {
		if err := t.sendMessage(ctx, m.TelegramChatID, text); err != nil {
			t.logger.Error("failed to notify manager",
				zap.String("chat_id", m.TelegramChatID),
				zap.Error(err))
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return fmt.Errorf("failed to notify any of %d managers: %w", len(managers), domainErrors.ErrUnavailable)
	}
	return nil
}

func (t *TelegramBot) sendMessage(ctx context.Context, chatID, text string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var _ interfaces.TelegramNotifier = (*TelegramBot)(nil)
