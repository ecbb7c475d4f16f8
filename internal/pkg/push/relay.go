// Package push forwards freshly inserted notification records to the
// external push relay function, which resolves the recipient's device token
// and delivers the platform notification. Delivery is best-effort: failures
// are logged and never affect the workflow that produced the record.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// Relay posts notification records to the configured relay endpoint.
type Relay struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewRelay creates a Relay. An empty URL disables forwarding; Send becomes
// a no-op so environments without the relay function still work.
func NewRelay(url string, logger zerolog.Logger) *Relay {
	return &Relay{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Enabled reports whether a relay endpoint is configured.
func (r *Relay) Enabled() bool {
	return r.url != ""
}

// record mirrors the notifications table row in the column naming the relay
// function reads. The relay rejects bodies without record.user_id, so the
// model's JSON field names cannot be reused here.
type record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// payload is the request body: the inserted row wrapped in a "record"
// envelope, matching the database webhook shape the relay was built for.
type payload struct {
	Record record `json:"record"`
}

func recordFrom(n *models.Notification) record {
	return record{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// Send forwards one notification record. Errors are returned for logging
// only; callers must not treat them as workflow failures.
func (r *Relay) Send(ctx context.Context, n *models.Notification) error {
	if !r.Enabled() {
		return nil
	}

	body, err := json.Marshal(payload{Record: recordFrom(n)})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("push relay request failed: %w", err)
	}
	defer resp.Body.Close()

	// The relay answers 200 even when the recipient has no device token;
	// only transport-level failures are worth surfacing.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}

	r.logger.Debug().Str("notificationID", n.ID).Int("status", resp.StatusCode).Msg("Push relay invoked")
	return nil
}
