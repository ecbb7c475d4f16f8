package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models"
)

func sampleNotification() *models.Notification {
	link := "/leave-requests/req-1"
	return &models.Notification{
		ID:        "n-1",
		UserID:    "u-1",
		Title:     "Leave request approved",
		Message:   "Your leave request has been approved",
		Link:      &link,
		IsRead:    false,
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSend_PayloadMatchesRelayContract(t *testing.T) {
	t.Parallel()

	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	relay := NewRelay(srv.URL, zerolog.Nop())
	if err := relay.Send(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	var got struct {
		Record map[string]any `json:"record"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if got.Record == nil {
		t.Fatal("request body has no record envelope")
	}

	// The relay function answers 400 when record.user_id is missing; the
	// column-named keys are the contract, not the model's JSON names.
	if got.Record["user_id"] != "u-1" {
		t.Errorf("record.user_id = %v, want u-1", got.Record["user_id"])
	}
	for _, key := range []string{"id", "title", "message", "link", "is_read", "created_at"} {
		if _, ok := got.Record[key]; !ok {
			t.Errorf("record is missing key %q", key)
		}
	}
	if _, ok := got.Record["userId"]; ok {
		t.Error("record carries the camelCase userId key instead of user_id")
	}
}

func TestSend_DisabledAndStatusHandling(t *testing.T) {
	t.Parallel()

	t.Run("empty URL is a no-op", func(t *testing.T) {
		relay := NewRelay("", zerolog.Nop())
		if relay.Enabled() {
			t.Error("Enabled() = true for an empty URL")
		}
		if err := relay.Send(context.Background(), sampleNotification()); err != nil {
			t.Errorf("Send returned error for disabled relay: %v", err)
		}
	})

	t.Run("client errors are not failures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		relay := NewRelay(srv.URL, zerolog.Nop())
		if err := relay.Send(context.Background(), sampleNotification()); err != nil {
			t.Errorf("Send returned error for a 4xx answer: %v", err)
		}
	})

	t.Run("server errors surface", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		relay := NewRelay(srv.URL, zerolog.Nop())
		if err := relay.Send(context.Background(), sampleNotification()); err == nil {
			t.Error("Send returned nil for a 5xx answer")
		}
	})
}
