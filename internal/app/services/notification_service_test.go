package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/workflow"
)

type stubNotificationStore struct {
	created []*models.Notification
	read    map[string]bool
}

func (s *stubNotificationStore) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	s.created = append(s.created, notifications...)
	return nil
}

func (s *stubNotificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range s.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if s.read == nil {
		s.read = make(map[string]bool)
	}
	s.read[userID] = true
	var count int64
	for _, n := range s.created {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

type stubDirectory struct {
	admins map[models.Role][]string
	pcs    map[models.Stream][]string
}

func (d *stubDirectory) ListIDsByRole(ctx context.Context, role models.Role) ([]string, error) {
	return d.admins[role], nil
}

func (d *stubDirectory) ListPCIDsByStream(ctx context.Context, stream models.Stream) ([]string, error) {
	return d.pcs[stream], nil
}

type stubPublisher struct {
	published []*models.Notification
}

func (p *stubPublisher) Publish(n *models.Notification) {
	p.published = append(p.published, n)
}

func newTestNotificationService() (*NotificationService, *stubNotificationStore, *stubPublisher) {
	store := &stubNotificationStore{}
	directory := &stubDirectory{
		admins: map[models.Role][]string{models.RoleAdmin: {"admin-1", "admin-2"}},
		pcs: map[models.Stream][]string{
			models.StreamCSE: {"pc-cse"},
			models.StreamECE: {"pc-ece"},
		},
	}
	publisher := &stubPublisher{}
	svc := NewNotificationService(store, directory, publisher, nil, zerolog.Nop())
	return svc, store, publisher
}

func pendingRequest(status models.LeaveStatus) *models.LeaveRequest {
	return &models.LeaveRequest{
		ID:          "req-1",
		RequestedBy: "u-student",
		StudentName: "Asha Nair",
		Stream:      models.StreamCSE,
		Status:      status,
		FromDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToDate:      time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotifySubmitted_Routing(t *testing.T) {
	t.Parallel()

	t.Run("pending_pc confirms the submitter and goes to the stream's coordinators", func(t *testing.T) {
		svc, store, publisher := newTestNotificationService()

		svc.NotifySubmitted(context.Background(), pendingRequest(models.StatusPendingPC))

		if len(store.created) != 2 {
			t.Fatalf("created = %d notifications, want submitter confirmation + coordinator", len(store.created))
		}
		if store.created[0].UserID != "u-student" {
			t.Errorf("confirmation recipient = %q, want u-student", store.created[0].UserID)
		}
		if store.created[1].UserID != "pc-cse" {
			t.Errorf("reviewer recipient = %q, want pc-cse", store.created[1].UserID)
		}
		if store.created[1].Link == nil || *store.created[1].Link != "/leave-requests/req-1" {
			t.Errorf("link = %v, want /leave-requests/req-1", store.created[1].Link)
		}
		if len(publisher.published) != 2 {
			t.Errorf("published = %d events, want 2", len(publisher.published))
		}
	})

	t.Run("pending_admin goes to admins", func(t *testing.T) {
		svc, store, _ := newTestNotificationService()

		svc.NotifySubmitted(context.Background(), pendingRequest(models.StatusPendingAdmin))

		if len(store.created) != 3 {
			t.Fatalf("created = %d notifications, want submitter confirmation + 2 admins", len(store.created))
		}
		for _, n := range store.created[1:] {
			if n.UserID != "admin-1" && n.UserID != "admin-2" {
				t.Errorf("unexpected recipient %q", n.UserID)
			}
			if n.IsRead {
				t.Error("new notification created already read")
			}
		}
	})
}

func TestNotifyDecided_Routing(t *testing.T) {
	t.Parallel()

	t.Run("pc approval alerts submitter and admins", func(t *testing.T) {
		svc, store, _ := newTestNotificationService()
		req := pendingRequest(models.StatusPendingAdmin)
		pc := workflow.Actor{ID: "pc-cse", Role: models.RolePC, Stream: models.StreamCSE}

		svc.NotifyDecided(context.Background(), req, workflow.ActionApprove, pc)

		recipients := map[string]bool{}
		for _, n := range store.created {
			recipients[n.UserID] = true
		}
		for _, want := range []string{"u-student", "admin-1", "admin-2"} {
			if !recipients[want] {
				t.Errorf("missing notification for %s", want)
			}
		}
	})

	t.Run("admin decline alerts submitter only", func(t *testing.T) {
		svc, store, _ := newTestNotificationService()
		req := pendingRequest(models.StatusDeclined)
		admin := workflow.Actor{ID: "admin-1", Role: models.RoleAdmin}

		svc.NotifyDecided(context.Background(), req, workflow.ActionDecline, admin)

		if len(store.created) != 1 {
			t.Fatalf("created = %d notifications, want 1", len(store.created))
		}
		if store.created[0].UserID != "u-student" {
			t.Errorf("recipient = %q, want u-student", store.created[0].UserID)
		}
	})
}

func TestListAndMarkAllRead(t *testing.T) {
	t.Parallel()
	svc, store, _ := newTestNotificationService()

	svc.NotifySubmitted(context.Background(), pendingRequest(models.StatusPendingPC))

	feed, err := svc.List(context.Background(), "pc-cse")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if feed.UnreadCount != 1 {
		t.Errorf("unreadCount = %d, want 1", feed.UnreadCount)
	}

	if err := svc.MarkAllRead(context.Background(), "pc-cse"); err != nil {
		t.Fatalf("MarkAllRead returned error: %v", err)
	}
	if !store.read["pc-cse"] {
		t.Error("MarkAllRead did not reach the store")
	}

	feed, err = svc.List(context.Background(), "pc-cse")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if feed.UnreadCount != 0 {
		t.Errorf("unreadCount after MarkAllRead = %d, want 0", feed.UnreadCount)
	}
}
