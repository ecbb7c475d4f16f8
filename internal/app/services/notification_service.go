package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/models/dto"
	"github.com/SaSee1722/leavex/internal/app/workflow"
)

// NotificationStore persists notification records
type NotificationStore interface {
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// RecipientDirectory resolves who should be told about workflow events
type RecipientDirectory interface {
	ListIDsByRole(ctx context.Context, role models.Role) ([]string, error)
	ListPCIDsByStream(ctx context.Context, stream models.Stream) ([]string, error)
}

// EventPublisher pushes a freshly created notification to connected clients
type EventPublisher interface {
	Publish(n *models.Notification)
}

// PushSender forwards a notification record to the push relay
type PushSender interface {
	Enabled() bool
	Send(ctx context.Context, n *models.Notification) error
}

// NotificationService persists notifications and fans them out. Record
// creation is the source of truth; the realtime stream and the push relay
// are best-effort side channels.
type NotificationService struct {
	store     NotificationStore
	directory RecipientDirectory
	publisher EventPublisher
	push      PushSender
	logger    zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	store NotificationStore,
	directory RecipientDirectory,
	publisher EventPublisher,
	push PushSender,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		store:     store,
		directory: directory,
		publisher: publisher,
		push:      push,
		logger:    logger,
	}
}

// List returns the caller's notification feed, newest first
func (s *NotificationService) List(ctx context.Context, userID string) (dto.NotificationListResponse, error) {
	items, err := s.store.ListByUser(ctx, userID, 20)
	if err != nil {
		return dto.NotificationListResponse{}, err
	}
	return dto.MapNotifications(items), nil
}

// MarkAllRead marks every unread notification of the caller as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	count, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Debug().Str("userID", userID).Int64("count", count).Msg("Marked notifications read")
	return nil
}

// NotifySubmitted confirms the submission to its owner and tells the next
// reviewers in the chain about it. A request entering PC review goes to the
// stream's coordinators; one that entered admin review directly goes to the
// admins.
func (s *NotificationService) NotifySubmitted(ctx context.Context, req *models.LeaveRequest) {
	s.dispatch(ctx, []string{req.RequestedBy}, "Leave request submitted",
		fmt.Sprintf("Your leave request from %s to %s is in review",
			req.FromDate.Format("2006-01-02"), req.ToDate.Format("2006-01-02")),
		requestLink(req.ID))

	var (
		recipients []string
		err        error
	)

	switch req.Status {
	case models.StatusPendingAdmin:
		recipients, err = s.directory.ListIDsByRole(ctx, models.RoleAdmin)
	default:
		recipients, err = s.directory.ListPCIDsByStream(ctx, req.Stream)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("requestID", req.ID).Msg("Failed to resolve notification recipients")
		return
	}

	title := "New leave request"
	message := fmt.Sprintf("%s requested leave from %s to %s",
		req.StudentName, req.FromDate.Format("2006-01-02"), req.ToDate.Format("2006-01-02"))

	s.dispatch(ctx, recipients, title, message, requestLink(req.ID))
}

// NotifyDecided tells the submitter the outcome of a review step. A PC
// approval also alerts the admins that the request now awaits them.
func (s *NotificationService) NotifyDecided(ctx context.Context, req *models.LeaveRequest, action workflow.Action, actor workflow.Actor) {
	var title, message string

	switch {
	case req.Status == models.StatusPendingAdmin:
		title = "Leave request forwarded"
		message = "Your leave request passed coordinator review and awaits admin approval"
	case req.Status == models.StatusApproved:
		title = "Leave request approved"
		message = "Your leave request has been approved"
	case actor.Role == models.RolePC:
		title = "Leave request declined"
		message = "Your leave request was declined by the program coordinator"
	default:
		title = "Leave request declined"
		message = "Your leave request was declined by the admin"
	}

	s.dispatch(ctx, []string{req.RequestedBy}, title, message, requestLink(req.ID))

	if req.Status == models.StatusPendingAdmin {
		admins, err := s.directory.ListIDsByRole(ctx, models.RoleAdmin)
		if err != nil {
			s.logger.Error().Err(err).Str("requestID", req.ID).Msg("Failed to resolve admin recipients")
			return
		}
		s.dispatch(ctx, admins, "Leave request awaiting review",
			fmt.Sprintf("%s's leave request passed coordinator review", req.StudentName), requestLink(req.ID))
	}
}

func requestLink(id string) string {
	return "/leave-requests/" + id
}

// dispatch persists one notification per recipient and pushes it out on the
// side channels. Side channel failures never propagate.
func (s *NotificationService) dispatch(ctx context.Context, userIDs []string, title, message, link string) {
	if len(userIDs) == 0 {
		return
	}

	now := time.Now()
	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		l := link
		notifications = append(notifications, &models.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			Message:   message,
			Link:      &l,
			IsRead:    false,
			CreatedAt: now,
		})
	}

	if err := s.store.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error().Err(err).Str("title", title).Msg("Failed to persist notifications")
		return
	}

	for _, n := range notifications {
		if s.publisher != nil {
			s.publisher.Publish(n)
		}
		if s.push != nil && s.push.Enabled() {
			go func(n *models.Notification) {
				sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := s.push.Send(sendCtx, n); err != nil {
					s.logger.Warn().Err(err).Str("notificationID", n.ID).Msg("Push relay delivery failed")
				}
			}(n)
		}
	}
}
