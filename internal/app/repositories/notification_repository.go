package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/pkg/dberrors"
	"github.com/SaSee1722/leavex/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a single notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			// Recipient profile disappeared; nothing to deliver to
			logger.Warn().Str("userID", n.UserID).Msg("Dropping notification for missing recipient")
			return nil
		}
		logger.Error().Err(err).Str("userID", n.UserID).Msg("Error creating notification")
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// CreateBatch inserts notifications for a fan-out in one round trip
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(`
			INSERT INTO notifications (id, user_id, title, message, link, is_read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			n.ID, n.UserID, n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				continue
			}
			logger.Error().Err(err).Msg("Error inserting notification batch entry")
			return fmt.Errorf("error creating notifications: %w", err)
		}
	}

	return nil
}

// ListByUser returns the recipient's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkAllRead marks every unread notification of the recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`,
		userID)

	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
