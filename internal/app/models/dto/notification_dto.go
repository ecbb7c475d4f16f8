package dto

import (
	"time"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// NotificationResponse represents a notification as returned by the API
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse represents the caller's notification feed
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// FromNotification converts a notification model to its API representation
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// MapNotifications converts a slice of models, counting unread along the way
func MapNotifications(items []*models.Notification) NotificationListResponse {
	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(items)),
	}
	for _, n := range items {
		if !n.IsRead {
			resp.UnreadCount++
		}
		resp.Notifications = append(resp.Notifications, FromNotification(n))
	}
	return resp
}
