package blogsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// ListNotifications returns the user's notifications, newest first.
func (c *SDKClient) ListNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.call(ctx, http.MethodGet, "/api/v1/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount returns how many notifications are unread.
func (c *SDKClient) UnreadCount(ctx context.Context) (int64, error) {
	var n int64
	if err := c.call(ctx, http.MethodGet, "/api/v1/notifications/unread-count", nil, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// MarkNotificationRead marks one notification as read.
func (c *SDKClient) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/notifications/%d/read", id), nil, nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *SDKClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.call(ctx, http.MethodPatch, "/api/v1/notifications/read-all", nil, nil, nil)
}

// ============================================================================
// Inbox
// ============================================================================

// Inbox caches the notification list and unread badge count, keeping the
// count in step with local read marks so the badge doesn't need a refetch.
type Inbox struct {
	client *SDKClient

	mu     sync.Mutex
	items  []Notification
	unread int64
}

// NewInbox returns an empty inbox backed by c.
func NewInbox(c *SDKClient) *Inbox {
	return &Inbox{client: c}
}

// Refresh reloads both the list and the unread count.
func (b *Inbox) Refresh(ctx context.Context) error {
	items, err := b.client.ListNotifications(ctx)
	if err != nil {
		return err
	}
	unread, err := b.client.UnreadCount(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.items = items
	b.unread = unread
	b.mu.Unlock()
	return nil
}

// Items returns a copy of the cached notifications.
func (b *Inbox) Items() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notification(nil), b.items...)
}

// Unread returns the cached unread count.
func (b *Inbox) Unread() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unread
}

// MarkRead marks id as read on the server and locally. The unread count
// never goes below zero.
func (b *Inbox) MarkRead(ctx context.Context, id int64) error {
	if err := b.client.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id && !b.items[i].IsRead {
			b.items[i].IsRead = true
			b.unread = max(0, b.unread-1)
			break
		}
	}
	return nil
}

// MarkAllRead marks everything read on the server and locally.
func (b *Inbox) MarkAllRead(ctx context.Context) error {
	if err := b.client.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		b.items[i].IsRead = true
	}
	b.unread = 0
	return nil
}
