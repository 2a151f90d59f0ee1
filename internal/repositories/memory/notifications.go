package memory

import (
	"context"
	"time"

	"github.com/SAP-F-2025/gym-service/internal/models"
)

type notificationStore struct{ r *Repository }

func (s notificationStore) Create(_ context.Context, notification *models.Notification) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = newID()
	}
	if _, ok := s.r.notifications[notification.ID]; ok {
		return duplicate("create notification")
	}
	s.r.notifications[notification.ID] = *notification
	return nil
}

func (s notificationStore) ListForRecipient(_ context.Context, userID, email string) ([]*models.Notification, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	recipient := models.Principal{ID: userID, Email: email}
	out := make([]*models.Notification, 0)
	for _, notification := range s.r.notifications {
		if notification.IsAddressedTo(recipient) {
			n := notification
			out = append(out, &n)
		}
	}
	byNewest(out, func(n *models.Notification) time.Time { return n.CreatedAt }, func(n *models.Notification) string { return n.ID })
	return out, nil
}

func (s notificationStore) MarkRead(_ context.Context, id string, recipient models.Principal, at time.Time) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	notification, ok := s.r.notifications[id]
	if !ok || !notification.IsAddressedTo(recipient) {
		return notFound("mark notification read")
	}
	if notification.Read {
		return nil
	}
	notification.Read = true
	notification.ReadAt = &at
	s.r.notifications[id] = notification
	return nil
}

type resetTokenStore struct{ r *Repository }

func (s resetTokenStore) Create(_ context.Context, token *models.PasswordResetToken) error {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	for _, existing := range s.r.resetTokens {
		if existing.Token == token.Token {
			return duplicate("create reset token")
		}
	}
	if token.ID == "" {
		token.ID = newID()
	}
	s.r.resetTokens[token.ID] = *token
	return nil
}

func (s resetTokenStore) FindUsable(_ context.Context, token string, notBefore time.Time) (*models.PasswordResetToken, error) {
	s.r.mu.RLock()
	defer s.r.mu.RUnlock()

	for _, existing := range s.r.resetTokens {
		if existing.Token == token && existing.IsUsable(notBefore) {
			t := existing
			return &t, nil
		}
	}
	return nil, notFound("find reset token")
}

func (s resetTokenStore) Consume(_ context.Context, id string, at time.Time) (bool, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()

	token, ok := s.r.resetTokens[id]
	if !ok || token.ResetAt != nil {
		return false, nil
	}
	token.ResetAt = &at
	s.r.resetTokens[id] = token
	return true, nil
}
