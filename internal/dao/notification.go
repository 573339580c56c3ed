package dao

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

const notificationsQuery = `query notifications($username: String!) {
  notifications(username: $username) { title message time }
}`

// NotificationService lists the audit notifications of a user.
type NotificationService struct {
	gql      *GraphQLClient
	username string
}

// NewNotificationService returns a notification service for username.
func NewNotificationService(gql *GraphQLClient, username string) *NotificationService {
	return &NotificationService{gql: gql, username: username}
}

// List returns every notification addressed to the user.
func (s *NotificationService) List(ctx context.Context) ([]Notification, error) {
	data, err := s.gql.Do(ctx, notificationsQuery, map[string]any{"username": s.username})
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", s.username, err)
	}

	nn, err := decodeAll(data.Get("notifications"), notificationFromJSON)
	if err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}

	return nn, nil
}

func notificationFromJSON(r gjson.Result) Notification {
	return Notification{
		Title:   r.Get("title").String(),
		Message: r.Get("message").String(),
		Time:    parseTime(r.Get("time")),
	}
}
