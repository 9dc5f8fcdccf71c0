package domain

import "time"

// NotificationType distinguishes confirmations from failures.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is a transient message shown to the user until it expires.
type Notification struct {
	ID        string
	Message   string
	Type      NotificationType
	Timestamp time.Time
}
