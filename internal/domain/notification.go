package domain

import "time"

type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyInfo    NotifyLevel = "info"
	NotifyWarning NotifyLevel = "warning"
	NotifyError   NotifyLevel = "error"
)

// Notification is a transient lifecycle event surfaced to the user. It
// expires on its own timer and never feeds back into engine state.
type Notification struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Level     NotifyLevel `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}
