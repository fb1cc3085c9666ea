package domain

// NotificationKind classifies a user-facing notification event.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "INFO"
	NotifySuccess NotificationKind = "SUCCESS"
	NotifyWarning NotificationKind = "WARNING"
	NotifyError   NotificationKind = "ERROR"
)

// Notification is a fire-and-forget event describing the outcome of an engine
// operation. The sink may drop it without affecting correctness.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}
