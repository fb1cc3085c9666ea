package domain

import "time"

// Activity action labels recorded in file history.
const (
	ActionFileCreated      = "File Created"
	ActionFileApproved     = "File Approved"
	ActionFileRejected     = "File Rejected"
	ActionFileEscalated    = "File Escalated"
	ActionDocumentAttached = "Document Attached"
)

// ActivityLog is a single append-only audit entry on a file's history.
type ActivityLog struct {
	ActivityID  string    `json:"activityID"`
	FileID      string    `json:"fileID"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	UserRole    UserRole  `json:"userRole"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details"`
}
