package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkflowFile is the database row for a workflow file. Stage records are
// flattened into columns so a single row update carries the whole workflow
// state of a file.
type WorkflowFile struct {
	FileID         string          `db:"file_id"`
	CustomerName   string          `db:"customer_name"`
	DealOrderID    string          `db:"deal_order_id"`
	Amount         decimal.Decimal `db:"amount"`
	SubmissionDate time.Time       `db:"submission_date"`

	// The column is assigned_role because current_role is a reserved word in
	// PostgreSQL and cannot be used as an unquoted identifier.
	CurrentStatus string `db:"current_status"`
	AssignedRole  string `db:"assigned_role"`

	VerificationStatus     string     `db:"verification_status"`
	VerificationComments   string     `db:"verification_comments"`
	VerificationResolvedBy string     `db:"verification_resolved_by"`
	VerificationResolvedAt *time.Time `db:"verification_resolved_at"`

	OnboardingStatus     string     `db:"onboarding_status"`
	OnboardingComments   string     `db:"onboarding_comments"`
	OnboardingResolvedBy string     `db:"onboarding_resolved_by"`
	OnboardingResolvedAt *time.Time `db:"onboarding_resolved_at"`

	PaymentStatus     string     `db:"payment_status"`
	PaymentComments   string     `db:"payment_comments"`
	PaymentResolvedBy string     `db:"payment_resolved_by"`
	PaymentResolvedAt *time.Time `db:"payment_resolved_at"`

	EscalationLevel string     `db:"escalation_level"`
	EscalationDate  *time.Time `db:"escalation_date"`

	AuditFields
}

// FileDocument is the database row for an attached document reference.
type FileDocument struct {
	DocumentID string    `db:"document_id"`
	FileID     string    `db:"file_id"`
	Name       string    `db:"name"`
	URL        string    `db:"url"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// ActivityLog is the database row for a history entry.
type ActivityLog struct {
	ActivityID  string    `db:"activity_id"`
	FileID      string    `db:"file_id"`
	Action      string    `db:"action"`
	PerformedBy string    `db:"performed_by"`
	UserRole    string    `db:"user_role"`
	Timestamp   time.Time `db:"timestamp"`
	Details     string    `db:"details"`
}
