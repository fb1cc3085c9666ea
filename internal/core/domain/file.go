package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FileStatus indicates where a workflow file sits in the approval pipeline.
type FileStatus string

const (
	StatusDraft        FileStatus = "DRAFT"
	StatusSubmitted    FileStatus = "SUBMITTED"
	StatusVerification FileStatus = "VERIFICATION"
	StatusOnboarding   FileStatus = "ONBOARDING"
	StatusPayment      FileStatus = "PAYMENT"
	StatusCompleted    FileStatus = "COMPLETED"
	StatusRejected     FileStatus = "REJECTED"
)

// IsTerminal reports whether the status permits no further transitions.
func (s FileStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// StageOutcome is the resolution state of a single stage record.
type StageOutcome string

const (
	StagePending  StageOutcome = "PENDING"
	StageApproved StageOutcome = "APPROVED"
	StageRejected StageOutcome = "REJECTED"
)

// StageRecord tracks the resolution of one approval stage.
type StageRecord struct {
	Status     StageOutcome `json:"status"`
	Comments   string       `json:"comments"`
	ResolvedBy string       `json:"resolvedBy"` // Actor name, empty while pending
	ResolvedAt *time.Time   `json:"resolvedAt"`
}

// Document is an attached document reference. Documents are append-only and
// never mutated after creation.
type Document struct {
	DocumentID string    `json:"documentID"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// WorkflowFile is the unit of work: a deal/order moving through the fixed
// verification -> onboarding -> payment approval pipeline.
type WorkflowFile struct {
	FileID       string          `json:"fileID"` // Primary Key (UUID)
	CustomerName string          `json:"customerName"`
	DealOrderID  string          `json:"dealOrderID"`
	Amount       decimal.Decimal `json:"amount"` // Non-negative

	SubmissionDate time.Time `json:"submissionDate"`

	CurrentStatus FileStatus `json:"currentStatus"`
	CurrentRole   UserRole   `json:"currentRole"` // Meaningful only while a stage is pending

	Verification StageRecord `json:"verification"`
	Onboarding   StageRecord `json:"onboarding"`
	Payment      StageRecord `json:"payment"`

	EscalationLevel EscalationLevel `json:"escalationLevel"`
	EscalationDate  *time.Time      `json:"escalationDate"`

	Documents []Document    `json:"documents"`
	History   []ActivityLog `json:"history"`

	AuditFields
}

// StageRecordFor returns a pointer to the stage record owned by the given
// pending status, or nil when the status has no stage record.
func (f *WorkflowFile) StageRecordFor(status FileStatus) *StageRecord {
	switch status {
	case StatusVerification:
		return &f.Verification
	case StatusOnboarding:
		return &f.Onboarding
	case StatusPayment:
		return &f.Payment
	}
	return nil
}

// RequiredRole returns the only role permitted to approve or reject the file in
// its current state: the escalation owner when escalated, else the stage owner.
// ok is false when the file is terminal and nobody may act.
func (f *WorkflowFile) RequiredRole() (UserRole, bool) {
	if f.CurrentStatus.IsTerminal() {
		return "", false
	}
	if f.EscalationLevel != EscalationNone {
		if role, ok := AuthorizedRoleForLevel(f.EscalationLevel); ok {
			return role, true
		}
	}
	return f.CurrentRole, true
}

// CanAct reports whether the given role may approve or reject the file right
// now. It mirrors the engine's authorization predicate without mutating.
func (f *WorkflowFile) CanAct(role UserRole) bool {
	required, ok := f.RequiredRole()
	return ok && required == role
}
