package dto

import (
	"time"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest is a document reference attached at creation or later.
type CreateDocumentRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url"`
}

// CreateFileRequest defines the payload for creating a workflow file.
type CreateFileRequest struct {
	CustomerName string                  `json:"customerName" binding:"required"`
	DealOrderID  string                  `json:"dealOrderID" binding:"required"`
	Amount       decimal.Decimal         `json:"amount" binding:"required"`
	Documents    []CreateDocumentRequest `json:"documents"`
}

// DecisionRequest carries the free-text comment for an approve or reject call.
// The acting role comes from the authenticated caller, never from the body.
type DecisionRequest struct {
	Comments string `json:"comments" binding:"required"`
}

// StageRecordResponse mirrors a domain.StageRecord.
type StageRecordResponse struct {
	Status     string     `json:"status"`
	Comments   string     `json:"comments"`
	ResolvedBy string     `json:"resolvedBy"`
	ResolvedAt *time.Time `json:"resolvedAt"`
}

// DocumentResponse mirrors a domain.Document.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ActivityLogResponse mirrors a domain.ActivityLog.
type ActivityLogResponse struct {
	ActivityID  string    `json:"activityID"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	UserRole    string    `json:"userRole"`
	Timestamp   time.Time `json:"timestamp"`
	Details     string    `json:"details"`
}

// FileResponse defines the data returned for a workflow file.
type FileResponse struct {
	FileID          string                `json:"fileID"`
	CustomerName    string                `json:"customerName"`
	DealOrderID     string                `json:"dealOrderID"`
	Amount          decimal.Decimal       `json:"amount"`
	SubmissionDate  time.Time             `json:"submissionDate"`
	CurrentStatus   string                `json:"currentStatus"`
	CurrentRole     string                `json:"currentRole"`
	EscalationLevel string                `json:"escalationLevel"`
	EscalationDate  *time.Time            `json:"escalationDate"`
	Verification    StageRecordResponse   `json:"verification"`
	Onboarding      StageRecordResponse   `json:"onboarding"`
	Payment         StageRecordResponse   `json:"payment"`
	Documents       []DocumentResponse    `json:"documents"`
	History         []ActivityLogResponse `json:"history"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	CanAct          bool                  `json:"canAct"`
}

// ListFilesResponse wraps the files visible to the caller's role. NextToken is
// set when more files remain beyond the requested page.
type ListFilesResponse struct {
	Files     []FileResponse `json:"files"`
	NextToken string         `json:"nextToken,omitempty"`
}

// FileSummaryResponse aggregates per-status counts for dashboards.
type FileSummaryResponse struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	Escalated int            `json:"escalated"`
}

func toStageRecordResponse(r domain.StageRecord) StageRecordResponse {
	return StageRecordResponse{
		Status:     string(r.Status),
		Comments:   r.Comments,
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: r.ResolvedAt,
	}
}

// ToFileResponse converts a domain.WorkflowFile to FileResponse. The viewing
// role determines the CanAct affordance.
func ToFileResponse(f *domain.WorkflowFile, viewerRole domain.UserRole) FileResponse {
	docs := make([]DocumentResponse, len(f.Documents))
	for i, d := range f.Documents {
		docs[i] = DocumentResponse{
			DocumentID: d.DocumentID,
			Name:       d.Name,
			URL:        d.URL,
			UploadedAt: d.UploadedAt,
		}
	}

	history := make([]ActivityLogResponse, len(f.History))
	for i, h := range f.History {
		history[i] = ActivityLogResponse{
			ActivityID:  h.ActivityID,
			Action:      h.Action,
			PerformedBy: h.PerformedBy,
			UserRole:    string(h.UserRole),
			Timestamp:   h.Timestamp,
			Details:     h.Details,
		}
	}

	return FileResponse{
		FileID:          f.FileID,
		CustomerName:    f.CustomerName,
		DealOrderID:     f.DealOrderID,
		Amount:          f.Amount,
		SubmissionDate:  f.SubmissionDate,
		CurrentStatus:   string(f.CurrentStatus),
		CurrentRole:     string(f.CurrentRole),
		EscalationLevel: string(f.EscalationLevel),
		EscalationDate:  f.EscalationDate,
		Verification:    toStageRecordResponse(f.Verification),
		Onboarding:      toStageRecordResponse(f.Onboarding),
		Payment:         toStageRecordResponse(f.Payment),
		Documents:       docs,
		History:         history,
		CreatedBy:       f.CreatedBy,
		LastUpdatedAt:   f.LastUpdatedAt,
		CanAct:          f.CanAct(viewerRole),
	}
}

// ToListFilesResponse converts a slice of domain files to ListFilesResponse.
func ToListFilesResponse(files []domain.WorkflowFile, viewerRole domain.UserRole) ListFilesResponse {
	responses := make([]FileResponse, len(files))
	for i := range files {
		responses[i] = ToFileResponse(&files[i], viewerRole)
	}
	return ListFilesResponse{Files: responses}
}
