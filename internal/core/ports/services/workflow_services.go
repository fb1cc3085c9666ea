package services

import (
	"context"
	"time"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
)

// Actor identifies who is invoking an engine operation. The role is trusted
// input supplied by the authentication layer.
type Actor struct {
	UserID string
	Name   string
	Role   domain.UserRole
}

// WorkflowReaderSvc defines the query/projection operations of the engine.
type WorkflowReaderSvc interface {
	// GetFileByID retrieves a file by id.
	GetFileByID(ctx context.Context, fileID string) (*domain.WorkflowFile, error)

	// ListFilesForRole returns the files visible to the given role: escalation
	// chain roles see files escalated to exactly their level, stage roles see
	// files currently assigned to them.
	ListFilesForRole(ctx context.Context, role domain.UserRole) ([]domain.WorkflowFile, error)

	// Summary aggregates per-status counts across all files.
	Summary(ctx context.Context) (dto.FileSummaryResponse, error)
}

// WorkflowWriterSvc defines the mutating operations of the engine.
type WorkflowWriterSvc interface {
	// CreateFile creates a file in the pipeline and hands it to the checker.
	CreateFile(ctx context.Context, req dto.CreateFileRequest, actor Actor) (*domain.WorkflowFile, error)

	// ApproveFile advances the current stage, or resolves an escalation when the
	// file is escalated and the actor owns the escalation level.
	ApproveFile(ctx context.Context, fileID string, comments string, actor Actor) (*domain.WorkflowFile, error)

	// RejectFile terminates the file in REJECTED.
	RejectFile(ctx context.Context, fileID string, comments string, actor Actor) (*domain.WorkflowFile, error)

	// AttachDocument appends a document reference to the file.
	AttachDocument(ctx context.Context, fileID string, req dto.CreateDocumentRequest, actor Actor) (*domain.WorkflowFile, error)
}

// WorkflowEscalationSvc defines the time-based escalation sweep.
type WorkflowEscalationSvc interface {
	// RecomputeEscalations re-derives the escalation level of every non-terminal
	// file from its age at the given instant. Idempotent: a sweep that changes
	// no level writes nothing. Returns the number of files escalated.
	RecomputeEscalations(ctx context.Context, now time.Time) (int, error)
}

// WorkflowSvcFacade combines all workflow engine interfaces.
type WorkflowSvcFacade interface {
	WorkflowReaderSvc
	WorkflowWriterSvc
	WorkflowEscalationSvc
}
