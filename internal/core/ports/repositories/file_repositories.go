package repositories

import (
	"context"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
)

// FileReader defines read operations for workflow files. Implementations must
// return snapshots the caller can hold without observing later mutations.
type FileReader interface {
	// FindFileByID retrieves a file with its stage records, documents and full
	// history. Returns apperrors.ErrNotFound when the id is unknown.
	FindFileByID(ctx context.Context, fileID string) (*domain.WorkflowFile, error)

	// FindFilesByCurrentRole retrieves files whose CurrentRole matches.
	FindFilesByCurrentRole(ctx context.Context, role domain.UserRole) ([]domain.WorkflowFile, error)

	// FindFilesByEscalationLevel retrieves files escalated to exactly the given level.
	FindFilesByEscalationLevel(ctx context.Context, level domain.EscalationLevel) ([]domain.WorkflowFile, error)

	// FindActiveFiles retrieves every file whose status is neither DRAFT nor terminal,
	// i.e. the candidate set for an escalation sweep.
	FindActiveFiles(ctx context.Context) ([]domain.WorkflowFile, error)

	// FindAllFiles retrieves every file, newest submission first.
	FindAllFiles(ctx context.Context) ([]domain.WorkflowFile, error)
}

// FileWriter defines write operations for workflow files.
type FileWriter interface {
	// SaveNewFile persists a freshly created file including its initial history
	// entry. The whole write commits atomically.
	SaveNewFile(ctx context.Context, file domain.WorkflowFile) error

	// UpdateFileState persists the file's workflow fields, stage records and the
	// given newly appended history entries in a single atomic write. A partial
	// update (status advanced but history not appended) must be impossible.
	UpdateFileState(ctx context.Context, file domain.WorkflowFile, newEntries []domain.ActivityLog) error

	// AppendDocument appends a document reference to the file together with the
	// history entry recording the attachment.
	AppendDocument(ctx context.Context, fileID string, doc domain.Document, entry domain.ActivityLog) error
}

// FileRepositoryFacade combines all file-related repository interfaces.
type FileRepositoryFacade interface {
	FileReader
	FileWriter
}
