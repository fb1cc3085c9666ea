package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
)

// FileRepository is a volatile in-memory store of workflow files. It is the
// system of record when no database is configured, and the default fixture
// store in tests. Reads return deep copies so callers hold snapshots that
// never observe later mutations.
type FileRepository struct {
	mu    sync.RWMutex
	files map[string]*domain.WorkflowFile
}

// NewFileRepository creates an empty in-memory file repository.
func NewFileRepository() *FileRepository {
	return &FileRepository{files: make(map[string]*domain.WorkflowFile)}
}

// Ensure FileRepository implements portsrepo.FileRepositoryFacade
var _ portsrepo.FileRepositoryFacade = (*FileRepository)(nil)

func copyFile(f *domain.WorkflowFile) *domain.WorkflowFile {
	clone := *f

	clone.Documents = make([]domain.Document, len(f.Documents))
	copy(clone.Documents, f.Documents)

	clone.History = make([]domain.ActivityLog, len(f.History))
	copy(clone.History, f.History)

	if f.EscalationDate != nil {
		d := *f.EscalationDate
		clone.EscalationDate = &d
	}
	for _, pair := range []struct {
		src *domain.StageRecord
		dst *domain.StageRecord
	}{
		{&f.Verification, &clone.Verification},
		{&f.Onboarding, &clone.Onboarding},
		{&f.Payment, &clone.Payment},
	} {
		if pair.src.ResolvedAt != nil {
			t := *pair.src.ResolvedAt
			pair.dst.ResolvedAt = &t
		}
	}

	return &clone
}

func (r *FileRepository) SaveNewFile(_ context.Context, file domain.WorkflowFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[file.FileID]; exists {
		return apperrors.ErrDuplicate
	}
	r.files[file.FileID] = copyFile(&file)
	return nil
}

func (r *FileRepository) UpdateFileState(_ context.Context, file domain.WorkflowFile, _ []domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[file.FileID]; !exists {
		return apperrors.ErrNotFound
	}
	// The whole file replaces the stored one in one step, so status, stage
	// records and history land together, matching the transactional contract.
	r.files[file.FileID] = copyFile(&file)
	return nil
}

func (r *FileRepository) AppendDocument(_ context.Context, fileID string, doc domain.Document, entry domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.files[fileID]
	if !exists {
		return apperrors.ErrNotFound
	}
	stored.Documents = append(stored.Documents, doc)
	stored.History = append(stored.History, entry)
	stored.LastUpdatedAt = doc.UploadedAt
	return nil
}

func (r *FileRepository) FindFileByID(_ context.Context, fileID string) (*domain.WorkflowFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.files[fileID]
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return copyFile(stored), nil
}

func (r *FileRepository) findWhere(match func(*domain.WorkflowFile) bool) []domain.WorkflowFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := []domain.WorkflowFile{}
	for _, f := range r.files {
		if match(f) {
			files = append(files, *copyFile(f))
		}
	}
	// Newest submission first, matching the SQL repositories.
	sort.Slice(files, func(i, j int) bool {
		if !files[i].SubmissionDate.Equal(files[j].SubmissionDate) {
			return files[i].SubmissionDate.After(files[j].SubmissionDate)
		}
		return files[i].FileID < files[j].FileID
	})
	return files
}

func (r *FileRepository) FindFilesByCurrentRole(_ context.Context, role domain.UserRole) ([]domain.WorkflowFile, error) {
	return r.findWhere(func(f *domain.WorkflowFile) bool {
		return f.CurrentRole == role
	}), nil
}

func (r *FileRepository) FindFilesByEscalationLevel(_ context.Context, level domain.EscalationLevel) ([]domain.WorkflowFile, error) {
	return r.findWhere(func(f *domain.WorkflowFile) bool {
		return f.EscalationLevel == level
	}), nil
}

func (r *FileRepository) FindActiveFiles(_ context.Context) ([]domain.WorkflowFile, error) {
	return r.findWhere(func(f *domain.WorkflowFile) bool {
		return f.CurrentStatus != domain.StatusDraft && !f.CurrentStatus.IsTerminal()
	}), nil
}

func (r *FileRepository) FindAllFiles(_ context.Context) ([]domain.WorkflowFile, error) {
	return r.findWhere(func(*domain.WorkflowFile) bool { return true }), nil
}
