package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	"github.com/dealdesk/deal_workflow_app/internal/repositories/memory"
)

func newTestFile() domain.WorkflowFile {
	now := time.Now().UTC()
	fileID := uuid.NewString()
	return domain.WorkflowFile{
		FileID:          fileID,
		CustomerName:    "Acme Corp",
		DealOrderID:     "DO-1001",
		Amount:          decimal.NewFromInt(50000),
		SubmissionDate:  now,
		CurrentStatus:   domain.StatusVerification,
		CurrentRole:     domain.RoleChecker,
		Verification:    domain.StageRecord{Status: domain.StagePending},
		Onboarding:      domain.StageRecord{Status: domain.StagePending},
		Payment:         domain.StageRecord{Status: domain.StagePending},
		EscalationLevel: domain.EscalationNone,
		History: []domain.ActivityLog{{
			ActivityID:  uuid.NewString(),
			FileID:      fileID,
			Action:      domain.ActionFileCreated,
			PerformedBy: "Sam Sales",
			UserRole:    domain.RoleSales,
			Timestamp:   now,
		}},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

func TestSaveNewFile_Duplicate(t *testing.T) {
	repo := memory.NewFileRepository()
	ctx := context.Background()
	file := newTestFile()

	require.NoError(t, repo.SaveNewFile(ctx, file))
	assert.ErrorIs(t, repo.SaveNewFile(ctx, file), apperrors.ErrDuplicate)
}

func TestFindFileByID_ReturnsSnapshot(t *testing.T) {
	repo := memory.NewFileRepository()
	ctx := context.Background()
	file := newTestFile()
	require.NoError(t, repo.SaveNewFile(ctx, file))

	first, err := repo.FindFileByID(ctx, file.FileID)
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	first.CurrentStatus = domain.StatusRejected
	first.History = append(first.History, domain.ActivityLog{ActivityID: uuid.NewString()})
	first.Verification.Status = domain.StageRejected

	second, err := repo.FindFileByID(ctx, file.FileID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerification, second.CurrentStatus)
	assert.Equal(t, domain.StagePending, second.Verification.Status)
	assert.Len(t, second.History, 1)
}

func TestUpdateFileState_NotFound(t *testing.T) {
	repo := memory.NewFileRepository()
	file := newTestFile()

	err := repo.UpdateFileState(context.Background(), file, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindActiveFiles_ExcludesTerminal(t *testing.T) {
	repo := memory.NewFileRepository()
	ctx := context.Background()

	active := newTestFile()
	require.NoError(t, repo.SaveNewFile(ctx, active))

	done := newTestFile()
	done.CurrentStatus = domain.StatusCompleted
	require.NoError(t, repo.SaveNewFile(ctx, done))

	rejected := newTestFile()
	rejected.CurrentStatus = domain.StatusRejected
	require.NoError(t, repo.SaveNewFile(ctx, rejected))

	files, err := repo.FindActiveFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, active.FileID, files[0].FileID)
}

func TestFindFiles_SortedNewestFirst(t *testing.T) {
	repo := memory.NewFileRepository()
	ctx := context.Background()

	older := newTestFile()
	older.SubmissionDate = time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.SaveNewFile(ctx, older))

	newer := newTestFile()
	require.NoError(t, repo.SaveNewFile(ctx, newer))

	files, err := repo.FindFilesByCurrentRole(ctx, domain.RoleChecker)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, newer.FileID, files[0].FileID)
	assert.Equal(t, older.FileID, files[1].FileID)
}

func TestAppendDocument(t *testing.T) {
	repo := memory.NewFileRepository()
	ctx := context.Background()
	file := newTestFile()
	require.NoError(t, repo.SaveNewFile(ctx, file))

	doc := domain.Document{
		DocumentID: uuid.NewString(),
		Name:       "signed.pdf",
		UploadedAt: time.Now().UTC(),
	}
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		FileID:     file.FileID,
		Action:     domain.ActionDocumentAttached,
		Timestamp:  doc.UploadedAt,
	}
	require.NoError(t, repo.AppendDocument(ctx, file.FileID, doc, entry))

	stored, err := repo.FindFileByID(ctx, file.FileID)
	require.NoError(t, err)
	require.Len(t, stored.Documents, 1)
	assert.Equal(t, "signed.pdf", stored.Documents[0].Name)
	assert.Len(t, stored.History, 2)

	err = repo.AppendDocument(ctx, uuid.NewString(), doc, entry)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
