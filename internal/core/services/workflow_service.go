package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/middleware"
)

// fileLocks serializes mutating operations per file id. Cross-file operations
// proceed in parallel; two roles acting on the same file take turns.
type fileLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newFileLocks() *fileLocks {
	return &fileLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *fileLocks) lock(fileID string) func() {
	l.mu.Lock()
	m, ok := l.locks[fileID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[fileID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// release drops the entry for a file so the map does not grow with every file
// ever completed or rejected. Safe only once the file is terminal: a goroutine
// racing on a fresh mutex re-reads the file and is refused at the status
// check, so no two writers can both proceed.
func (l *fileLocks) release(fileID string) {
	l.mu.Lock()
	delete(l.locks, fileID)
	l.mu.Unlock()
}

// workflowService is the workflow engine: it owns the transition table
// lookups, authorization checks, approve/reject state transitions, activity
// logging and escalation application. It is the only component that mutates
// workflow files.
type workflowService struct {
	fileRepo portsrepo.FileRepositoryFacade
	notifier portssvc.NotificationSink
	locks    *fileLocks
}

// NewWorkflowService creates a new workflow engine service.
func NewWorkflowService(fileRepo portsrepo.FileRepositoryFacade, notifier portssvc.NotificationSink) portssvc.WorkflowSvcFacade {
	return &workflowService{
		fileRepo: fileRepo,
		notifier: notifier,
		locks:    newFileLocks(),
	}
}

// Ensure workflowService implements the facade.
var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

func (s *workflowService) notify(ctx context.Context, kind domain.NotificationKind, title, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, domain.Notification{Kind: kind, Title: title, Message: message})
}

func newActivity(fileID, action string, actor portssvc.Actor, at time.Time, details string) domain.ActivityLog {
	return domain.ActivityLog{
		ActivityID:  uuid.NewString(),
		FileID:      fileID,
		Action:      action,
		PerformedBy: actor.Name,
		UserRole:    actor.Role,
		Timestamp:   at,
		Details:     details,
	}
}

// CreateFile creates a file in SUBMITTED and immediately hands it to the
// checker for verification. Only a SALES actor may create files.
func (s *workflowService) CreateFile(ctx context.Context, req dto.CreateFileRequest, actor portssvc.Actor) (*domain.WorkflowFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleSales {
		return nil, fmt.Errorf("%w: only %s may create files", apperrors.ErrUnauthorized, domain.RoleSales)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	if req.DealOrderID == "" {
		return nil, fmt.Errorf("%w: deal/order id is required", apperrors.ErrValidation)
	}
	if req.Amount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	fileID := uuid.NewString()
	status, role := domain.InitialStatus()

	documents := make([]domain.Document, len(req.Documents))
	for i, d := range req.Documents {
		documents[i] = domain.Document{
			DocumentID: uuid.NewString(),
			Name:       d.Name,
			URL:        d.URL,
			UploadedAt: now,
		}
	}

	entry := newActivity(fileID, domain.ActionFileCreated, actor, now, "File was created and submitted")

	file := domain.WorkflowFile{
		FileID:          fileID,
		CustomerName:    req.CustomerName,
		DealOrderID:     req.DealOrderID,
		Amount:          req.Amount,
		SubmissionDate:  now,
		CurrentStatus:   status,
		CurrentRole:     role,
		Verification:    domain.StageRecord{Status: domain.StagePending},
		Onboarding:      domain.StageRecord{Status: domain.StagePending},
		Payment:         domain.StageRecord{Status: domain.StagePending},
		EscalationLevel: domain.EscalationNone,
		Documents:       documents,
		History:         []domain.ActivityLog{entry},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.fileRepo.SaveNewFile(ctx, file); err != nil {
		logger.Error("Failed to save new file", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	logger.Info("File created", slog.String("file_id", fileID), slog.String("deal_order_id", req.DealOrderID))
	s.notify(ctx, domain.NotifySuccess, "File Created", fmt.Sprintf("File %s has been created successfully", fileID))
	return &file, nil
}

// authorize checks that the actor may act on the file right now: the
// escalation owner when escalated, the stage owner otherwise. Terminal files
// admit no action at all.
func (s *workflowService) authorize(file *domain.WorkflowFile, actor portssvc.Actor) error {
	if file.CurrentStatus.IsTerminal() {
		return fmt.Errorf("%w: file is already %s", apperrors.ErrInvalidState, file.CurrentStatus)
	}
	required, ok := file.RequiredRole()
	if !ok {
		return fmt.Errorf("%w: no role may act on status %s", apperrors.ErrInvalidState, file.CurrentStatus)
	}
	if actor.Role != required {
		return fmt.Errorf("%w: %s required, got %s", apperrors.ErrUnauthorized, required, actor.Role)
	}
	return nil
}

// ApproveFile resolves the stage record selected by the file's current status
// and advances the pipeline. An escalation-path approval additionally clears
// the escalation fields and marks the stored comment for audit traceability.
func (s *workflowService) ApproveFile(ctx context.Context, fileID string, comments string, actor portssvc.Actor) (*domain.WorkflowFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.locks.lock(fileID)
	defer unlock()

	file, err := s.fileRepo.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(file, actor); err != nil {
		logger.Warn("Approve refused", slog.String("file_id", fileID), slog.String("acting_role", string(actor.Role)), slog.String("error", err.Error()))
		return nil, err
	}

	// Stage selection is state-driven: the file's current status picks the
	// record, never the acting role's identity.
	transition, ok := domain.TransitionFor(file.CurrentStatus)
	if !ok {
		return nil, fmt.Errorf("%w: status %s has no pending stage", apperrors.ErrInvalidState, file.CurrentStatus)
	}

	now := time.Now().UTC()
	wasEscalated := file.EscalationLevel != domain.EscalationNone

	storedComment := comments
	details := fmt.Sprintf("%s approved by %s", transition.StageLabel, actor.Name)
	if wasEscalated {
		storedComment = fmt.Sprintf("%s (Escalation approved by %s)", comments, actor.Role)
		details = fmt.Sprintf("Escalation approved by %s (%s)", actor.Name, actor.Role)
	}

	stage := file.StageRecordFor(file.CurrentStatus)
	stage.Status = domain.StageApproved
	stage.Comments = storedComment
	stage.ResolvedBy = actor.Name
	stage.ResolvedAt = &now

	file.CurrentStatus = transition.NextStatus
	if transition.NextRole != "" {
		file.CurrentRole = transition.NextRole
	}
	if wasEscalated {
		file.EscalationLevel = domain.EscalationNone
		file.EscalationDate = nil
	}

	entry := newActivity(fileID, domain.ActionFileApproved, actor, now, details)
	file.History = append(file.History, entry)
	file.LastUpdatedAt = now
	file.LastUpdatedBy = actor.UserID

	if err := s.fileRepo.UpdateFileState(ctx, *file, []domain.ActivityLog{entry}); err != nil {
		logger.Error("Failed to persist approval", slog.String("file_id", fileID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to approve file: %w", err)
	}

	if file.CurrentStatus.IsTerminal() {
		s.locks.release(fileID)
	}

	logger.Info("File approved",
		slog.String("file_id", fileID),
		slog.String("new_status", string(file.CurrentStatus)),
		slog.Bool("was_escalated", wasEscalated),
	)
	s.notify(ctx, domain.NotifySuccess, "File Approved", fmt.Sprintf("File has been approved and moved to %s stage", file.CurrentStatus))
	return file, nil
}

// RejectFile terminates the file. The stage record selected by the current
// status is stamped with the rejection; no stage is ever retried.
func (s *workflowService) RejectFile(ctx context.Context, fileID string, comments string, actor portssvc.Actor) (*domain.WorkflowFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.locks.lock(fileID)
	defer unlock()

	file, err := s.fileRepo.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(file, actor); err != nil {
		logger.Warn("Reject refused", slog.String("file_id", fileID), slog.String("acting_role", string(actor.Role)), slog.String("error", err.Error()))
		return nil, err
	}

	transition, ok := domain.TransitionFor(file.CurrentStatus)
	if !ok {
		return nil, fmt.Errorf("%w: status %s has no pending stage", apperrors.ErrInvalidState, file.CurrentStatus)
	}

	now := time.Now().UTC()
	wasEscalated := file.EscalationLevel != domain.EscalationNone

	details := fmt.Sprintf("%s rejected by %s", transition.StageLabel, actor.Name)
	if wasEscalated {
		details = fmt.Sprintf("Escalation rejected by %s (%s)", actor.Name, actor.Role)
	}

	stage := file.StageRecordFor(file.CurrentStatus)
	stage.Status = domain.StageRejected
	stage.Comments = comments
	stage.ResolvedBy = actor.Name
	stage.ResolvedAt = &now

	file.CurrentStatus = domain.StatusRejected
	if wasEscalated {
		file.EscalationLevel = domain.EscalationNone
		file.EscalationDate = nil
	}

	entry := newActivity(fileID, domain.ActionFileRejected, actor, now, details)
	file.History = append(file.History, entry)
	file.LastUpdatedAt = now
	file.LastUpdatedBy = actor.UserID

	if err := s.fileRepo.UpdateFileState(ctx, *file, []domain.ActivityLog{entry}); err != nil {
		logger.Error("Failed to persist rejection", slog.String("file_id", fileID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reject file: %w", err)
	}

	s.locks.release(fileID)

	logger.Info("File rejected", slog.String("file_id", fileID), slog.Bool("was_escalated", wasEscalated))
	s.notify(ctx, domain.NotifyError, "File Rejected", "File has been rejected")
	return file, nil
}

// AttachDocument appends a document reference to a non-terminal file.
func (s *workflowService) AttachDocument(ctx context.Context, fileID string, req dto.CreateDocumentRequest, actor portssvc.Actor) (*domain.WorkflowFile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: document name is required", apperrors.ErrValidation)
	}

	unlock := s.locks.lock(fileID)
	defer unlock()

	file, err := s.fileRepo.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.CurrentStatus.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot attach documents to a %s file", apperrors.ErrInvalidState, file.CurrentStatus)
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID: uuid.NewString(),
		Name:       req.Name,
		URL:        req.URL,
		UploadedAt: now,
	}
	entry := newActivity(fileID, domain.ActionDocumentAttached, actor, now, fmt.Sprintf("Document %q attached", req.Name))

	if err := s.fileRepo.AppendDocument(ctx, fileID, doc, entry); err != nil {
		logger.Error("Failed to append document", slog.String("file_id", fileID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}

	file.Documents = append(file.Documents, doc)
	file.History = append(file.History, entry)
	file.LastUpdatedAt = now
	file.LastUpdatedBy = actor.UserID

	logger.Info("Document attached", slog.String("file_id", fileID), slog.String("document_id", doc.DocumentID))
	return file, nil
}

// GetFileByID retrieves a file by id.
func (s *workflowService) GetFileByID(ctx context.Context, fileID string) (*domain.WorkflowFile, error) {
	return s.fileRepo.FindFileByID(ctx, fileID)
}

// ListFilesForRole derives the per-role visible file set. Escalation-chain
// roles see files escalated to exactly their level; a LEVEL2 file is visible
// only to the department head, never to the reporting manager.
func (s *workflowService) ListFilesForRole(ctx context.Context, role domain.UserRole) ([]domain.WorkflowFile, error) {
	if level, ok := domain.EscalationLevelForRole(role); ok {
		return s.fileRepo.FindFilesByEscalationLevel(ctx, level)
	}
	return s.fileRepo.FindFilesByCurrentRole(ctx, role)
}

// Summary aggregates per-status counts across all files.
func (s *workflowService) Summary(ctx context.Context) (dto.FileSummaryResponse, error) {
	files, err := s.fileRepo.FindAllFiles(ctx)
	if err != nil {
		return dto.FileSummaryResponse{}, err
	}

	summary := dto.FileSummaryResponse{
		Total:    len(files),
		ByStatus: make(map[string]int),
	}
	for i := range files {
		summary.ByStatus[string(files[i].CurrentStatus)]++
		if files[i].EscalationLevel != domain.EscalationNone {
			summary.Escalated++
		}
	}
	return summary, nil
}

// RecomputeEscalations applies the escalation policy to every non-terminal
// file based on its age at the given instant. Levels only ever move up while a
// file stays pending, because days-since-submission is non-decreasing. The
// sweep is idempotent: no level change means no write and no history entry.
func (s *workflowService) RecomputeEscalations(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	candidates, err := s.fileRepo.FindActiveFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load files for escalation sweep: %w", err)
	}

	escalated := 0
	for i := range candidates {
		changed, err := s.recomputeOne(ctx, candidates[i].FileID, now)
		if err != nil {
			logger.Error("Escalation recompute failed for file", slog.String("file_id", candidates[i].FileID), slog.String("error", err.Error()))
			continue
		}
		if changed {
			escalated++
		}
	}
	return escalated, nil
}

func (s *workflowService) recomputeOne(ctx context.Context, fileID string, now time.Time) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.locks.lock(fileID)
	defer unlock()

	// Re-fetch under the lock; the snapshot from the sweep query may be stale
	// if an approval landed in the meantime.
	file, err := s.fileRepo.FindFileByID(ctx, fileID)
	if err != nil {
		return false, err
	}
	if file.CurrentStatus == domain.StatusDraft || file.CurrentStatus.IsTerminal() {
		return false, nil
	}

	// Escalation measures total file age since submission, not time in the
	// current stage. Preserved as-is from the product rules.
	daysElapsed := int(now.Sub(file.SubmissionDate).Hours() / 24)
	newLevel := domain.EscalationLevelForElapsedDays(daysElapsed)
	if newLevel == domain.EscalationNone || newLevel == file.EscalationLevel {
		return false, nil
	}

	escRole, _ := domain.AuthorizedRoleForLevel(newLevel)

	file.EscalationLevel = newLevel
	file.EscalationDate = &now

	entry := domain.ActivityLog{
		ActivityID:  uuid.NewString(),
		FileID:      fileID,
		Action:      domain.ActionFileEscalated,
		PerformedBy: "System",
		UserRole:    escRole,
		Timestamp:   now,
		Details:     fmt.Sprintf("Escalated to %s after %d days, now owned by %s", newLevel, daysElapsed, escRole.DisplayName()),
	}
	file.History = append(file.History, entry)
	file.LastUpdatedAt = now
	file.LastUpdatedBy = "system"

	if err := s.fileRepo.UpdateFileState(ctx, *file, []domain.ActivityLog{entry}); err != nil {
		return false, err
	}

	logger.Info("File escalated",
		slog.String("file_id", fileID),
		slog.String("level", string(newLevel)),
		slog.Int("days_elapsed", daysElapsed),
	)
	s.notify(ctx, domain.NotifyWarning, "File Escalated", fmt.Sprintf("File %s escalated to %s (%s)", fileID, newLevel, escRole.DisplayName()))
	return true, nil
}
