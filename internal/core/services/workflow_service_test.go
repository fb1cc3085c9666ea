package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/core/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/repositories/memory"
)

// MockFileRepository is a mock type for the FileRepositoryFacade interface
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) SaveNewFile(ctx context.Context, file domain.WorkflowFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) UpdateFileState(ctx context.Context, file domain.WorkflowFile, newEntries []domain.ActivityLog) error {
	args := m.Called(ctx, file, newEntries)
	return args.Error(0)
}

func (m *MockFileRepository) AppendDocument(ctx context.Context, fileID string, doc domain.Document, entry domain.ActivityLog) error {
	args := m.Called(ctx, fileID, doc, entry)
	return args.Error(0)
}

func (m *MockFileRepository) FindFileByID(ctx context.Context, fileID string) (*domain.WorkflowFile, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowFile), args.Error(1)
}

func (m *MockFileRepository) FindFilesByCurrentRole(ctx context.Context, role domain.UserRole) ([]domain.WorkflowFile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowFile), args.Error(1)
}

func (m *MockFileRepository) FindFilesByEscalationLevel(ctx context.Context, level domain.EscalationLevel) ([]domain.WorkflowFile, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowFile), args.Error(1)
}

func (m *MockFileRepository) FindActiveFiles(ctx context.Context) ([]domain.WorkflowFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowFile), args.Error(1)
}

func (m *MockFileRepository) FindAllFiles(ctx context.Context) ([]domain.WorkflowFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowFile), args.Error(1)
}

// captureNotifier records every notification the engine emits.
type captureNotifier struct {
	mu     sync.Mutex
	events []domain.Notification
}

func (n *captureNotifier) Notify(_ context.Context, event domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// --- Test Suite Setup ---

// WorkflowServiceTestSuite drives the engine against the in-memory repository
// so multi-step pipeline scenarios read as real call sequences.
type WorkflowServiceTestSuite struct {
	suite.Suite
	repo     *memory.FileRepository
	notifier *captureNotifier
	service  portssvc.WorkflowSvcFacade
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.repo = memory.NewFileRepository()
	suite.notifier = &captureNotifier{}
	suite.service = services.NewWorkflowService(suite.repo, suite.notifier)
}

func salesActor() portssvc.Actor {
	return portssvc.Actor{UserID: uuid.NewString(), Name: "Sam Sales", Role: domain.RoleSales}
}

func actorWithRole(role domain.UserRole) portssvc.Actor {
	return portssvc.Actor{UserID: uuid.NewString(), Name: fmt.Sprintf("%s user", role), Role: role}
}

func (suite *WorkflowServiceTestSuite) createFile() *domain.WorkflowFile {
	file, err := suite.service.CreateFile(context.Background(), dto.CreateFileRequest{
		CustomerName: "Acme Corp",
		DealOrderID:  "DO-1001",
		Amount:       decimal.NewFromInt(125000),
	}, salesActor())
	suite.Require().NoError(err)
	suite.Require().NotNil(file)
	return file
}

// setSubmissionAge rewrites the stored submission date so the file appears
// pending for the given number of days.
func (suite *WorkflowServiceTestSuite) setSubmissionAge(fileID string, days int) {
	ctx := context.Background()
	stored, err := suite.repo.FindFileByID(ctx, fileID)
	suite.Require().NoError(err)
	stored.SubmissionDate = time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	suite.Require().NoError(suite.repo.UpdateFileState(ctx, *stored, nil))
}

// setEscalation stamps an escalation level directly in the store.
func (suite *WorkflowServiceTestSuite) setEscalation(fileID string, level domain.EscalationLevel) {
	ctx := context.Background()
	stored, err := suite.repo.FindFileByID(ctx, fileID)
	suite.Require().NoError(err)
	now := time.Now().UTC()
	stored.EscalationLevel = level
	stored.EscalationDate = &now
	suite.Require().NoError(suite.repo.UpdateFileState(ctx, *stored, nil))
}

// --- Test Cases ---

func (suite *WorkflowServiceTestSuite) TestCreateFile_Success() {
	file := suite.createFile()

	suite.Equal(domain.StatusVerification, file.CurrentStatus)
	suite.Equal(domain.RoleChecker, file.CurrentRole)
	suite.Equal(domain.EscalationNone, file.EscalationLevel)
	suite.Nil(file.EscalationDate)
	suite.Equal(domain.StagePending, file.Verification.Status)
	suite.Equal(domain.StagePending, file.Onboarding.Status)
	suite.Equal(domain.StagePending, file.Payment.Status)
	suite.Require().Len(file.History, 1)
	suite.Equal(domain.ActionFileCreated, file.History[0].Action)
	suite.Equal(domain.RoleSales, file.History[0].UserRole)
	suite.WithinDuration(time.Now().UTC(), file.SubmissionDate, time.Second)

	// Only the checker may act on a fresh file.
	suite.True(file.CanAct(domain.RoleChecker))
	suite.False(file.CanAct(domain.RoleSales))

	stored, err := suite.repo.FindFileByID(context.Background(), file.FileID)
	suite.Require().NoError(err)
	suite.Equal(file.FileID, stored.FileID)
}

func (suite *WorkflowServiceTestSuite) TestCreateFile_OnlySales() {
	_, err := suite.service.CreateFile(context.Background(), dto.CreateFileRequest{
		CustomerName: "Acme Corp",
		DealOrderID:  "DO-1002",
		Amount:       decimal.NewFromInt(100),
	}, actorWithRole(domain.RoleChecker))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *WorkflowServiceTestSuite) TestCreateFile_Validation() {
	ctx := context.Background()
	actor := salesActor()

	testCases := []struct {
		name string
		req  dto.CreateFileRequest
	}{
		{"missing customer name", dto.CreateFileRequest{DealOrderID: "DO-1", Amount: decimal.NewFromInt(1)}},
		{"missing deal order id", dto.CreateFileRequest{CustomerName: "Acme", Amount: decimal.NewFromInt(1)}},
		{"negative amount", dto.CreateFileRequest{CustomerName: "Acme", DealOrderID: "DO-1", Amount: decimal.NewFromInt(-5)}},
	}
	for _, tc := range testCases {
		_, err := suite.service.CreateFile(ctx, tc.req, actor)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
}

func (suite *WorkflowServiceTestSuite) TestApproveFile_AdvancesThroughPipeline() {
	ctx := context.Background()
	file := suite.createFile()

	approved, err := suite.service.ApproveFile(ctx, file.FileID, "documents verified", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusOnboarding, approved.CurrentStatus)
	suite.Equal(domain.RoleOnboardingManager, approved.CurrentRole)
	suite.Equal(domain.StageApproved, approved.Verification.Status)
	suite.Equal("documents verified", approved.Verification.Comments)
	suite.NotNil(approved.Verification.ResolvedAt)
	suite.Len(approved.History, 2)

	approved, err = suite.service.ApproveFile(ctx, file.FileID, "customer onboarded", actorWithRole(domain.RoleOnboardingManager))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPayment, approved.CurrentStatus)
	suite.Equal(domain.RolePaymentSupportManager, approved.CurrentRole)
	suite.Equal(domain.StageApproved, approved.Onboarding.Status)

	approved, err = suite.service.ApproveFile(ctx, file.FileID, "payment settled", actorWithRole(domain.RolePaymentSupportManager))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, approved.CurrentStatus)
	suite.Equal(domain.StageApproved, approved.Payment.Status)
	suite.True(approved.CurrentStatus.IsTerminal())
	suite.Len(approved.History, 4)
}

func (suite *WorkflowServiceTestSuite) TestApproveFile_WrongRole() {
	ctx := context.Background()
	file := suite.createFile()

	_, err := suite.service.ApproveFile(ctx, file.FileID, "nope", actorWithRole(domain.RolePaymentSupportManager))
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	// The refused call must leave the file untouched.
	stored, err := suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusVerification, stored.CurrentStatus)
	suite.Len(stored.History, 1)
}

func (suite *WorkflowServiceTestSuite) TestRejectFile_Terminates() {
	ctx := context.Background()
	file := suite.createFile()

	rejected, err := suite.service.RejectFile(ctx, file.FileID, "KYC mismatch", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.CurrentStatus)
	suite.Equal(domain.StageRejected, rejected.Verification.Status)
	suite.Equal("KYC mismatch", rejected.Verification.Comments)
	suite.Equal(domain.StagePending, rejected.Onboarding.Status)
	suite.Equal(domain.StagePending, rejected.Payment.Status)
	suite.Len(rejected.History, 2)
	suite.Equal(domain.ActionFileRejected, rejected.History[1].Action)
}

func (suite *WorkflowServiceTestSuite) TestTerminalFile_RefusesAction() {
	ctx := context.Background()
	file := suite.createFile()

	_, err := suite.service.RejectFile(ctx, file.FileID, "dup order", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)

	_, err = suite.service.ApproveFile(ctx, file.FileID, "try again", actorWithRole(domain.RoleChecker))
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = suite.service.RejectFile(ctx, file.FileID, "again", actorWithRole(domain.RoleChecker))
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	// History did not grow past the rejection entry.
	stored, err := suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Len(stored.History, 2)
}

func (suite *WorkflowServiceTestSuite) TestEscalatedFile_OnlyEscalationOwnerMayAct() {
	ctx := context.Background()
	file := suite.createFile()
	suite.setEscalation(file.FileID, domain.EscalationLevel2)

	// The normal stage owner is locked out while the file is escalated.
	_, err := suite.service.ApproveFile(ctx, file.FileID, "checker tries", actorWithRole(domain.RoleChecker))
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	// So is every other escalation-chain role.
	_, err = suite.service.ApproveFile(ctx, file.FileID, "wrong level", actorWithRole(domain.RoleFinanceHead))
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	approved, err := suite.service.ApproveFile(ctx, file.FileID, "cleared after review", actorWithRole(domain.RoleDepartmentHead))
	suite.Require().NoError(err)

	// Escalation approval clears escalation state and resumes the pipeline.
	suite.Equal(domain.StatusOnboarding, approved.CurrentStatus)
	suite.Equal(domain.RoleOnboardingManager, approved.CurrentRole)
	suite.Equal(domain.EscalationNone, approved.EscalationLevel)
	suite.Nil(approved.EscalationDate)
	suite.Equal(domain.StageApproved, approved.Verification.Status)
	suite.Equal(
		fmt.Sprintf("cleared after review (Escalation approved by %s)", domain.RoleDepartmentHead),
		approved.Verification.Comments,
	)
}

func (suite *WorkflowServiceTestSuite) TestEscalatedFile_RejectClearsEscalation() {
	ctx := context.Background()
	file := suite.createFile()
	suite.setEscalation(file.FileID, domain.EscalationLevel4)

	rejected, err := suite.service.RejectFile(ctx, file.FileID, "deal cancelled", actorWithRole(domain.RoleCfoCeo))
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.CurrentStatus)
	suite.Equal(domain.EscalationNone, rejected.EscalationLevel)
	suite.Nil(rejected.EscalationDate)
	suite.Equal(domain.StageRejected, rejected.Verification.Status)
}

func (suite *WorkflowServiceTestSuite) TestRecomputeEscalations() {
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := suite.createFile()
	aged := suite.createFile()
	suite.setSubmissionAge(aged.FileID, 10)

	escalated, err := suite.service.RecomputeEscalations(ctx, now)
	suite.Require().NoError(err)
	suite.Equal(1, escalated)

	stored, err := suite.repo.FindFileByID(ctx, aged.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationLevel3, stored.EscalationLevel)
	suite.Require().NotNil(stored.EscalationDate)
	suite.Require().Len(stored.History, 2)
	suite.Equal(domain.ActionFileEscalated, stored.History[1].Action)
	suite.Equal("System", stored.History[1].PerformedBy)
	suite.Equal(domain.RoleFinanceHead, stored.History[1].UserRole)

	untouched, err := suite.repo.FindFileByID(ctx, fresh.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationNone, untouched.EscalationLevel)
	suite.Len(untouched.History, 1)
}

func (suite *WorkflowServiceTestSuite) TestRecomputeEscalations_Idempotent() {
	ctx := context.Background()
	now := time.Now().UTC()

	file := suite.createFile()
	suite.setSubmissionAge(file.FileID, 7)

	escalated, err := suite.service.RecomputeEscalations(ctx, now)
	suite.Require().NoError(err)
	suite.Equal(1, escalated)

	// A second sweep at the same instant changes nothing and writes nothing.
	escalated, err = suite.service.RecomputeEscalations(ctx, now)
	suite.Require().NoError(err)
	suite.Equal(0, escalated)

	stored, err := suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationLevel2, stored.EscalationLevel)
	suite.Len(stored.History, 2)
}

func (suite *WorkflowServiceTestSuite) TestRecomputeEscalations_LevelOnlyMovesUp() {
	ctx := context.Background()

	file := suite.createFile()
	suite.setSubmissionAge(file.FileID, 4)

	escalated, err := suite.service.RecomputeEscalations(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Equal(1, escalated)

	stored, err := suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationLevel1, stored.EscalationLevel)

	// Nine more days pending bumps the same file to the next owner.
	suite.setSubmissionAge(file.FileID, 13)

	escalated, err = suite.service.RecomputeEscalations(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Equal(1, escalated)

	stored, err = suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationLevel4, stored.EscalationLevel)
}

func (suite *WorkflowServiceTestSuite) TestRecomputeEscalations_SkipsTerminalFiles() {
	ctx := context.Background()

	file := suite.createFile()
	_, err := suite.service.RejectFile(ctx, file.FileID, "stale", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)
	suite.setSubmissionAge(file.FileID, 30)

	escalated, err := suite.service.RecomputeEscalations(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Equal(0, escalated)

	stored, err := suite.repo.FindFileByID(ctx, file.FileID)
	suite.Require().NoError(err)
	suite.Equal(domain.EscalationNone, stored.EscalationLevel)
}

func (suite *WorkflowServiceTestSuite) TestListFilesForRole() {
	ctx := context.Background()

	pipeline := suite.createFile()
	escalated := suite.createFile()
	suite.setEscalation(escalated.FileID, domain.EscalationLevel2)

	// The checker sees only files assigned to them right now. The escalated
	// file still has CurrentRole CHECKER, so it shows up here too.
	checkerFiles, err := suite.service.ListFilesForRole(ctx, domain.RoleChecker)
	suite.Require().NoError(err)
	suite.Require().Len(checkerFiles, 2)
	ids := []string{checkerFiles[0].FileID, checkerFiles[1].FileID}
	suite.Contains(ids, pipeline.FileID)

	// The department head sees exactly LEVEL2 files, nobody else's.
	deptFiles, err := suite.service.ListFilesForRole(ctx, domain.RoleDepartmentHead)
	suite.Require().NoError(err)
	suite.Require().Len(deptFiles, 1)
	suite.Equal(escalated.FileID, deptFiles[0].FileID)

	reportingFiles, err := suite.service.ListFilesForRole(ctx, domain.RoleReportingManager)
	suite.Require().NoError(err)
	suite.Empty(reportingFiles)

	financeFiles, err := suite.service.ListFilesForRole(ctx, domain.RoleFinanceHead)
	suite.Require().NoError(err)
	suite.Empty(financeFiles)
}

func (suite *WorkflowServiceTestSuite) TestAttachDocument() {
	ctx := context.Background()
	file := suite.createFile()

	updated, err := suite.service.AttachDocument(ctx, file.FileID, dto.CreateDocumentRequest{
		Name: "signed-agreement.pdf",
		URL:  "https://docs.example.com/signed-agreement.pdf",
	}, actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)
	suite.Require().Len(updated.Documents, 1)
	suite.Equal("signed-agreement.pdf", updated.Documents[0].Name)
	suite.NotEmpty(updated.Documents[0].DocumentID)
	suite.Len(updated.History, 2)
	suite.Equal(domain.ActionDocumentAttached, updated.History[1].Action)
}

func (suite *WorkflowServiceTestSuite) TestAttachDocument_TerminalFile() {
	ctx := context.Background()
	file := suite.createFile()

	_, err := suite.service.RejectFile(ctx, file.FileID, "cancelled", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)

	_, err = suite.service.AttachDocument(ctx, file.FileID, dto.CreateDocumentRequest{Name: "late.pdf"}, actorWithRole(domain.RoleChecker))
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *WorkflowServiceTestSuite) TestSummary() {
	ctx := context.Background()

	completedFile := suite.createFile()
	for _, role := range []domain.UserRole{domain.RoleChecker, domain.RoleOnboardingManager, domain.RolePaymentSupportManager} {
		_, err := suite.service.ApproveFile(ctx, completedFile.FileID, "ok", actorWithRole(role))
		suite.Require().NoError(err)
	}

	rejectedFile := suite.createFile()
	_, err := suite.service.RejectFile(ctx, rejectedFile.FileID, "no", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)

	escalatedFile := suite.createFile()
	suite.setEscalation(escalatedFile.FileID, domain.EscalationLevel1)

	summary, err := suite.service.Summary(ctx)
	suite.Require().NoError(err)
	suite.Equal(3, summary.Total)
	suite.Equal(1, summary.ByStatus[string(domain.StatusCompleted)])
	suite.Equal(1, summary.ByStatus[string(domain.StatusRejected)])
	suite.Equal(1, summary.ByStatus[string(domain.StatusVerification)])
	suite.Equal(1, summary.Escalated)
}

func (suite *WorkflowServiceTestSuite) TestNotificationsEmitted() {
	ctx := context.Background()
	file := suite.createFile()

	_, err := suite.service.ApproveFile(ctx, file.FileID, "ok", actorWithRole(domain.RoleChecker))
	suite.Require().NoError(err)

	suite.Require().GreaterOrEqual(len(suite.notifier.events), 2)
	suite.Equal("File Created", suite.notifier.events[0].Title)
	suite.Equal("File Approved", suite.notifier.events[1].Title)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}

// --- Repository failure paths, driven through the mock ---

type WorkflowServiceErrorTestSuite struct {
	suite.Suite
	mockRepo *MockFileRepository
	service  portssvc.WorkflowSvcFacade
}

func (suite *WorkflowServiceErrorTestSuite) SetupTest() {
	suite.mockRepo = new(MockFileRepository)
	suite.service = services.NewWorkflowService(suite.mockRepo, nil)
}

func (suite *WorkflowServiceErrorTestSuite) TestCreateFile_SaveError() {
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	suite.mockRepo.On("SaveNewFile", ctx, mock.AnythingOfType("domain.WorkflowFile")).Return(dbErr).Once()

	_, err := suite.service.CreateFile(ctx, dto.CreateFileRequest{
		CustomerName: "Acme Corp",
		DealOrderID:  "DO-2001",
		Amount:       decimal.NewFromInt(10),
	}, salesActor())

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceErrorTestSuite) TestApproveFile_NotFound() {
	ctx := context.Background()
	fileID := uuid.NewString()

	suite.mockRepo.On("FindFileByID", ctx, fileID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ApproveFile(ctx, fileID, "ok", actorWithRole(domain.RoleChecker))
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceErrorTestSuite) TestApproveFile_UpdateError() {
	ctx := context.Background()
	fileID := uuid.NewString()
	dbErr := errors.New("tx aborted")

	file := &domain.WorkflowFile{
		FileID:          fileID,
		CustomerName:    "Acme Corp",
		DealOrderID:     "DO-2002",
		SubmissionDate:  time.Now().UTC(),
		CurrentStatus:   domain.StatusVerification,
		CurrentRole:     domain.RoleChecker,
		Verification:    domain.StageRecord{Status: domain.StagePending},
		Onboarding:      domain.StageRecord{Status: domain.StagePending},
		Payment:         domain.StageRecord{Status: domain.StagePending},
		EscalationLevel: domain.EscalationNone,
	}

	suite.mockRepo.On("FindFileByID", ctx, fileID).Return(file, nil).Once()
	suite.mockRepo.On("UpdateFileState", ctx, mock.AnythingOfType("domain.WorkflowFile"), mock.AnythingOfType("[]domain.ActivityLog")).Return(dbErr).Once()

	_, err := suite.service.ApproveFile(ctx, fileID, "ok", actorWithRole(domain.RoleChecker))
	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestWorkflowServiceErrorTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceErrorTestSuite))
}
