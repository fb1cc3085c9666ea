package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/repositories/memory"
)

func (l *fileLocks) has(fileID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.locks[fileID]
	return ok
}

func TestFileLocks_ReleaseDropsEntry(t *testing.T) {
	l := newFileLocks()

	unlock := l.lock("file-1")
	unlock()
	assert.True(t, l.has("file-1"), "entry is kept while the file is active")

	l.release("file-1")
	assert.False(t, l.has("file-1"))
}

func TestFileLocks_TerminalTransitionsReleaseEntry(t *testing.T) {
	ctx := context.Background()
	svc := &workflowService{
		fileRepo: memory.NewFileRepository(),
		locks:    newFileLocks(),
	}

	sales := portssvc.Actor{UserID: "u-sales", Name: "Sam Sales", Role: domain.RoleSales}
	req := dto.CreateFileRequest{
		CustomerName: "Acme Corp",
		DealOrderID:  "DO-2001",
		Amount:       decimal.NewFromInt(5000),
	}

	rejected, err := svc.CreateFile(ctx, req, sales)
	require.NoError(t, err)
	_, err = svc.RejectFile(ctx, rejected.FileID, "incomplete", portssvc.Actor{UserID: "u-chk", Name: "Cara Checker", Role: domain.RoleChecker})
	require.NoError(t, err)
	assert.False(t, svc.locks.has(rejected.FileID), "rejected file keeps no lock entry")

	completed, err := svc.CreateFile(ctx, req, sales)
	require.NoError(t, err)
	_, err = svc.ApproveFile(ctx, completed.FileID, "verified", portssvc.Actor{UserID: "u-chk", Name: "Cara Checker", Role: domain.RoleChecker})
	require.NoError(t, err)
	assert.True(t, svc.locks.has(completed.FileID), "active file keeps its lock entry")

	_, err = svc.ApproveFile(ctx, completed.FileID, "onboarded", portssvc.Actor{UserID: "u-onb", Name: "Omar Onboarding", Role: domain.RoleOnboardingManager})
	require.NoError(t, err)
	_, err = svc.ApproveFile(ctx, completed.FileID, "paid", portssvc.Actor{UserID: "u-pay", Name: "Pat Payments", Role: domain.RolePaymentSupportManager})
	require.NoError(t, err)
	assert.False(t, svc.locks.has(completed.FileID), "completed file keeps no lock entry")
}
