package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portsrepo "github.com/dealdesk/deal_workflow_app/internal/core/ports/repositories"
	"github.com/dealdesk/deal_workflow_app/internal/models"
)

type PgxFileRepository struct {
	BaseRepository
}

func newPgxFileRepository(db *pgxpool.Pool) portsrepo.FileRepositoryFacade {
	return &PgxFileRepository{BaseRepository{Pool: db}}
}

// Ensure PgxFileRepository implements portsrepo.FileRepositoryFacade
var _ portsrepo.FileRepositoryFacade = (*PgxFileRepository)(nil)

// Helper to convert domain.WorkflowFile to models.WorkflowFile
func toModelFile(d domain.WorkflowFile) models.WorkflowFile {
	return models.WorkflowFile{
		FileID:         d.FileID,
		CustomerName:   d.CustomerName,
		DealOrderID:    d.DealOrderID,
		Amount:         d.Amount,
		SubmissionDate: d.SubmissionDate,
		CurrentStatus:  string(d.CurrentStatus),
		AssignedRole:   string(d.CurrentRole),

		VerificationStatus:     string(d.Verification.Status),
		VerificationComments:   d.Verification.Comments,
		VerificationResolvedBy: d.Verification.ResolvedBy,
		VerificationResolvedAt: d.Verification.ResolvedAt,

		OnboardingStatus:     string(d.Onboarding.Status),
		OnboardingComments:   d.Onboarding.Comments,
		OnboardingResolvedBy: d.Onboarding.ResolvedBy,
		OnboardingResolvedAt: d.Onboarding.ResolvedAt,

		PaymentStatus:     string(d.Payment.Status),
		PaymentComments:   d.Payment.Comments,
		PaymentResolvedBy: d.Payment.ResolvedBy,
		PaymentResolvedAt: d.Payment.ResolvedAt,

		EscalationLevel: string(d.EscalationLevel),
		EscalationDate:  d.EscalationDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.WorkflowFile (plus children) to domain.WorkflowFile
func toDomainFile(m models.WorkflowFile, docs []models.FileDocument, history []models.ActivityLog) domain.WorkflowFile {
	domainDocs := make([]domain.Document, len(docs))
	for i, d := range docs {
		domainDocs[i] = domain.Document{
			DocumentID: d.DocumentID,
			Name:       d.Name,
			URL:        d.URL,
			UploadedAt: d.UploadedAt,
		}
	}

	domainHistory := make([]domain.ActivityLog, len(history))
	for i, h := range history {
		domainHistory[i] = domain.ActivityLog{
			ActivityID:  h.ActivityID,
			FileID:      h.FileID,
			Action:      h.Action,
			PerformedBy: h.PerformedBy,
			UserRole:    domain.UserRole(h.UserRole),
			Timestamp:   h.Timestamp,
			Details:     h.Details,
		}
	}

	return domain.WorkflowFile{
		FileID:         m.FileID,
		CustomerName:   m.CustomerName,
		DealOrderID:    m.DealOrderID,
		Amount:         m.Amount,
		SubmissionDate: m.SubmissionDate,
		CurrentStatus:  domain.FileStatus(m.CurrentStatus),
		CurrentRole:    domain.UserRole(m.AssignedRole),
		Verification: domain.StageRecord{
			Status:     domain.StageOutcome(m.VerificationStatus),
			Comments:   m.VerificationComments,
			ResolvedBy: m.VerificationResolvedBy,
			ResolvedAt: m.VerificationResolvedAt,
		},
		Onboarding: domain.StageRecord{
			Status:     domain.StageOutcome(m.OnboardingStatus),
			Comments:   m.OnboardingComments,
			ResolvedBy: m.OnboardingResolvedBy,
			ResolvedAt: m.OnboardingResolvedAt,
		},
		Payment: domain.StageRecord{
			Status:     domain.StageOutcome(m.PaymentStatus),
			Comments:   m.PaymentComments,
			ResolvedBy: m.PaymentResolvedBy,
			ResolvedAt: m.PaymentResolvedAt,
		},
		EscalationLevel: domain.EscalationLevel(m.EscalationLevel),
		EscalationDate:  m.EscalationDate,
		Documents:       domainDocs,
		History:         domainHistory,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// The role column is named assigned_role: current_role is a reserved word in
// PostgreSQL (it parses as the session-role function) and cannot appear as an
// unquoted column identifier.
const fileColumns = `
	file_id, customer_name, deal_order_id, amount, submission_date,
	current_status, assigned_role,
	verification_status, verification_comments, verification_resolved_by, verification_resolved_at,
	onboarding_status, onboarding_comments, onboarding_resolved_by, onboarding_resolved_at,
	payment_status, payment_comments, payment_resolved_by, payment_resolved_at,
	escalation_level, escalation_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFileRow(row pgx.Row) (models.WorkflowFile, error) {
	var m models.WorkflowFile
	err := row.Scan(
		&m.FileID, &m.CustomerName, &m.DealOrderID, &m.Amount, &m.SubmissionDate,
		&m.CurrentStatus, &m.AssignedRole,
		&m.VerificationStatus, &m.VerificationComments, &m.VerificationResolvedBy, &m.VerificationResolvedAt,
		&m.OnboardingStatus, &m.OnboardingComments, &m.OnboardingResolvedBy, &m.OnboardingResolvedAt,
		&m.PaymentStatus, &m.PaymentComments, &m.PaymentResolvedBy, &m.PaymentResolvedAt,
		&m.EscalationLevel, &m.EscalationDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func insertActivityLog(ctx context.Context, tx pgx.Tx, entry domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (activity_id, file_id, action, performed_by, user_role, timestamp, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		entry.ActivityID, entry.FileID, entry.Action, entry.PerformedBy, string(entry.UserRole), entry.Timestamp, entry.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

// SaveNewFile persists a freshly created file including its documents and
// initial history entry atomically.
func (r *PgxFileRepository) SaveNewFile(ctx context.Context, file domain.WorkflowFile) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := toModelFile(file)
	query := `
		INSERT INTO workflow_files (` + fileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		m.FileID, m.CustomerName, m.DealOrderID, m.Amount, m.SubmissionDate,
		m.CurrentStatus, m.AssignedRole,
		m.VerificationStatus, m.VerificationComments, m.VerificationResolvedBy, m.VerificationResolvedAt,
		m.OnboardingStatus, m.OnboardingComments, m.OnboardingResolvedBy, m.OnboardingResolvedAt,
		m.PaymentStatus, m.PaymentComments, m.PaymentResolvedBy, m.PaymentResolvedAt,
		m.EscalationLevel, m.EscalationDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workflow file: %w", err)
	}

	for _, doc := range file.Documents {
		if err := insertDocument(ctx, tx, file.FileID, doc); err != nil {
			return err
		}
	}

	for _, entry := range file.History {
		if err := insertActivityLog(ctx, tx, entry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateFileState persists the workflow fields, stage records and newly
// appended history entries in a single transaction, so a status advance can
// never commit without its audit entry.
func (r *PgxFileRepository) UpdateFileState(ctx context.Context, file domain.WorkflowFile, newEntries []domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := toModelFile(file)
	query := `
		UPDATE workflow_files SET
			current_status = $1, assigned_role = $2,
			verification_status = $3, verification_comments = $4, verification_resolved_by = $5, verification_resolved_at = $6,
			onboarding_status = $7, onboarding_comments = $8, onboarding_resolved_by = $9, onboarding_resolved_at = $10,
			payment_status = $11, payment_comments = $12, payment_resolved_by = $13, payment_resolved_at = $14,
			escalation_level = $15, escalation_date = $16,
			last_updated_at = $17, last_updated_by = $18
		WHERE file_id = $19;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CurrentStatus, m.AssignedRole,
		m.VerificationStatus, m.VerificationComments, m.VerificationResolvedBy, m.VerificationResolvedAt,
		m.OnboardingStatus, m.OnboardingComments, m.OnboardingResolvedBy, m.OnboardingResolvedAt,
		m.PaymentStatus, m.PaymentComments, m.PaymentResolvedBy, m.PaymentResolvedAt,
		m.EscalationLevel, m.EscalationDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.FileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow file: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	for _, entry := range newEntries {
		if err := insertActivityLog(ctx, tx, entry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func insertDocument(ctx context.Context, tx pgx.Tx, fileID string, doc domain.Document) error {
	query := `
		INSERT INTO file_documents (document_id, file_id, name, url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query, doc.DocumentID, fileID, doc.Name, doc.URL, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// AppendDocument appends a document and its history entry atomically.
func (r *PgxFileRepository) AppendDocument(ctx context.Context, fileID string, doc domain.Document, entry domain.ActivityLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx,
		`UPDATE workflow_files SET last_updated_at = $1 WHERE file_id = $2;`,
		doc.UploadedAt, fileID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch workflow file: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertDocument(ctx, tx, fileID, doc); err != nil {
		return err
	}
	if err := insertActivityLog(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFileRepository) findDocuments(ctx context.Context, fileIDs []string) (map[string][]models.FileDocument, error) {
	query := `
		SELECT document_id, file_id, name, url, uploaded_at
		FROM file_documents
		WHERE file_id = ANY($1)
		ORDER BY uploaded_at ASC, document_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, fileIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string][]models.FileDocument)
	for rows.Next() {
		var d models.FileDocument
		if err := rows.Scan(&d.DocumentID, &d.FileID, &d.Name, &d.URL, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs[d.FileID] = append(docs[d.FileID], d)
	}
	return docs, rows.Err()
}

func (r *PgxFileRepository) findHistory(ctx context.Context, fileIDs []string) (map[string][]models.ActivityLog, error) {
	query := `
		SELECT activity_id, file_id, action, performed_by, user_role, timestamp, details
		FROM activity_logs
		WHERE file_id = ANY($1)
		ORDER BY timestamp ASC, activity_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, fileIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]models.ActivityLog)
	for rows.Next() {
		var h models.ActivityLog
		if err := rows.Scan(&h.ActivityID, &h.FileID, &h.Action, &h.PerformedBy, &h.UserRole, &h.Timestamp, &h.Details); err != nil {
			return nil, fmt.Errorf("failed to scan activity log row: %w", err)
		}
		history[h.FileID] = append(history[h.FileID], h)
	}
	return history, rows.Err()
}

// FindFileByID retrieves a file with its documents and full history.
func (r *PgxFileRepository) FindFileByID(ctx context.Context, fileID string) (*domain.WorkflowFile, error) {
	query := `SELECT ` + fileColumns + ` FROM workflow_files WHERE file_id = $1;`

	m, err := scanFileRow(r.Pool.QueryRow(ctx, query, fileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find file by ID %s: %w", fileID, err)
	}

	docs, err := r.findDocuments(ctx, []string{fileID})
	if err != nil {
		return nil, err
	}
	history, err := r.findHistory(ctx, []string{fileID})
	if err != nil {
		return nil, err
	}

	file := toDomainFile(m, docs[fileID], history[fileID])
	return &file, nil
}

func (r *PgxFileRepository) findFiles(ctx context.Context, where string, args ...any) ([]domain.WorkflowFile, error) {
	query := `SELECT ` + fileColumns + ` FROM workflow_files ` + where + ` ORDER BY submission_date DESC, file_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow files: %w", err)
	}
	defer rows.Close()

	modelFiles := []models.WorkflowFile{}
	fileIDs := []string{}
	for rows.Next() {
		m, err := scanFileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow file row: %w", err)
		}
		modelFiles = append(modelFiles, m)
		fileIDs = append(fileIDs, m.FileID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workflow file rows: %w", rows.Err())
	}

	if len(modelFiles) == 0 {
		return []domain.WorkflowFile{}, nil
	}

	docs, err := r.findDocuments(ctx, fileIDs)
	if err != nil {
		return nil, err
	}
	history, err := r.findHistory(ctx, fileIDs)
	if err != nil {
		return nil, err
	}

	files := make([]domain.WorkflowFile, len(modelFiles))
	for i, m := range modelFiles {
		files[i] = toDomainFile(m, docs[m.FileID], history[m.FileID])
	}
	return files, nil
}

// FindFilesByCurrentRole retrieves files whose current role matches.
func (r *PgxFileRepository) FindFilesByCurrentRole(ctx context.Context, role domain.UserRole) ([]domain.WorkflowFile, error) {
	return r.findFiles(ctx, `WHERE assigned_role = $1`, string(role))
}

// FindFilesByEscalationLevel retrieves files escalated to exactly the given level.
func (r *PgxFileRepository) FindFilesByEscalationLevel(ctx context.Context, level domain.EscalationLevel) ([]domain.WorkflowFile, error) {
	return r.findFiles(ctx, `WHERE escalation_level = $1`, string(level))
}

// FindActiveFiles retrieves the escalation sweep candidates.
func (r *PgxFileRepository) FindActiveFiles(ctx context.Context) ([]domain.WorkflowFile, error) {
	return r.findFiles(ctx, `WHERE current_status NOT IN ($1, $2, $3)`,
		string(domain.StatusDraft), string(domain.StatusCompleted), string(domain.StatusRejected))
}

// FindAllFiles retrieves every file, newest submission first.
func (r *PgxFileRepository) FindAllFiles(ctx context.Context) ([]domain.WorkflowFile, error) {
	return r.findFiles(ctx, ``)
}
