package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillmap-service/internal/domain"
)

const submissionColumns = `id, assignment_id, user_id, file_url, filename, status, grade, feedback, created_at, updated_at`

func scanSubmission(row rowScanner) (*domain.LessonSubmission, error) {
	var (
		s     domain.LessonSubmission
		grade sql.NullFloat64
	)
	err := row.Scan(&s.ID, &s.AssignmentID, &s.UserID, &s.FileURL, &s.Filename, &s.Status,
		&grade, &s.Feedback, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if grade.Valid {
		s.Grade = &grade.Float64
	}
	return &s, nil
}

// SubmissionRepository реализует взаимодействие со сдачами работ в PostgreSQL.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository создает новый экземпляр SubmissionRepository.
func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CreateAndMarkSubmitted создает сдачу и переводит назначение в submitted
// в одной транзакции.
func (r *SubmissionRepository) CreateAndMarkSubmitted(ctx context.Context, submission *domain.LessonSubmission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Создаем сдачу
	_, err = tx.ExecContext(ctx, `
		INSERT INTO lesson_submissions (id, assignment_id, user_id, file_url, filename, status, grade, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		submission.ID, submission.AssignmentID, submission.UserID, submission.FileURL, submission.Filename,
		submission.Status, submission.Grade, submission.Feedback, submission.CreatedAt, submission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	// 2. Переводим назначение в submitted
	_, err = tx.ExecContext(ctx,
		`UPDATE lesson_assignments SET status = $2 WHERE id = $1`,
		submission.AssignmentID, domain.AssignmentStatusSubmitted,
	)
	if err != nil {
		return fmt.Errorf("failed to mark assignment submitted: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID возвращает сдачу по ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, submissionID string) (*domain.LessonSubmission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM lesson_submissions WHERE id = $1`, submissionID)

	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

// ListByAssignment возвращает сдачи по назначению, новые первыми.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]*domain.LessonSubmission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM lesson_submissions WHERE assignment_id = $1 ORDER BY created_at DESC`,
		assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*domain.LessonSubmission{}
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

// UpdateReview записывает решение проверяющего и возвращает свежую запись.
func (r *SubmissionRepository) UpdateReview(ctx context.Context, submissionID, status string, grade *float64, feedback string) (*domain.LessonSubmission, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE lesson_submissions SET status = $2, grade = $3, feedback = $4, updated_at = now()
		WHERE id = $1`,
		submissionID, status, grade, feedback,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update submission review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update submission review: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrSubmissionNotFound
	}

	return r.GetByID(ctx, submissionID)
}
