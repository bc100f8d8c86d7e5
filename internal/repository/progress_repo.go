package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"skillmap-service/internal/domain"
)

const progressColumns = `id, user_id, course_id, current_module_id, completed_lessons, progress_percent, started_at, last_accessed`

func scanProgress(row rowScanner) (*domain.UserCourseProgress, error) {
	var (
		p         domain.UserCourseProgress
		moduleID  sql.NullString
		completed []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &moduleID, &completed, &p.ProgressPercent, &p.StartedAt, &p.LastAccessed)
	if err != nil {
		return nil, err
	}
	if moduleID.Valid {
		p.CurrentModuleID = &moduleID.String
	}
	if len(completed) > 0 {
		if err := json.Unmarshal(completed, &p.CompletedLessons); err != nil {
			return nil, fmt.Errorf("failed to decode completed lessons: %w", err)
		}
	}
	return &p, nil
}

// ProgressRepository реализует взаимодействие с прогрессом по курсам в PostgreSQL.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository создает новый экземпляр ProgressRepository.
func NewProgressRepository(db *sql.DB) domain.ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create сохраняет новую запись о зачислении.
func (r *ProgressRepository) Create(ctx context.Context, progress *domain.UserCourseProgress) error {
	completed, err := json.Marshal(emptyIfNil(progress.CompletedLessons))
	if err != nil {
		return fmt.Errorf("failed to encode completed lessons: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_course_progress (id, user_id, course_id, current_module_id, completed_lessons, progress_percent, started_at, last_accessed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		progress.ID, progress.UserID, progress.CourseID, progress.CurrentModuleID, completed,
		progress.ProgressPercent, progress.StartedAt, progress.LastAccessed,
	)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

// GetByID возвращает запись прогресса по ID.
func (r *ProgressRepository) GetByID(ctx context.Context, progressID string) (*domain.UserCourseProgress, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM user_course_progress WHERE id = $1`, progressID)

	progress, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// GetByUserAndCourse возвращает запись прогресса пары (пользователь, курс).
func (r *ProgressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM user_course_progress WHERE user_id = $1 AND course_id = $2`,
		userID, courseID)

	progress, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// GetFirstByUser возвращает первую по времени запись прогресса пользователя.
func (r *ProgressRepository) GetFirstByUser(ctx context.Context, userID string) (*domain.UserCourseProgress, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM user_course_progress WHERE user_id = $1 ORDER BY started_at LIMIT 1`,
		userID)

	progress, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

// ListByUser возвращает все записи прогресса пользователя.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserCourseProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+progressColumns+` FROM user_course_progress WHERE user_id = $1 ORDER BY started_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	result := []*domain.UserCourseProgress{}
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		result = append(result, progress)
	}
	return result, rows.Err()
}
