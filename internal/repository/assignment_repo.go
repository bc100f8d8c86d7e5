package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillmap-service/internal/domain"
)

const assignmentColumns = `id, user_id, lesson_id, assigned_by, assigned_at, due_date, status, note`

func scanAssignment(row rowScanner) (*domain.LessonAssignment, error) {
	var (
		a       domain.LessonAssignment
		dueDate sql.NullTime
	)
	err := row.Scan(&a.ID, &a.UserID, &a.LessonID, &a.AssignedBy, &a.AssignedAt, &dueDate, &a.Status, &a.Note)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		a.DueDate = &dueDate.Time
	}
	return &a, nil
}

// AssignmentRepository реализует взаимодействие с назначениями уроков в PostgreSQL.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository создает новый экземпляр AssignmentRepository.
func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create сохраняет новое назначение урока.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.LessonAssignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lesson_assignments (id, user_id, lesson_id, assigned_by, assigned_at, due_date, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		assignment.ID, assignment.UserID, assignment.LessonID, assignment.AssignedBy,
		assignment.AssignedAt, assignment.DueDate, assignment.Status, assignment.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAssignmentAlreadyExists
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// GetByID возвращает назначение по ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID string) (*domain.LessonAssignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM lesson_assignments WHERE id = $1`, assignmentID)

	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

// GetByUserAndLesson возвращает назначение пары (ученик, урок).
func (r *AssignmentRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*domain.LessonAssignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM lesson_assignments WHERE user_id = $1 AND lesson_id = $2`,
		userID, lessonID)

	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

// ListByTeacher возвращает назначения, созданные преподавателем,
// с присоединенными названием урока и именем ученика.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string, filter domain.AssignmentFilter) ([]*domain.AssignmentInfo, error) {
	query := `
		SELECT la.id, la.user_id, la.lesson_id, la.assigned_by, la.assigned_at, la.due_date, la.status, la.note,
			cl.title, u.surname || ' ' || u.name
		FROM lesson_assignments la
		JOIN course_lessons cl ON cl.id = la.lesson_id
		JOIN users u ON u.id = la.user_id
		WHERE la.assigned_by = $1`
	args := []any{teacherID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND la.status = $%d", len(args))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND la.user_id = $%d", len(args))
	}
	query += " ORDER BY la.assigned_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	result := []*domain.AssignmentInfo{}
	for rows.Next() {
		var (
			a       domain.LessonAssignment
			dueDate sql.NullTime
			info    domain.AssignmentInfo
		)
		err := rows.Scan(&a.ID, &a.UserID, &a.LessonID, &a.AssignedBy, &a.AssignedAt, &dueDate, &a.Status, &a.Note,
			&info.LessonTitle, &info.StudentName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if dueDate.Valid {
			a.DueDate = &dueDate.Time
		}
		info.Assignment = &a
		result = append(result, &info)
	}
	return result, rows.Err()
}

// ListTeacherStudents возвращает учеников, которым преподаватель назначал уроки.
func (r *AssignmentRepository) ListTeacherStudents(ctx context.Context, teacherID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT `+prefixColumns("u", userColumns)+`
		FROM users u
		JOIN lesson_assignments la ON la.user_id = u.id
		WHERE la.assigned_by = $1`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher students: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UpdateStatus обновляет статус назначения.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, assignmentID, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE lesson_assignments SET status = $2 WHERE id = $1`, assignmentID, status)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
