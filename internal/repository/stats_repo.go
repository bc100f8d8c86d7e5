package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillmap-service/internal/domain"
)

// StatsRepository реализует domain.StatsRepository для работы со статистикой.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository создает новый экземпляр StatsRepository.
func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &StatsRepository{db: db}
}

// GetTeacherStats возвращает агрегированную статистику преподавателя.
func (r *StatsRepository) GetTeacherStats(ctx context.Context, teacherID string) (*domain.TeacherStats, error) {
	stats := &domain.TeacherStats{TeacherID: teacherID}

	err := r.db.QueryRowContext(ctx, `
		SELECT surname || ' ' || name, email, rating, department, title, hire_date, active
		FROM users WHERE id = $1 AND type = 'teacher'`, teacherID,
	).Scan(&stats.FullName, &stats.Email, &stats.AvgRating, &stats.Department, &stats.Title, &stats.HireDate, &stats.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT count(*), count(DISTINCT user_id)
		FROM lesson_assignments WHERE assigned_by = $1`, teacherID,
	).Scan(&stats.AssignmentsCount, &stats.StudentsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count teacher assignments: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT count(DISTINCT cm.course_id)
		FROM lesson_assignments la
		JOIN course_lessons cl ON cl.id = la.lesson_id
		JOIN course_modules cm ON cm.id = cl.module_id
		WHERE la.assigned_by = $1`, teacherID,
	).Scan(&stats.CoursesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count teacher courses: %w", err)
	}

	return stats, nil
}

// GetAdminStats возвращает сводные счетчики системы.
func (r *StatsRepository) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{UsersByRole: map[string]int{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT count(*), count(*) FILTER (WHERE active),
			(SELECT count(*) FROM courses),
			(SELECT count(*) FROM user_course_progress),
			(SELECT count(*) FROM lesson_assignments)
		FROM users`,
	).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalCourses, &stats.TotalEnrollments, &stats.TotalAssignments)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT type, count(*) FROM users GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		stats.UsersByRole[role] = count
	}

	return stats, rows.Err()
}

// GetTeacherDashboard возвращает сводку преподавателя с лентой активности за неделю.
func (r *StatsRepository) GetTeacherDashboard(ctx context.Context, teacherID string) (*domain.TeacherDashboard, error) {
	dashboard := &domain.TeacherDashboard{}

	err := r.db.QueryRowContext(ctx, `
		SELECT count(*), count(DISTINCT user_id), count(*) FILTER (WHERE status = 'submitted')
		FROM lesson_assignments WHERE assigned_by = $1`, teacherID,
	).Scan(&dashboard.AssignmentsCount, &dashboard.StudentsCount, &dashboard.SubmittedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT count(DISTINCT course_id)
		FROM teacher_course_assignments
		WHERE teacher_id = $1 AND status = 'active'`, teacherID,
	).Scan(&dashboard.CoursesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT coalesce(avg(ucp.progress_percent), 0)
		FROM user_course_progress ucp
		WHERE ucp.user_id IN (SELECT DISTINCT user_id FROM lesson_assignments WHERE assigned_by = $1)`,
		teacherID,
	).Scan(&dashboard.AvgProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to average progress: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT 'assignment', u.surname || ' ' || u.name, cl.title, la.status, la.assigned_at
		FROM lesson_assignments la
		JOIN users u ON u.id = la.user_id
		JOIN course_lessons cl ON cl.id = la.lesson_id
		WHERE la.assigned_by = $1 AND la.assigned_at > now() - interval '7 days'
		UNION ALL
		SELECT 'submission', u.surname || ' ' || u.name, cl.title, ls.status, ls.created_at
		FROM lesson_submissions ls
		JOIN lesson_assignments la ON la.id = ls.assignment_id
		JOIN users u ON u.id = ls.user_id
		JOIN course_lessons cl ON cl.id = la.lesson_id
		WHERE la.assigned_by = $1 AND ls.created_at > now() - interval '7 days'
		ORDER BY 5 DESC
		LIMIT 20`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.ActivityItem
		if err := rows.Scan(&item.Kind, &item.StudentName, &item.LessonTitle, &item.Status, &item.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity item: %w", err)
		}
		dashboard.RecentActivity = append(dashboard.RecentActivity, &item)
	}

	return dashboard, rows.Err()
}

// CountTeacherCourses возвращает число активных закреплений преподавателя.
func (r *StatsRepository) CountTeacherCourses(ctx context.Context, teacherID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM teacher_course_assignments
		WHERE teacher_id = $1 AND status = 'active'`, teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teacher courses: %w", err)
	}
	return count, nil
}
