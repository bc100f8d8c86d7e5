package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skillmap-service/internal/domain"
)

const courseColumns = `id, name, description, category, category_name, category_color, icon, duration, is_public, created_at, updated_at`

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Category, &c.CategoryName, &c.CategoryColor,
		&c.Icon, &c.Duration, &c.IsPublic, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CourseRepository реализует взаимодействие с деревом контента курсов в PostgreSQL.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository создает новый экземпляр CourseRepository.
func NewCourseRepository(db *sql.DB) domain.CourseRepository {
	return &CourseRepository{db: db}
}

// CreateCourse сохраняет новый курс.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (id, name, description, category, category_name, category_color, icon, duration, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		course.ID, course.Name, course.Description, course.Category, course.CategoryName, course.CategoryColor,
		course.Icon, course.Duration, course.IsPublic, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetCourseByID возвращает курс по ID.
func (r *CourseRepository) GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, courseID)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// GetCourseByName возвращает курс по уникальному имени.
func (r *CourseRepository) GetCourseByName(ctx context.Context, name string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE name = $1`, name)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by name: %w", err)
	}
	return course, nil
}

// ListCourses возвращает курсы по фильтру каталога.
func (r *CourseRepository) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE 1=1`
	args := []any{}

	if filter.PublicOnly {
		query += " AND is_public = TRUE"
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (lower(name) LIKE $%d OR lower(description) LIKE $%d OR lower(category_name) LIKE $%d)", n, n, n)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// ListCategories возвращает категории каталога с числом курсов в каждой.
func (r *CourseRepository) ListCategories(ctx context.Context) ([]*domain.CourseCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, category_name, min(category_color), count(*)
		FROM courses
		WHERE is_public = TRUE
		GROUP BY category, category_name
		ORDER BY category_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.CourseCategory{}
	for rows.Next() {
		var cat domain.CourseCategory
		if err := rows.Scan(&cat.Category, &cat.CategoryName, &cat.CategoryColor, &cat.CourseCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &cat)
	}
	return categories, rows.Err()
}

// UpdateCourse перезаписывает поля курса и возвращает свежую запись.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE courses SET name = $2, description = $3, category = $4, category_name = $5,
			category_color = $6, icon = $7, duration = $8, is_public = $9, updated_at = now()
		WHERE id = $1`,
		course.ID, course.Name, course.Description, course.Category, course.CategoryName,
		course.CategoryColor, course.Icon, course.Duration, course.IsPublic,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return r.GetCourseByID(ctx, course.ID)
}

// DeleteCourse удаляет курс, модули и уроки снимаются каскадом.
func (r *CourseRepository) DeleteCourse(ctx context.Context, courseID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if affected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// CountCourseStudents возвращает число зачисленных на курс.
func (r *CourseRepository) CountCourseStudents(ctx context.Context, courseID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM user_course_progress WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count course students: %w", err)
	}
	return count, nil
}

// CreateModule сохраняет новый модуль курса.
func (r *CourseRepository) CreateModule(ctx context.Context, module *domain.CourseModule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO course_modules (id, course_id, "order", title, description, recommended_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		module.ID, module.CourseID, module.Order, module.Title, module.Description, module.RecommendedTime, module.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

// GetModuleByID возвращает модуль по ID.
func (r *CourseRepository) GetModuleByID(ctx context.Context, moduleID string) (*domain.CourseModule, error) {
	var m domain.CourseModule
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, "order", title, description, recommended_time, created_at
		FROM course_modules WHERE id = $1`, moduleID,
	).Scan(&m.ID, &m.CourseID, &m.Order, &m.Title, &m.Description, &m.RecommendedTime, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	return &m, nil
}

// ListModules возвращает модули курса в порядке следования.
func (r *CourseRepository) ListModules(ctx context.Context, courseID string) ([]*domain.CourseModule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, "order", title, description, recommended_time, created_at
		FROM course_modules WHERE course_id = $1 ORDER BY "order"`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	modules := []*domain.CourseModule{}
	for rows.Next() {
		var m domain.CourseModule
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Order, &m.Title, &m.Description, &m.RecommendedTime, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, &m)
	}
	return modules, rows.Err()
}

// ModuleOrderExists проверяет занятость порядкового номера внутри курса.
func (r *CourseRepository) ModuleOrderExists(ctx context.Context, courseID string, order int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_modules WHERE course_id = $1 AND "order" = $2)`,
		courseID, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check module order: %w", err)
	}
	return exists, nil
}

// CreateLesson сохраняет новый урок модуля.
func (r *CourseRepository) CreateLesson(ctx context.Context, lesson *domain.CourseLesson) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO course_lessons (id, module_id, "order", title, description, pptx_url, homework_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		lesson.ID, lesson.ModuleID, lesson.Order, lesson.Title, lesson.Description, lesson.PptxURL, lesson.HomeworkURL, lesson.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

// GetLessonByID возвращает урок по ID.
func (r *CourseRepository) GetLessonByID(ctx context.Context, lessonID string) (*domain.CourseLesson, error) {
	var l domain.CourseLesson
	err := r.db.QueryRowContext(ctx, `
		SELECT id, module_id, "order", title, description, pptx_url, homework_url, created_at
		FROM course_lessons WHERE id = $1`, lessonID,
	).Scan(&l.ID, &l.ModuleID, &l.Order, &l.Title, &l.Description, &l.PptxURL, &l.HomeworkURL, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return &l, nil
}

// ListLessons возвращает уроки модуля в порядке следования.
func (r *CourseRepository) ListLessons(ctx context.Context, moduleID string) ([]*domain.CourseLesson, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, module_id, "order", title, description, pptx_url, homework_url, created_at
		FROM course_lessons WHERE module_id = $1 ORDER BY "order"`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*domain.CourseLesson{}
	for rows.Next() {
		var l domain.CourseLesson
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.Order, &l.Title, &l.Description, &l.PptxURL, &l.HomeworkURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, &l)
	}
	return lessons, rows.Err()
}

// LessonOrderExists проверяет занятость порядкового номера внутри модуля.
func (r *CourseRepository) LessonOrderExists(ctx context.Context, moduleID string, order int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_lessons WHERE module_id = $1 AND "order" = $2)`,
		moduleID, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson order: %w", err)
	}
	return exists, nil
}

// GetActiveTeacherAssignment возвращает активное закрепление преподавателя за курсом.
func (r *CourseRepository) GetActiveTeacherAssignment(ctx context.Context, teacherID, courseID string) (*domain.TeacherCourseAssignment, error) {
	var a domain.TeacherCourseAssignment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, teacher_id, course_id, assigned_by, assigned_at, status
		FROM teacher_course_assignments
		WHERE teacher_id = $1 AND course_id = $2 AND status = 'active'`,
		teacherID, courseID,
	).Scan(&a.ID, &a.TeacherID, &a.CourseID, &a.AssignedBy, &a.AssignedAt, &a.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeacherNotAssigned
		}
		return nil, fmt.Errorf("failed to get teacher assignment: %w", err)
	}
	return &a, nil
}

// CreateTeacherAssignment сохраняет закрепление преподавателя за курсом.
func (r *CourseRepository) CreateTeacherAssignment(ctx context.Context, assignment *domain.TeacherCourseAssignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teacher_course_assignments (id, teacher_id, course_id, assigned_by, assigned_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		assignment.ID, assignment.TeacherID, assignment.CourseID, assignment.AssignedBy, assignment.AssignedAt, assignment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create teacher assignment: %w", err)
	}
	return nil
}

// DeactivateTeacherAssignment переводит активное закрепление в inactive.
// Строка не удаляется.
func (r *CourseRepository) DeactivateTeacherAssignment(ctx context.Context, teacherID, courseID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE teacher_course_assignments SET status = 'inactive'
		WHERE teacher_id = $1 AND course_id = $2 AND status = 'active'`,
		teacherID, courseID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate teacher assignment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate teacher assignment: %w", err)
	}
	if affected == 0 {
		return domain.ErrTeacherNotAssigned
	}
	return nil
}

// ListCourseTeachers возвращает преподавателей с активным закреплением за курсом.
func (r *CourseRepository) ListCourseTeachers(ctx context.Context, courseID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixColumns("u", userColumns)+`
		FROM users u
		JOIN teacher_course_assignments tca ON tca.teacher_id = u.id
		WHERE tca.course_id = $1 AND tca.status = 'active'
		ORDER BY u.surname, u.name`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course teachers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListTeacherCourses возвращает курсы, за которыми закреплен преподаватель.
func (r *CourseRepository) ListTeacherCourses(ctx context.Context, teacherID string) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixColumns("c", courseColumns)+`
		FROM courses c
		JOIN teacher_course_assignments tca ON tca.course_id = c.id
		WHERE tca.teacher_id = $1 AND tca.status = 'active'
		ORDER BY c.name`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher courses: %w", err)
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// prefixColumns добавляет алиас таблицы к каждому имени колонки.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func collectUsers(rows *sql.Rows) ([]*domain.User, error) {
	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
