package domain

import "context"

// TeacherStats — агрегированная статистика преподавателя.
type TeacherStats struct {
	TeacherID        string
	FullName         string
	Email            string
	CoursesCount     int
	StudentsCount    int
	AssignmentsCount int
	AvgRating        float64
	Department       string
	Title            string
	HireDate         string
	Active           bool
}

// AdminStats — сводные счетчики системы для панели администратора.
type AdminStats struct {
	TotalUsers       int
	ActiveUsers      int
	UsersByRole      map[string]int
	TotalCourses     int
	TotalEnrollments int
	TotalAssignments int
}

// StatsRepository определяет контракт для работы со статистикой.
type StatsRepository interface {
	GetTeacherStats(ctx context.Context, teacherID string) (*TeacherStats, error)
	GetAdminStats(ctx context.Context) (*AdminStats, error)
	GetTeacherDashboard(ctx context.Context, teacherID string) (*TeacherDashboard, error)
	CountTeacherCourses(ctx context.Context, teacherID string) (int, error)
}
