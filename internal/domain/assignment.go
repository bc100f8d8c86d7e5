package domain

import (
	"context"
	"time"
)

// Статусы назначения урока. Переходы: assigned → submitted → reviewed → closed.
const (
	AssignmentStatusAssigned  = "assigned"
	AssignmentStatusSubmitted = "submitted"
	AssignmentStatusReviewed  = "reviewed"
	AssignmentStatusClosed    = "closed"
)

// LessonAssignment — назначение урока ученику преподавателем.
// Пара (user, lesson) уникальна; при первой сдаче без назначения
// создается самоназначение (assigned_by = сам ученик).
type LessonAssignment struct {
	ID         string
	UserID     string
	LessonID   string
	AssignedBy string
	AssignedAt time.Time
	DueDate    *time.Time
	Status     string
	Note       string
}

// AssignmentInfo — назначение с присоединенными данными урока и ученика.
type AssignmentInfo struct {
	Assignment  *LessonAssignment
	LessonTitle string
	StudentName string
}

// AssignmentFilter задает параметры выборки назначений преподавателя.
type AssignmentFilter struct {
	Status    string
	StudentID string
}

// TeacherDashboard — сводка по работе преподавателя.
type TeacherDashboard struct {
	CoursesCount     int
	StudentsCount    int
	AssignmentsCount int
	SubmittedCount   int
	AvgProgress      float64
	RecentActivity   []*ActivityItem
}

// ActivityItem — событие ленты активности (назначение или сдача за последние дни).
type ActivityItem struct {
	Kind        string
	StudentName string
	LessonTitle string
	Status      string
	OccurredAt  time.Time
}

// AssignmentRepository определяет контракт для работы с назначениями уроков.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *LessonAssignment) error
	GetByID(ctx context.Context, assignmentID string) (*LessonAssignment, error)
	GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*LessonAssignment, error)
	ListByTeacher(ctx context.Context, teacherID string, filter AssignmentFilter) ([]*AssignmentInfo, error)
	ListTeacherStudents(ctx context.Context, teacherID string) ([]*User, error)
	UpdateStatus(ctx context.Context, assignmentID, status string) error
}
