package domain

import (
	"context"
	"time"
)

// Статусы закрепления преподавателя за курсом.
const (
	TeacherAssignmentActive   = "active"
	TeacherAssignmentInactive = "inactive"
)

// Course представляет курс — корень дерева контента.
type Course struct {
	ID            string
	Name          string
	Description   string
	Category      string
	CategoryName  string
	CategoryColor string
	Icon          string
	Duration      string
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CourseModule представляет модуль курса. Порядок уникален внутри курса.
type CourseModule struct {
	ID              string
	CourseID        string
	Order           int
	Title           string
	Description     string
	RecommendedTime string
	CreatedAt       time.Time
}

// CourseLesson представляет урок модуля. Порядок уникален внутри модуля.
type CourseLesson struct {
	ID          string
	ModuleID    string
	Order       int
	Title       string
	Description string
	PptxURL     string
	HomeworkURL string
	CreatedAt   time.Time
}

// CourseCategory представляет категорию каталога с числом курсов в ней.
type CourseCategory struct {
	Category      string
	CategoryName  string
	CategoryColor string
	CourseCount   int
}

// TeacherCourseAssignment закрепляет преподавателя за курсом.
// Снятие — перевод статуса в inactive, строка не удаляется.
type TeacherCourseAssignment struct {
	ID         string
	TeacherID  string
	CourseID   string
	AssignedBy string
	AssignedAt time.Time
	Status     string
}

// CourseFilter задает параметры выборки курсов каталога.
type CourseFilter struct {
	Category   string
	Search     string
	PublicOnly bool
}

// CourseRepository определяет контракт для работы с деревом контента курсов.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetCourseByID(ctx context.Context, courseID string) (*Course, error)
	GetCourseByName(ctx context.Context, name string) (*Course, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)
	ListCategories(ctx context.Context) ([]*CourseCategory, error)
	UpdateCourse(ctx context.Context, course *Course) (*Course, error)
	DeleteCourse(ctx context.Context, courseID string) error
	CountCourseStudents(ctx context.Context, courseID string) (int, error)

	CreateModule(ctx context.Context, module *CourseModule) error
	GetModuleByID(ctx context.Context, moduleID string) (*CourseModule, error)
	ListModules(ctx context.Context, courseID string) ([]*CourseModule, error)
	ModuleOrderExists(ctx context.Context, courseID string, order int) (bool, error)

	CreateLesson(ctx context.Context, lesson *CourseLesson) error
	GetLessonByID(ctx context.Context, lessonID string) (*CourseLesson, error)
	ListLessons(ctx context.Context, moduleID string) ([]*CourseLesson, error)
	LessonOrderExists(ctx context.Context, moduleID string, order int) (bool, error)

	GetActiveTeacherAssignment(ctx context.Context, teacherID, courseID string) (*TeacherCourseAssignment, error)
	CreateTeacherAssignment(ctx context.Context, assignment *TeacherCourseAssignment) error
	DeactivateTeacherAssignment(ctx context.Context, teacherID, courseID string) error
	ListCourseTeachers(ctx context.Context, courseID string) ([]*User, error)
	ListTeacherCourses(ctx context.Context, teacherID string) ([]*Course, error)
}
