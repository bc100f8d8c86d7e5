package domain

import (
	"context"
	"io"
	"time"
)

// FileUpload — загружаемый файл из multipart-запроса.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// RegisterInput — данные регистрации нового пользователя.
type RegisterInput struct {
	Email      string
	Password   string
	Phone      *string
	Surname    string
	Name       string
	Patronymic string
}

// CreateTeacherInput — данные создания преподавателя администратором.
type CreateTeacherInput struct {
	RegisterInput
	Department   string
	Title        string
	Bio          string
	Specialties  []string
	OfficeHours  string
	HoursPerWeek int
}

// UpdateProfileInput — частичное обновление профиля, nil-поля не трогаются.
type UpdateProfileInput struct {
	Surname      *string
	Name         *string
	Patronymic   *string
	Phone        *string
	Password     *string
	Department   *string
	Title        *string
	Bio          *string
	Specialties  []string
	OfficeHours  *string
	HoursPerWeek *int
	AdvisorID    *string
}

// CreateCourseInput — данные создания курса.
type CreateCourseInput struct {
	Name          string
	Description   string
	Category      string
	CategoryName  string
	CategoryColor string
	Icon          string
	Duration      string
	IsPublic      *bool
}

// UpdateCourseInput — частичное обновление курса.
type UpdateCourseInput struct {
	Name          *string
	Description   *string
	Category      *string
	CategoryName  *string
	CategoryColor *string
	Icon          *string
	Duration      *string
	IsPublic      *bool
}

// CreateModuleInput — данные создания модуля курса.
type CreateModuleInput struct {
	Order           int
	Title           string
	Description     string
	RecommendedTime string
}

// CreateLessonInput — данные создания урока, файлы опциональны.
type CreateLessonInput struct {
	Order        int
	Title        string
	Description  string
	PptxFile     *FileUpload
	HomeworkFile *FileUpload
}

// GradeInput — решение преподавателя по сдаче.
type GradeInput struct {
	Status   string
	Grade    *float64
	Feedback string
}

// ModuleTree — модуль с вложенными уроками.
type ModuleTree struct {
	Module  *CourseModule
	Lessons []*CourseLesson
}

// CourseTree — курс с полным деревом модулей и уроков.
type CourseTree struct {
	Course       *Course
	Modules      []*ModuleTree
	TotalModules int
	TotalLessons int
}

// AuthUseCase определяет бизнес-логику регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// UserUseCase определяет бизнес-логику для работы с пользователями.
type UserUseCase interface {
	GetUser(ctx context.Context, actor *User, userID string) (*User, error)
	ListUsers(ctx context.Context, actor *User, filter UserFilter) ([]*User, error)
	ChangeRole(ctx context.Context, actor *User, userID, newRole string) (*User, error)
	SetActive(ctx context.Context, actor *User, userID string, active bool) (*User, error)
	UpdateProfile(ctx context.Context, actor *User, userID string, input UpdateProfileInput) (*User, error)
	DeleteUser(ctx context.Context, actor *User, userID string) error
}

// TeacherUseCase определяет бизнес-логику справочника преподавателей.
type TeacherUseCase interface {
	CreateTeacher(ctx context.Context, actor *User, input CreateTeacherInput) (*User, error)
	ListTeachers(ctx context.Context, actor *User, search string, activeOnly bool) ([]*User, error)
	GetTeacher(ctx context.Context, actor *User, teacherID string) (*User, error)
	UpdateTeacher(ctx context.Context, actor *User, teacherID string, input UpdateProfileInput) (*User, error)
	DeleteTeacher(ctx context.Context, actor *User, teacherID string) error
	GetTeacherStats(ctx context.Context, actor *User, teacherID string) (*TeacherStats, error)
}

// CourseUseCase определяет бизнес-логику дерева контента курсов.
type CourseUseCase interface {
	CreateCourse(ctx context.Context, actor *User, input CreateCourseInput) (*Course, error)
	UpdateCourse(ctx context.Context, actor *User, courseID string, input UpdateCourseInput) (*Course, error)
	DeleteCourse(ctx context.Context, actor *User, courseID string) error
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	GetCourseFull(ctx context.Context, courseID string) (*CourseTree, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)
	ListCategories(ctx context.Context) ([]*CourseCategory, error)
	ListModules(ctx context.Context, courseID string) ([]*CourseModule, error)
	ListLessons(ctx context.Context, moduleID string) ([]*CourseLesson, error)
	AddModule(ctx context.Context, actor *User, courseID string, input CreateModuleInput) (*CourseModule, error)
	AddLesson(ctx context.Context, actor *User, courseID, moduleID string, input CreateLessonInput) (*CourseLesson, error)
	AssignTeacher(ctx context.Context, actor *User, courseID, teacherID string) (*TeacherCourseAssignment, error)
	UnassignTeacher(ctx context.Context, actor *User, courseID, teacherID string) error
	ListCourseTeachers(ctx context.Context, courseID string) ([]*User, error)
	ListAvailableTeachers(ctx context.Context, actor *User, courseID string) ([]*User, error)
}

// EnrollmentUseCase определяет бизнес-логику зачисления и прогресса.
type EnrollmentUseCase interface {
	Enroll(ctx context.Context, actor *User, userID, courseName, category string) (*UserCourseProgress, bool, error)
	GetMyProgress(ctx context.Context, actor *User) (*UserCourseProgress, error)
}

// AssignmentUseCase определяет бизнес-логику назначений уроков.
type AssignmentUseCase interface {
	CreateAssignment(ctx context.Context, actor *User, studentID, lessonID string, dueDate *time.Time, note string) (*LessonAssignment, error)
	ListTeacherAssignments(ctx context.Context, actor *User, filter AssignmentFilter) ([]*AssignmentInfo, error)
	GetDashboard(ctx context.Context, actor *User) (*TeacherDashboard, error)
	ListStudents(ctx context.Context, actor *User) ([]*User, error)
	GetStudent(ctx context.Context, actor *User, studentID string) (*User, error)
}

// SubmissionUseCase определяет бизнес-логику сдачи и проверки работ.
type SubmissionUseCase interface {
	SubmitFile(ctx context.Context, actor *User, progressID, lessonID string, file FileUpload) (*LessonSubmission, error)
	Grade(ctx context.Context, actor *User, submissionID string, input GradeInput) (*LessonSubmission, error)
	ListByAssignment(ctx context.Context, actor *User, assignmentID string) ([]*LessonSubmission, error)
}

// VacancyUseCase определяет бизнес-логику вакансий и рекомендаций.
type VacancyUseCase interface {
	ListVacancies(ctx context.Context, search string, limit int) ([]*Vacancy, error)
	Analyze(ctx context.Context, title string, links []string, level string) (*VacancyAnalysis, error)
}

// ScheduleUseCase определяет бизнес-логику расписаний преподавателей.
type ScheduleUseCase interface {
	SetSchedule(ctx context.Context, actor *User, schedule *TeacherSchedule) error
	GetSchedule(ctx context.Context, teacherID string) (*TeacherSchedule, error)
	ClearSchedule(ctx context.Context, actor *User, teacherID string) error
}

// StatsUseCase определяет бизнес-логику сводной статистики.
type StatsUseCase interface {
	GetAdminStats(ctx context.Context, actor *User) (*AdminStats, error)
}
