package usecase_test

import (
	"context"
	"io"

	"skillmap-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) UpdateActiveStatus(ctx context.Context, userID string, active bool) (*domain.User, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *CourseRepository) GetCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *CourseRepository) GetCourseByName(ctx context.Context, name string) (*domain.Course, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *CourseRepository) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]*domain.Course, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *CourseRepository) ListCategories(ctx context.Context) ([]*domain.CourseCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CourseCategory), args.Error(1)
}

func (m *CourseRepository) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	args := m.Called(ctx, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *CourseRepository) DeleteCourse(ctx context.Context, courseID string) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

func (m *CourseRepository) CountCourseStudents(ctx context.Context, courseID string) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

func (m *CourseRepository) CreateModule(ctx context.Context, module *domain.CourseModule) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *CourseRepository) GetModuleByID(ctx context.Context, moduleID string) (*domain.CourseModule, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseModule), args.Error(1)
}

func (m *CourseRepository) ListModules(ctx context.Context, courseID string) ([]*domain.CourseModule, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CourseModule), args.Error(1)
}

func (m *CourseRepository) ModuleOrderExists(ctx context.Context, courseID string, order int) (bool, error) {
	args := m.Called(ctx, courseID, order)
	return args.Bool(0), args.Error(1)
}

func (m *CourseRepository) CreateLesson(ctx context.Context, lesson *domain.CourseLesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *CourseRepository) GetLessonByID(ctx context.Context, lessonID string) (*domain.CourseLesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CourseLesson), args.Error(1)
}

func (m *CourseRepository) ListLessons(ctx context.Context, moduleID string) ([]*domain.CourseLesson, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CourseLesson), args.Error(1)
}

func (m *CourseRepository) LessonOrderExists(ctx context.Context, moduleID string, order int) (bool, error) {
	args := m.Called(ctx, moduleID, order)
	return args.Bool(0), args.Error(1)
}

func (m *CourseRepository) GetActiveTeacherAssignment(ctx context.Context, teacherID, courseID string) (*domain.TeacherCourseAssignment, error) {
	args := m.Called(ctx, teacherID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherCourseAssignment), args.Error(1)
}

func (m *CourseRepository) CreateTeacherAssignment(ctx context.Context, assignment *domain.TeacherCourseAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *CourseRepository) DeactivateTeacherAssignment(ctx context.Context, teacherID, courseID string) error {
	args := m.Called(ctx, teacherID, courseID)
	return args.Error(0)
}

func (m *CourseRepository) ListCourseTeachers(ctx context.Context, courseID string) ([]*domain.User, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *CourseRepository) ListTeacherCourses(ctx context.Context, teacherID string) ([]*domain.Course, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

type ProgressRepository struct {
	mock.Mock
}

func (m *ProgressRepository) Create(ctx context.Context, progress *domain.UserCourseProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *ProgressRepository) GetByID(ctx context.Context, progressID string) (*domain.UserCourseProgress, error) {
	args := m.Called(ctx, progressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCourseProgress), args.Error(1)
}

func (m *ProgressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCourseProgress), args.Error(1)
}

func (m *ProgressRepository) GetFirstByUser(ctx context.Context, userID string) (*domain.UserCourseProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCourseProgress), args.Error(1)
}

func (m *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserCourseProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserCourseProgress), args.Error(1)
}

type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) Create(ctx context.Context, assignment *domain.LessonAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *AssignmentRepository) GetByID(ctx context.Context, assignmentID string) (*domain.LessonAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonAssignment), args.Error(1)
}

func (m *AssignmentRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*domain.LessonAssignment, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonAssignment), args.Error(1)
}

func (m *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string, filter domain.AssignmentFilter) ([]*domain.AssignmentInfo, error) {
	args := m.Called(ctx, teacherID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssignmentInfo), args.Error(1)
}

func (m *AssignmentRepository) ListTeacherStudents(ctx context.Context, teacherID string) ([]*domain.User, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *AssignmentRepository) UpdateStatus(ctx context.Context, assignmentID, status string) error {
	args := m.Called(ctx, assignmentID, status)
	return args.Error(0)
}

type SubmissionRepository struct {
	mock.Mock
}

func (m *SubmissionRepository) CreateAndMarkSubmitted(ctx context.Context, submission *domain.LessonSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *SubmissionRepository) GetByID(ctx context.Context, submissionID string) (*domain.LessonSubmission, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonSubmission), args.Error(1)
}

func (m *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]*domain.LessonSubmission, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LessonSubmission), args.Error(1)
}

func (m *SubmissionRepository) UpdateReview(ctx context.Context, submissionID, status string, grade *float64, feedback string) (*domain.LessonSubmission, error) {
	args := m.Called(ctx, submissionID, status, grade, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonSubmission), args.Error(1)
}

type VacancyRepository struct {
	mock.Mock
}

func (m *VacancyRepository) List(ctx context.Context, search string, limit int) ([]*domain.Vacancy, error) {
	args := m.Called(ctx, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vacancy), args.Error(1)
}

type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Upsert(ctx context.Context, schedule *domain.TeacherSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *ScheduleRepository) GetByTeacher(ctx context.Context, teacherID string) (*domain.TeacherSchedule, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherSchedule), args.Error(1)
}

func (m *ScheduleRepository) Delete(ctx context.Context, teacherID string) error {
	args := m.Called(ctx, teacherID)
	return args.Error(0)
}

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) GetTeacherStats(ctx context.Context, teacherID string) (*domain.TeacherStats, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherStats), args.Error(1)
}

func (m *StatsRepository) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

func (m *StatsRepository) GetTeacherDashboard(ctx context.Context, teacherID string) (*domain.TeacherDashboard, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherDashboard), args.Error(1)
}

func (m *StatsRepository) CountTeacherCourses(ctx context.Context, teacherID string) (int, error) {
	args := m.Called(ctx, teacherID)
	return args.Int(0), args.Error(1)
}

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Save(filename string, r io.Reader) (string, error) {
	args := m.Called(filename, r)
	return args.String(0), args.Error(1)
}

func (m *BlobStore) Open(name string) (io.ReadCloser, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *BlobStore) Remove(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}
