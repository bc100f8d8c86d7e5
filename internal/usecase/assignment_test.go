package usecase_test

import (
	"context"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAssignmentUseCase_CreateAssignment_Success(t *testing.T) {
	ctx := context.Background()
	assignmentRepo := &AssignmentRepository{}
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewAssignmentUseCase(assignmentRepo, courseRepo, userRepo, &StatsRepository{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	lesson := &domain.CourseLesson{ID: "l1"}

	userRepo.On("GetByID", ctx, "s1").Return(student, nil)
	courseRepo.On("GetLessonByID", ctx, "l1").Return(lesson, nil)
	assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.LessonAssignment")).Return(nil)

	assignment, err := uc.CreateAssignment(ctx, teacher, "s1", "l1", nil, "к пятнице")

	assert.NoError(t, err)
	assert.Equal(t, "s1", assignment.UserID)
	assert.Equal(t, "l1", assignment.LessonID)
	assert.Equal(t, "t1", assignment.AssignedBy)
	assert.Equal(t, domain.AssignmentStatusAssigned, assignment.Status)
	assert.Equal(t, "к пятнице", assignment.Note)
}

func TestAssignmentUseCase_CreateAssignment_Duplicate(t *testing.T) {
	ctx := context.Background()
	assignmentRepo := &AssignmentRepository{}
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewAssignmentUseCase(assignmentRepo, courseRepo, userRepo, &StatsRepository{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	userRepo.On("GetByID", ctx, "s1").Return(&domain.User{ID: "s1"}, nil)
	courseRepo.On("GetLessonByID", ctx, "l1").Return(&domain.CourseLesson{ID: "l1"}, nil)
	assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.LessonAssignment")).
		Return(domain.ErrAssignmentAlreadyExists)

	assignment, err := uc.CreateAssignment(ctx, teacher, "s1", "l1", nil, "")

	assert.ErrorIs(t, err, domain.ErrAssignmentAlreadyExists)
	assert.Nil(t, assignment)
}

func TestAssignmentUseCase_CreateAssignment_StudentForbidden(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAssignmentUseCase(&AssignmentRepository{}, &CourseRepository{}, &UserRepository{}, &StatsRepository{})

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	assignment, err := uc.CreateAssignment(ctx, student, "s2", "l1", nil, "")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, assignment)
}

func TestAssignmentUseCase_GetStudent_OnlyOwnStudents(t *testing.T) {
	ctx := context.Background()
	assignmentRepo := &AssignmentRepository{}
	uc := usecase.NewAssignmentUseCase(assignmentRepo, &CourseRepository{}, &UserRepository{}, &StatsRepository{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	students := []*domain.User{{ID: "s1"}, {ID: "s2"}}
	assignmentRepo.On("ListTeacherStudents", ctx, "t1").Return(students, nil)

	found, err := uc.GetStudent(ctx, teacher, "s2")
	assert.NoError(t, err)
	assert.Equal(t, "s2", found.ID)

	stranger, err := uc.GetStudent(ctx, teacher, "s3")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, stranger)
}

func TestAssignmentUseCase_GetDashboard_TeacherOnly(t *testing.T) {
	ctx := context.Background()
	statsRepo := &StatsRepository{}
	uc := usecase.NewAssignmentUseCase(&AssignmentRepository{}, &CourseRepository{}, &UserRepository{}, statsRepo)

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	dashboard := &domain.TeacherDashboard{CoursesCount: 2, StudentsCount: 5}
	statsRepo.On("GetTeacherDashboard", ctx, "t1").Return(dashboard, nil)

	result, err := uc.GetDashboard(ctx, teacher)
	assert.NoError(t, err)
	assert.Equal(t, dashboard, result)

	_, err = uc.GetDashboard(ctx, admin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
