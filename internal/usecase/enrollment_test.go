package usecase_test

import (
	"context"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEnrollmentUseCase_Enroll_NewProgress(t *testing.T) {
	ctx := context.Background()
	progressRepo := &ProgressRepository{}
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewEnrollmentUseCase(progressRepo, courseRepo, userRepo)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	course := &domain.Course{ID: "c1", Name: "Go с нуля"}

	userRepo.On("GetByID", ctx, "s1").Return(student, nil)
	courseRepo.On("GetCourseByName", ctx, "Go с нуля").Return(course, nil)
	progressRepo.On("GetByUserAndCourse", ctx, "s1", "c1").Return(nil, domain.ErrProgressNotFound)
	progressRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserCourseProgress")).Return(nil)

	progress, created, err := uc.Enroll(ctx, admin, "s1", "Go с нуля", "")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "s1", progress.UserID)
	assert.Equal(t, "c1", progress.CourseID)
}

func TestEnrollmentUseCase_Enroll_Idempotent(t *testing.T) {
	ctx := context.Background()
	progressRepo := &ProgressRepository{}
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewEnrollmentUseCase(progressRepo, courseRepo, userRepo)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	course := &domain.Course{ID: "c1", Name: "Go с нуля"}
	existing := &domain.UserCourseProgress{ID: "p1", UserID: "s1", CourseID: "c1", ProgressPercent: 40}

	userRepo.On("GetByID", ctx, "s1").Return(student, nil)
	courseRepo.On("GetCourseByName", ctx, "Go с нуля").Return(course, nil)
	progressRepo.On("GetByUserAndCourse", ctx, "s1", "c1").Return(existing, nil)

	progress, created, err := uc.Enroll(ctx, admin, "s1", "Go с нуля", "")

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, progress)
	progressRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnrollmentUseCase_Enroll_CreatesMissingCourse(t *testing.T) {
	ctx := context.Background()
	progressRepo := &ProgressRepository{}
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewEnrollmentUseCase(progressRepo, courseRepo, userRepo)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}

	userRepo.On("GetByID", ctx, "s1").Return(student, nil)
	courseRepo.On("GetCourseByName", ctx, "Новый курс").Return(nil, domain.ErrCourseNotFound)
	courseRepo.On("CreateCourse", ctx, mock.MatchedBy(func(c *domain.Course) bool {
		return c.Name == "Новый курс" && c.Category == "frontend" && c.CategoryName == "Frontend-разработка"
	})).Return(nil)
	progressRepo.On("GetByUserAndCourse", ctx, "s1", mock.AnythingOfType("string")).Return(nil, domain.ErrProgressNotFound)
	progressRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserCourseProgress")).Return(nil)

	progress, created, err := uc.Enroll(ctx, admin, "s1", "Новый курс", "frontend")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, progress.CourseID)
}

func TestEnrollmentUseCase_Enroll_NonAdminForbidden(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewEnrollmentUseCase(&ProgressRepository{}, &CourseRepository{}, &UserRepository{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	progress, created, err := uc.Enroll(ctx, teacher, "s1", "Go с нуля", "")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, created)
	assert.Nil(t, progress)
}

func TestEnrollmentUseCase_GetMyProgress(t *testing.T) {
	ctx := context.Background()
	progressRepo := &ProgressRepository{}
	uc := usecase.NewEnrollmentUseCase(progressRepo, &CourseRepository{}, &UserRepository{})

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}
	progressRepo.On("GetFirstByUser", ctx, "s1").Return(progress, nil)

	result, err := uc.GetMyProgress(ctx, student)

	assert.NoError(t, err)
	assert.Equal(t, progress, result)
}
