package usecase_test

import (
	"context"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCourseUseCase_CreateCourse_CategoryPreset(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	courseRepo.On("GetCourseByName", ctx, "Go с нуля").Return(nil, domain.ErrCourseNotFound)
	courseRepo.On("CreateCourse", ctx, mock.AnythingOfType("*domain.Course")).Return(nil)

	course, err := uc.CreateCourse(ctx, admin, domain.CreateCourseInput{
		Name:     "Go с нуля",
		Category: "backend",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Backend-разработка", course.CategoryName)
	assert.Equal(t, "#059669", course.CategoryColor)
	assert.Equal(t, "Курс 'Go с нуля'", course.Description)
	assert.True(t, course.IsPublic)
}

func TestCourseUseCase_CreateCourse_UnknownCategoryDefaults(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	courseRepo.On("GetCourseByName", ctx, "Основы геодезии").Return(nil, domain.ErrCourseNotFound)
	courseRepo.On("CreateCourse", ctx, mock.AnythingOfType("*domain.Course")).Return(nil)

	course, err := uc.CreateCourse(ctx, admin, domain.CreateCourseInput{
		Name:     "Основы геодезии",
		Category: "geodesy",
	})

	assert.NoError(t, err)
	assert.Equal(t, "IT", course.CategoryName)
	assert.Equal(t, "#1A535C", course.CategoryColor)
}

func TestCourseUseCase_CreateCourse_NameTaken(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	existing := &domain.Course{ID: "c1", Name: "Go с нуля"}
	courseRepo.On("GetCourseByName", ctx, "Go с нуля").Return(existing, nil)

	course, err := uc.CreateCourse(ctx, admin, domain.CreateCourseInput{Name: "Go с нуля"})

	assert.ErrorIs(t, err, domain.ErrCourseNameTaken)
	assert.Nil(t, course)
}

func TestCourseUseCase_DeleteCourse_WithStudentsBlocked(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	course := &domain.Course{ID: "c1", Name: "Go с нуля"}
	courseRepo.On("GetCourseByID", ctx, "c1").Return(course, nil)
	courseRepo.On("CountCourseStudents", ctx, "c1").Return(3, nil)

	err := uc.DeleteCourse(ctx, admin, "c1")

	assert.ErrorIs(t, err, domain.ErrCourseHasStudents)
	courseRepo.AssertNotCalled(t, "DeleteCourse", mock.Anything, mock.Anything)
}

func TestCourseUseCase_AddModule_OrderTaken(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	course := &domain.Course{ID: "c1"}
	courseRepo.On("GetCourseByID", ctx, "c1").Return(course, nil)
	courseRepo.On("ModuleOrderExists", ctx, "c1", 1).Return(true, nil)

	module, err := uc.AddModule(ctx, admin, "c1", domain.CreateModuleInput{Order: 1, Title: "Введение"})

	assert.ErrorIs(t, err, domain.ErrModuleOrderTaken)
	assert.Nil(t, module)
}

func TestCourseUseCase_AddModule_InvalidOrder(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCourseUseCase(&CourseRepository{}, &UserRepository{}, &BlobStore{})

	module, err := uc.AddModule(ctx, admin, "c1", domain.CreateModuleInput{Order: 0, Title: "Введение"})

	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Nil(t, module)
}

func TestCourseUseCase_AddLesson_UnassignedTeacherForbidden(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	module := &domain.CourseModule{ID: "m1", CourseID: "c1"}
	courseRepo.On("GetModuleByID", ctx, "m1").Return(module, nil)
	courseRepo.On("GetActiveTeacherAssignment", ctx, "t1", "c1").Return(nil, domain.ErrTeacherNotAssigned)

	lesson, err := uc.AddLesson(ctx, teacher, "c1", "m1", domain.CreateLessonInput{Order: 1, Title: "Урок 1"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, lesson)
}

func TestCourseUseCase_AddLesson_ModuleFromAnotherCourse(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	module := &domain.CourseModule{ID: "m1", CourseID: "other"}
	courseRepo.On("GetModuleByID", ctx, "m1").Return(module, nil)

	lesson, err := uc.AddLesson(ctx, admin, "c1", "m1", domain.CreateLessonInput{Order: 1, Title: "Урок 1"})

	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	assert.Nil(t, lesson)
}

func TestCourseUseCase_AddLesson_CleansPptxWhenHomeworkFails(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	blobs := &BlobStore{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, blobs)

	module := &domain.CourseModule{ID: "m1", CourseID: "c1"}
	courseRepo.On("GetModuleByID", ctx, "m1").Return(module, nil)
	courseRepo.On("LessonOrderExists", ctx, "m1", 1).Return(false, nil)
	blobs.On("Save", "slides.pdf", mock.Anything).Return("/uploads/slides.pdf", nil)
	blobs.On("Save", "hw.exe", mock.Anything).Return("", domain.ErrUnsupportedFileType)
	blobs.On("Remove", "/uploads/slides.pdf").Return(nil)

	lesson, err := uc.AddLesson(ctx, admin, "c1", "m1", domain.CreateLessonInput{
		Order:        1,
		Title:        "Урок 1",
		PptxFile:     &domain.FileUpload{Filename: "slides.pdf"},
		HomeworkFile: &domain.FileUpload{Filename: "hw.exe"},
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.Nil(t, lesson)
	blobs.AssertCalled(t, "Remove", "/uploads/slides.pdf")
	courseRepo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
}

func TestCourseUseCase_AssignTeacher_AlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, userRepo, &BlobStore{})

	course := &domain.Course{ID: "c1"}
	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	active := &domain.TeacherCourseAssignment{ID: "a1", Status: domain.TeacherAssignmentActive}

	courseRepo.On("GetCourseByID", ctx, "c1").Return(course, nil)
	userRepo.On("GetByID", ctx, "t1").Return(teacher, nil)
	courseRepo.On("GetActiveTeacherAssignment", ctx, "t1", "c1").Return(active, nil)

	assignment, err := uc.AssignTeacher(ctx, admin, "c1", "t1")

	assert.ErrorIs(t, err, domain.ErrTeacherAlreadyAssigned)
	assert.Nil(t, assignment)
}

func TestCourseUseCase_AssignTeacher_NotATeacher(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, userRepo, &BlobStore{})

	course := &domain.Course{ID: "c1"}
	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}

	courseRepo.On("GetCourseByID", ctx, "c1").Return(course, nil)
	userRepo.On("GetByID", ctx, "s1").Return(student, nil)

	assignment, err := uc.AssignTeacher(ctx, admin, "c1", "s1")

	assert.ErrorIs(t, err, domain.ErrTeacherNotFound)
	assert.Nil(t, assignment)
}

func TestCourseUseCase_ListAvailableTeachers_ExcludesAssigned(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	userRepo := &UserRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, userRepo, &BlobStore{})

	assigned := []*domain.User{{ID: "t1", Role: domain.RoleTeacher}}
	all := []*domain.User{
		{ID: "t1", Role: domain.RoleTeacher},
		{ID: "t2", Role: domain.RoleTeacher},
	}

	courseRepo.On("ListCourseTeachers", ctx, "c1").Return(assigned, nil)
	userRepo.On("List", ctx, mock.AnythingOfType("domain.UserFilter")).Return(all, nil)

	available, err := uc.ListAvailableTeachers(ctx, admin, "c1")

	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, "t2", available[0].ID)
}

func TestCourseUseCase_GetCourseFull_CountsTotals(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewCourseUseCase(courseRepo, &UserRepository{}, &BlobStore{})

	course := &domain.Course{ID: "c1", Name: "Go с нуля"}
	modules := []*domain.CourseModule{
		{ID: "m1", CourseID: "c1", Order: 1},
		{ID: "m2", CourseID: "c1", Order: 2},
	}

	courseRepo.On("GetCourseByID", ctx, "c1").Return(course, nil)
	courseRepo.On("ListModules", ctx, "c1").Return(modules, nil)
	courseRepo.On("ListLessons", ctx, "m1").Return([]*domain.CourseLesson{{ID: "l1"}, {ID: "l2"}}, nil)
	courseRepo.On("ListLessons", ctx, "m2").Return([]*domain.CourseLesson{{ID: "l3"}}, nil)

	tree, err := uc.GetCourseFull(ctx, "c1")

	assert.NoError(t, err)
	assert.Equal(t, 2, tree.TotalModules)
	assert.Equal(t, 3, tree.TotalLessons)
	assert.Len(t, tree.Modules, 2)
}
