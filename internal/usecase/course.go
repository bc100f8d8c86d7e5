package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// defaultCategoryColor — цвет категории, когда она не входит в известный набор.
const defaultCategoryColor = "#1A535C"

// categoryPresets — известные категории каталога: имя и цвет.
var categoryPresets = map[string]struct {
	Name  string
	Color string
}{
	"frontend":  {"Frontend-разработка", "#4F46E5"},
	"backend":   {"Backend-разработка", "#059669"},
	"qa":        {"Тестирование (QA)", "#DC2626"},
	"devops":    {"DevOps", "#7C3AED"},
	"ml":        {"Машинное обучение", "#DB2777"},
	"analytics": {"Аналитика", "#0891B2"},
	"it":        {"IT", "#1A535C"},
}

// CourseUseCase реализует бизнес-логику дерева контента курсов.
type CourseUseCase struct {
	courseRepo domain.CourseRepository
	userRepo   domain.UserRepository
	blobs      domain.BlobStore
}

// NewCourseUseCase создает новый экземпляр CourseUseCase.
func NewCourseUseCase(courseRepo domain.CourseRepository, userRepo domain.UserRepository, blobs domain.BlobStore) domain.CourseUseCase {
	return &CourseUseCase{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		blobs:      blobs,
	}
}

// CreateCourse создает курс. Имя курса — ключ уникальности.
func (uc *CourseUseCase) CreateCourse(ctx context.Context, actor *domain.User, input domain.CreateCourseInput) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	// 1. Проверяем уникальность имени
	_, err := uc.courseRepo.GetCourseByName(ctx, input.Name)
	if err == nil {
		return nil, domain.ErrCourseNameTaken
	}
	if !errors.Is(err, domain.ErrCourseNotFound) {
		return nil, err
	}

	// 2. Подставляем имя и цвет категории из пресетов
	categoryName, categoryColor := resolveCategory(input.Category)
	if input.CategoryName != "" {
		categoryName = input.CategoryName
	}
	if input.CategoryColor != "" {
		categoryColor = input.CategoryColor
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	now := time.Now()
	course := &domain.Course{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Description:   orDefault(input.Description, fmt.Sprintf("Курс '%s'", input.Name)),
		Category:      orDefault(input.Category, "it"),
		CategoryName:  categoryName,
		CategoryColor: categoryColor,
		Icon:          input.Icon,
		Duration:      input.Duration,
		IsPublic:      isPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// UpdateCourse частично обновляет курс. Только для администратора.
func (uc *CourseUseCase) UpdateCourse(ctx context.Context, actor *domain.User, courseID string, input domain.UpdateCourseInput) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	course, err := uc.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != course.Name {
		_, err := uc.courseRepo.GetCourseByName(ctx, *input.Name)
		if err == nil {
			return nil, domain.ErrCourseNameTaken
		}
		if !errors.Is(err, domain.ErrCourseNotFound) {
			return nil, err
		}
		course.Name = *input.Name
	}

	applyString(&course.Description, input.Description)
	applyString(&course.Category, input.Category)
	applyString(&course.CategoryName, input.CategoryName)
	applyString(&course.CategoryColor, input.CategoryColor)
	applyString(&course.Icon, input.Icon)
	applyString(&course.Duration, input.Duration)
	if input.IsPublic != nil {
		course.IsPublic = *input.IsPublic
	}

	return uc.courseRepo.UpdateCourse(ctx, course)
}

// DeleteCourse удаляет курс. Курс с зачисленными студентами удалить нельзя.
func (uc *CourseUseCase) DeleteCourse(ctx context.Context, actor *domain.User, courseID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := uc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return err
	}

	students, err := uc.courseRepo.CountCourseStudents(ctx, courseID)
	if err != nil {
		return err
	}
	if students > 0 {
		return domain.ErrCourseHasStudents
	}

	return uc.courseRepo.DeleteCourse(ctx, courseID)
}

// GetCourse возвращает курс по ID.
func (uc *CourseUseCase) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	return uc.courseRepo.GetCourseByID(ctx, courseID)
}

// GetCourseFull возвращает курс с полным деревом модулей и уроков.
func (uc *CourseUseCase) GetCourseFull(ctx context.Context, courseID string) (*domain.CourseTree, error) {
	course, err := uc.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	modules, err := uc.courseRepo.ListModules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	tree := &domain.CourseTree{Course: course, TotalModules: len(modules)}
	for _, module := range modules {
		lessons, err := uc.courseRepo.ListLessons(ctx, module.ID)
		if err != nil {
			return nil, err
		}
		tree.TotalLessons += len(lessons)
		tree.Modules = append(tree.Modules, &domain.ModuleTree{Module: module, Lessons: lessons})
	}

	return tree, nil
}

// ListCourses возвращает курсы каталога по фильтру.
func (uc *CourseUseCase) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]*domain.Course, error) {
	return uc.courseRepo.ListCourses(ctx, filter)
}

// ListCategories возвращает категории каталога с числом курсов.
func (uc *CourseUseCase) ListCategories(ctx context.Context) ([]*domain.CourseCategory, error) {
	return uc.courseRepo.ListCategories(ctx)
}

// ListModules возвращает модули курса.
func (uc *CourseUseCase) ListModules(ctx context.Context, courseID string) ([]*domain.CourseModule, error) {
	if _, err := uc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courseRepo.ListModules(ctx, courseID)
}

// ListLessons возвращает уроки модуля.
func (uc *CourseUseCase) ListLessons(ctx context.Context, moduleID string) ([]*domain.CourseLesson, error) {
	if _, err := uc.courseRepo.GetModuleByID(ctx, moduleID); err != nil {
		return nil, err
	}
	return uc.courseRepo.ListLessons(ctx, moduleID)
}

// AddModule добавляет модуль в курс. Порядковый номер уникален внутри курса.
func (uc *CourseUseCase) AddModule(ctx context.Context, actor *domain.User, courseID string, input domain.CreateModuleInput) (*domain.CourseModule, error) {
	if !actor.HasRole(domain.RoleAdmin, domain.RoleTeacher) {
		return nil, domain.ErrForbidden
	}
	if input.Order <= 0 {
		return nil, domain.ErrInvalidOrder
	}

	// 1. Курс должен существовать
	if _, err := uc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	// 2. Порядковый номер не должен быть занят
	taken, err := uc.courseRepo.ModuleOrderExists(ctx, courseID, input.Order)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrModuleOrderTaken
	}

	module := &domain.CourseModule{
		ID:              uuid.NewString(),
		CourseID:        courseID,
		Order:           input.Order,
		Title:           input.Title,
		Description:     input.Description,
		RecommendedTime: input.RecommendedTime,
		CreatedAt:       time.Now(),
	}

	if err := uc.courseRepo.CreateModule(ctx, module); err != nil {
		return nil, err
	}

	return module, nil
}

// AddLesson добавляет урок в модуль курса, сохраняя приложенные файлы.
// Порядковый номер уникален внутри модуля.
func (uc *CourseUseCase) AddLesson(ctx context.Context, actor *domain.User, courseID, moduleID string, input domain.CreateLessonInput) (*domain.CourseLesson, error) {
	if !actor.HasRole(domain.RoleAdmin, domain.RoleTeacher) {
		return nil, domain.ErrForbidden
	}
	if input.Order <= 0 {
		return nil, domain.ErrInvalidOrder
	}

	// 1. Модуль должен существовать и принадлежать курсу
	module, err := uc.courseRepo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.CourseID != courseID {
		return nil, domain.ErrModuleNotFound
	}

	// 2. Преподаватель должен быть закреплен за курсом
	if actor.Role == domain.RoleTeacher {
		if _, err := uc.courseRepo.GetActiveTeacherAssignment(ctx, actor.ID, courseID); err != nil {
			if errors.Is(err, domain.ErrTeacherNotAssigned) {
				return nil, domain.ErrForbidden
			}
			return nil, err
		}
	}

	// 3. Порядковый номер не должен быть занят
	taken, err := uc.courseRepo.LessonOrderExists(ctx, moduleID, input.Order)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrLessonOrderTaken
	}

	// 4. Сохраняем приложенные файлы
	var pptxURL, homeworkURL string
	if input.PptxFile != nil {
		pptxURL, err = uc.blobs.Save(input.PptxFile.Filename, input.PptxFile.Content)
		if err != nil {
			return nil, err
		}
	}
	if input.HomeworkFile != nil {
		homeworkURL, err = uc.blobs.Save(input.HomeworkFile.Filename, input.HomeworkFile.Content)
		if err != nil {
			if pptxURL != "" {
				_ = uc.blobs.Remove(pptxURL)
			}
			return nil, err
		}
	}

	lesson := &domain.CourseLesson{
		ID:          uuid.NewString(),
		ModuleID:    moduleID,
		Order:       input.Order,
		Title:       input.Title,
		Description: input.Description,
		PptxURL:     pptxURL,
		HomeworkURL: homeworkURL,
		CreatedAt:   time.Now(),
	}

	if err := uc.courseRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// AssignTeacher закрепляет преподавателя за курсом. Только для администратора.
func (uc *CourseUseCase) AssignTeacher(ctx context.Context, actor *domain.User, courseID, teacherID string) (*domain.TeacherCourseAssignment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	// 1. Курс и преподаватель должны существовать
	if _, err := uc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	teacher, err := uc.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, domain.ErrTeacherNotFound
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, domain.ErrTeacherNotFound
	}

	// 2. Активное закрепление может быть только одно
	_, err = uc.courseRepo.GetActiveTeacherAssignment(ctx, teacherID, courseID)
	if err == nil {
		return nil, domain.ErrTeacherAlreadyAssigned
	}
	if !errors.Is(err, domain.ErrTeacherNotAssigned) {
		return nil, err
	}

	assignment := &domain.TeacherCourseAssignment{
		ID:         uuid.NewString(),
		TeacherID:  teacherID,
		CourseID:   courseID,
		AssignedBy: actor.ID,
		AssignedAt: time.Now(),
		Status:     domain.TeacherAssignmentActive,
	}

	if err := uc.courseRepo.CreateTeacherAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

// UnassignTeacher снимает преподавателя с курса переводом закрепления в inactive.
func (uc *CourseUseCase) UnassignTeacher(ctx context.Context, actor *domain.User, courseID, teacherID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	return uc.courseRepo.DeactivateTeacherAssignment(ctx, teacherID, courseID)
}

// ListCourseTeachers возвращает преподавателей, закрепленных за курсом.
func (uc *CourseUseCase) ListCourseTeachers(ctx context.Context, courseID string) ([]*domain.User, error) {
	if _, err := uc.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.courseRepo.ListCourseTeachers(ctx, courseID)
}

// ListAvailableTeachers возвращает активных преподавателей, еще не закрепленных за курсом.
func (uc *CourseUseCase) ListAvailableTeachers(ctx context.Context, actor *domain.User, courseID string) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	assigned, err := uc.courseRepo.ListCourseTeachers(ctx, courseID)
	if err != nil {
		return nil, err
	}
	assignedIDs := make(map[string]bool, len(assigned))
	for _, teacher := range assigned {
		assignedIDs[teacher.ID] = true
	}

	role := domain.RoleTeacher
	active := true
	teachers, err := uc.userRepo.List(ctx, domain.UserFilter{Role: &role, Active: &active})
	if err != nil {
		return nil, err
	}

	available := []*domain.User{}
	for _, teacher := range teachers {
		if !assignedIDs[teacher.ID] {
			available = append(available, teacher)
		}
	}
	return available, nil
}

// resolveCategory возвращает имя и цвет категории из пресетов.
func resolveCategory(category string) (string, string) {
	if preset, ok := categoryPresets[category]; ok {
		return preset.Name, preset.Color
	}
	return "IT", defaultCategoryColor
}
