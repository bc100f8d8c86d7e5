package usecase

import (
	"context"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// AssignmentUseCase реализует бизнес-логику назначений уроков.
type AssignmentUseCase struct {
	assignmentRepo domain.AssignmentRepository
	courseRepo     domain.CourseRepository
	userRepo       domain.UserRepository
	statsRepo      domain.StatsRepository
}

// NewAssignmentUseCase создает новый экземпляр AssignmentUseCase.
func NewAssignmentUseCase(assignmentRepo domain.AssignmentRepository, courseRepo domain.CourseRepository, userRepo domain.UserRepository, statsRepo domain.StatsRepository) domain.AssignmentUseCase {
	return &AssignmentUseCase{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		statsRepo:      statsRepo,
	}
}

// CreateAssignment назначает урок ученику. Пара (ученик, урок) уникальна,
// повторное назначение отклоняется.
func (uc *AssignmentUseCase) CreateAssignment(ctx context.Context, actor *domain.User, studentID, lessonID string, dueDate *time.Time, note string) (*domain.LessonAssignment, error) {
	if !actor.HasRole(domain.RoleAdmin, domain.RoleTeacher) {
		return nil, domain.ErrForbidden
	}

	// 1. Ученик и урок должны существовать
	if _, err := uc.userRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := uc.courseRepo.GetLessonByID(ctx, lessonID); err != nil {
		return nil, err
	}

	// 2. Создаем назначение, дубликат пары отсекает уникальное ограничение
	assignment := &domain.LessonAssignment{
		ID:         uuid.NewString(),
		UserID:     studentID,
		LessonID:   lessonID,
		AssignedBy: actor.ID,
		AssignedAt: time.Now(),
		DueDate:    dueDate,
		Status:     domain.AssignmentStatusAssigned,
		Note:       note,
	}

	if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

// ListTeacherAssignments возвращает назначения, созданные преподавателем.
func (uc *AssignmentUseCase) ListTeacherAssignments(ctx context.Context, actor *domain.User, filter domain.AssignmentFilter) ([]*domain.AssignmentInfo, error) {
	if !actor.HasRole(domain.RoleAdmin, domain.RoleTeacher) {
		return nil, domain.ErrForbidden
	}

	return uc.assignmentRepo.ListByTeacher(ctx, actor.ID, filter)
}

// GetDashboard возвращает сводку по работе преподавателя.
func (uc *AssignmentUseCase) GetDashboard(ctx context.Context, actor *domain.User) (*domain.TeacherDashboard, error) {
	if actor.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}

	return uc.statsRepo.GetTeacherDashboard(ctx, actor.ID)
}

// ListStudents возвращает учеников, которым преподаватель назначал уроки.
func (uc *AssignmentUseCase) ListStudents(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}

	return uc.assignmentRepo.ListTeacherStudents(ctx, actor.ID)
}

// GetStudent возвращает ученика преподавателя. Доступ только к ученикам,
// которым этот преподаватель назначал уроки.
func (uc *AssignmentUseCase) GetStudent(ctx context.Context, actor *domain.User, studentID string) (*domain.User, error) {
	if actor.Role != domain.RoleTeacher {
		return nil, domain.ErrForbidden
	}

	students, err := uc.assignmentRepo.ListTeacherStudents(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	for _, student := range students {
		if student.ID == studentID {
			return student, nil
		}
	}

	return nil, domain.ErrForbidden
}
