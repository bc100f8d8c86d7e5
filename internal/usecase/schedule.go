package usecase

import (
	"context"
	"errors"

	"skillmap-service/internal/domain"
)

// ScheduleUseCase реализует бизнес-логику расписаний преподавателей.
type ScheduleUseCase struct {
	scheduleRepo domain.ScheduleRepository
	userRepo     domain.UserRepository
}

// NewScheduleUseCase создает новый экземпляр ScheduleUseCase.
func NewScheduleUseCase(scheduleRepo domain.ScheduleRepository, userRepo domain.UserRepository) domain.ScheduleUseCase {
	return &ScheduleUseCase{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
	}
}

// SetSchedule записывает недельное расписание преподавателя.
// Доступ — администратор или сам преподаватель.
func (uc *ScheduleUseCase) SetSchedule(ctx context.Context, actor *domain.User, schedule *domain.TeacherSchedule) error {
	if !actor.CanAccessOwned(schedule.TeacherID) {
		return domain.ErrForbidden
	}

	if err := uc.checkTeacher(ctx, schedule.TeacherID); err != nil {
		return err
	}

	return uc.scheduleRepo.Upsert(ctx, schedule)
}

// GetSchedule возвращает расписание преподавателя.
func (uc *ScheduleUseCase) GetSchedule(ctx context.Context, teacherID string) (*domain.TeacherSchedule, error) {
	if err := uc.checkTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	return uc.scheduleRepo.GetByTeacher(ctx, teacherID)
}

// ClearSchedule очищает расписание преподавателя.
// Доступ — администратор или сам преподаватель.
func (uc *ScheduleUseCase) ClearSchedule(ctx context.Context, actor *domain.User, teacherID string) error {
	if !actor.CanAccessOwned(teacherID) {
		return domain.ErrForbidden
	}

	if err := uc.checkTeacher(ctx, teacherID); err != nil {
		return err
	}

	return uc.scheduleRepo.Delete(ctx, teacherID)
}

func (uc *ScheduleUseCase) checkTeacher(ctx context.Context, teacherID string) error {
	user, err := uc.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTeacherNotFound
		}
		return err
	}
	if user.Role != domain.RoleTeacher {
		return domain.ErrTeacherNotFound
	}
	return nil
}
