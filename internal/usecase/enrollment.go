package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// EnrollmentUseCase реализует бизнес-логику зачисления и прогресса по курсам.
type EnrollmentUseCase struct {
	progressRepo domain.ProgressRepository
	courseRepo   domain.CourseRepository
	userRepo     domain.UserRepository
}

// NewEnrollmentUseCase создает новый экземпляр EnrollmentUseCase.
func NewEnrollmentUseCase(progressRepo domain.ProgressRepository, courseRepo domain.CourseRepository, userRepo domain.UserRepository) domain.EnrollmentUseCase {
	return &EnrollmentUseCase{
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
		userRepo:     userRepo,
	}
}

// Enroll зачисляет пользователя на курс по имени, создавая курс при отсутствии.
// Повторное зачисление идемпотентно: возвращается существующая запись
// прогресса, дубликат не создается. Второй результат — признак создания
// новой записи.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, actor *domain.User, userID, courseName, category string) (*domain.UserCourseProgress, bool, error) {
	if !actor.IsAdmin() {
		return nil, false, domain.ErrForbidden
	}

	// 1. Пользователь должен существовать
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, false, err
	}

	// 2. Находим или создаем курс
	course, err := uc.courseRepo.GetCourseByName(ctx, courseName)
	if errors.Is(err, domain.ErrCourseNotFound) {
		categoryName, _ := resolveCategory(category)
		now := time.Now()
		course = &domain.Course{
			ID:            uuid.NewString(),
			Name:          courseName,
			Description:   fmt.Sprintf("Курс '%s'", courseName),
			Category:      orDefault(category, "it"),
			CategoryName:  categoryName,
			CategoryColor: defaultCategoryColor,
			IsPublic:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
			return nil, false, err
		}
	} else if err != nil {
		return nil, false, err
	}

	// 3. Повторное зачисление возвращает существующий прогресс
	existing, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, course.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, false, err
	}

	now := time.Now()
	progress := &domain.UserCourseProgress{
		ID:           uuid.NewString(),
		UserID:       userID,
		CourseID:     course.ID,
		StartedAt:    now,
		LastAccessed: now,
	}

	if err := uc.progressRepo.Create(ctx, progress); err != nil {
		return nil, false, err
	}

	return progress, true, nil
}

// GetMyProgress возвращает первую запись прогресса текущего пользователя.
func (uc *EnrollmentUseCase) GetMyProgress(ctx context.Context, actor *domain.User) (*domain.UserCourseProgress, error) {
	return uc.progressRepo.GetFirstByUser(ctx, actor.ID)
}
