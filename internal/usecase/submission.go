package usecase

import (
	"context"
	"errors"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// SubmissionUseCase реализует бизнес-логику сдачи и проверки работ.
type SubmissionUseCase struct {
	submissionRepo domain.SubmissionRepository
	assignmentRepo domain.AssignmentRepository
	progressRepo   domain.ProgressRepository
	blobs          domain.BlobStore
}

// NewSubmissionUseCase создает новый экземпляр SubmissionUseCase.
func NewSubmissionUseCase(submissionRepo domain.SubmissionRepository, assignmentRepo domain.AssignmentRepository, progressRepo domain.ProgressRepository, blobs domain.BlobStore) domain.SubmissionUseCase {
	return &SubmissionUseCase{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		progressRepo:   progressRepo,
		blobs:          blobs,
	}
}

// SubmitFile принимает файл по уроку. Если назначения на пару (ученик, урок)
// нет, создается самоназначение. Сдача получает статус sent, назначение
// переводится в submitted. При любой ошибке после записи файл удаляется.
func (uc *SubmissionUseCase) SubmitFile(ctx context.Context, actor *domain.User, progressID, lessonID string, file domain.FileUpload) (*domain.LessonSubmission, error) {
	// 1. Прогресс должен существовать и принадлежать ученику
	progress, err := uc.progressRepo.GetByID(ctx, progressID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessOwned(progress.UserID) {
		return nil, domain.ErrForbidden
	}

	// 2. Находим назначение или создаем самоназначение
	assignment, err := uc.assignmentRepo.GetByUserAndLesson(ctx, actor.ID, lessonID)
	if errors.Is(err, domain.ErrAssignmentNotFound) {
		assignment = &domain.LessonAssignment{
			ID:         uuid.NewString(),
			UserID:     actor.ID,
			LessonID:   lessonID,
			AssignedBy: actor.ID,
			AssignedAt: time.Now(),
			Status:     domain.AssignmentStatusAssigned,
		}
		if createErr := uc.assignmentRepo.Create(ctx, assignment); createErr != nil {
			// Гонка двух первых сдач: пара уже создана, перечитываем
			if !errors.Is(createErr, domain.ErrAssignmentAlreadyExists) {
				return nil, createErr
			}
			assignment, err = uc.assignmentRepo.GetByUserAndLesson(ctx, actor.ID, lessonID)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	// 3. Сохраняем файл
	fileURL, err := uc.blobs.Save(file.Filename, file.Content)
	if err != nil {
		return nil, err
	}

	// 4. Создаем сдачу и переводим назначение в submitted
	now := time.Now()
	submission := &domain.LessonSubmission{
		ID:           uuid.NewString(),
		AssignmentID: assignment.ID,
		UserID:       actor.ID,
		FileURL:      fileURL,
		Filename:     file.Filename,
		Status:       domain.SubmissionStatusSent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.submissionRepo.CreateAndMarkSubmitted(ctx, submission); err != nil {
		_ = uc.blobs.Remove(fileURL)
		return nil, err
	}

	return submission, nil
}

// Grade записывает решение по сдаче. Доступ — назначивший преподаватель
// или администратор. Принятая или отклоненная работа переводит назначение
// в reviewed.
func (uc *SubmissionUseCase) Grade(ctx context.Context, actor *domain.User, submissionID string, input domain.GradeInput) (*domain.LessonSubmission, error) {
	if !domain.ValidSubmissionStatuses[input.Status] {
		return nil, domain.ErrInvalidSubmissionStatus
	}

	// 1. Сдача и назначение должны существовать
	submission, err := uc.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	assignment, err := uc.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}

	// 2. Оценивает назначивший преподаватель или администратор
	if !actor.CanAccessOwned(assignment.AssignedBy) {
		return nil, domain.ErrForbidden
	}

	// 3. Записываем решение
	updated, err := uc.submissionRepo.UpdateReview(ctx, submissionID, input.Status, input.Grade, input.Feedback)
	if err != nil {
		return nil, err
	}

	// 4. Рассмотренная работа двигает назначение дальше
	if input.Status == domain.SubmissionStatusAccepted || input.Status == domain.SubmissionStatusRejected {
		if err := uc.assignmentRepo.UpdateStatus(ctx, assignment.ID, domain.AssignmentStatusReviewed); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// ListByAssignment возвращает сдачи по назначению. Доступ — назначивший
// преподаватель, сам ученик или администратор.
func (uc *SubmissionUseCase) ListByAssignment(ctx context.Context, actor *domain.User, assignmentID string) ([]*domain.LessonSubmission, error) {
	assignment, err := uc.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessOwned(assignment.AssignedBy) && actor.ID != assignment.UserID {
		return nil, domain.ErrForbidden
	}

	return uc.submissionRepo.ListByAssignment(ctx, assignmentID)
}
