package domain

import (
	"context"
	"time"
)

// UserCourseProgress — запись о зачислении пользователя на курс.
// Уникальна для пары (user, course), progress_percent в диапазоне [0,100].
type UserCourseProgress struct {
	ID               string
	UserID           string
	CourseID         string
	CurrentModuleID  *string
	CompletedLessons []string
	ProgressPercent  float64
	StartedAt        time.Time
	LastAccessed     time.Time
}

// ProgressRepository определяет контракт для работы с прогрессом по курсам.
type ProgressRepository interface {
	Create(ctx context.Context, progress *UserCourseProgress) error
	GetByID(ctx context.Context, progressID string) (*UserCourseProgress, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*UserCourseProgress, error)
	GetFirstByUser(ctx context.Context, userID string) (*UserCourseProgress, error)
	ListByUser(ctx context.Context, userID string) ([]*UserCourseProgress, error)
}
