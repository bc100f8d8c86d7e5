package domain

import (
	"context"
	"time"
)

// Статусы сдачи домашнего задания.
const (
	SubmissionStatusSent       = "sent"
	SubmissionStatusProcessing = "processing"
	SubmissionStatusAccepted   = "accepted"
	SubmissionStatusRejected   = "rejected"
)

// ValidSubmissionStatuses содержит допустимые статусы проверки сдачи.
var ValidSubmissionStatuses = map[string]bool{
	SubmissionStatusProcessing: true,
	SubmissionStatusAccepted:   true,
	SubmissionStatusRejected:   true,
}

// LessonSubmission — файл, сданный учеником по назначению урока.
// Жизненный цикл проверки независим от статуса самого назначения.
type LessonSubmission struct {
	ID           string
	AssignmentID string
	UserID       string
	FileURL      string
	Filename     string
	Status       string
	Grade        *float64
	Feedback     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubmissionRepository определяет контракт для работы со сдачами.
// CreateAndMarkSubmitted атомарно создает сдачу и переводит родительское
// назначение в статус submitted.
type SubmissionRepository interface {
	CreateAndMarkSubmitted(ctx context.Context, submission *LessonSubmission) error
	GetByID(ctx context.Context, submissionID string) (*LessonSubmission, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]*LessonSubmission, error)
	UpdateReview(ctx context.Context, submissionID, status string, grade *float64, feedback string) (*LessonSubmission, error)
}
