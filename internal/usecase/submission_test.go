package usecase_test

import (
	"context"
	"strings"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmissionUseCase_SubmitFile_ExistingAssignment(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	progressRepo := &ProgressRepository{}
	blobs := &BlobStore{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, progressRepo, blobs)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}
	assignment := &domain.LessonAssignment{ID: "a1", UserID: "s1", LessonID: "l1"}

	progressRepo.On("GetByID", ctx, "p1").Return(progress, nil)
	assignmentRepo.On("GetByUserAndLesson", ctx, "s1", "l1").Return(assignment, nil)
	blobs.On("Save", "homework.pdf", mock.Anything).Return("/uploads/abc.pdf", nil)
	submissionRepo.On("CreateAndMarkSubmitted", ctx, mock.AnythingOfType("*domain.LessonSubmission")).Return(nil)

	submission, err := uc.SubmitFile(ctx, student, "p1", "l1", domain.FileUpload{
		Filename: "homework.pdf",
		Content:  strings.NewReader("data"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "a1", submission.AssignmentID)
	assert.Equal(t, domain.SubmissionStatusSent, submission.Status)
	assert.Equal(t, "/uploads/abc.pdf", submission.FileURL)
	assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmissionUseCase_SubmitFile_SelfAssignment(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	progressRepo := &ProgressRepository{}
	blobs := &BlobStore{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, progressRepo, blobs)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}

	progressRepo.On("GetByID", ctx, "p1").Return(progress, nil)
	assignmentRepo.On("GetByUserAndLesson", ctx, "s1", "l1").Return(nil, domain.ErrAssignmentNotFound)
	assignmentRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.LessonAssignment) bool {
		return a.UserID == "s1" && a.AssignedBy == "s1" && a.Status == domain.AssignmentStatusAssigned
	})).Return(nil)
	blobs.On("Save", "homework.zip", mock.Anything).Return("/uploads/abc.zip", nil)
	submissionRepo.On("CreateAndMarkSubmitted", ctx, mock.AnythingOfType("*domain.LessonSubmission")).Return(nil)

	submission, err := uc.SubmitFile(ctx, student, "p1", "l1", domain.FileUpload{
		Filename: "homework.zip",
		Content:  strings.NewReader("data"),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, submission.AssignmentID)
}

func TestSubmissionUseCase_SubmitFile_RaceRereadsAssignment(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	progressRepo := &ProgressRepository{}
	blobs := &BlobStore{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, progressRepo, blobs)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}
	winner := &domain.LessonAssignment{ID: "a-won", UserID: "s1", LessonID: "l1"}

	progressRepo.On("GetByID", ctx, "p1").Return(progress, nil)
	assignmentRepo.On("GetByUserAndLesson", ctx, "s1", "l1").Return(nil, domain.ErrAssignmentNotFound).Once()
	assignmentRepo.On("Create", ctx, mock.AnythingOfType("*domain.LessonAssignment")).
		Return(domain.ErrAssignmentAlreadyExists)
	assignmentRepo.On("GetByUserAndLesson", ctx, "s1", "l1").Return(winner, nil)
	blobs.On("Save", "homework.pdf", mock.Anything).Return("/uploads/abc.pdf", nil)
	submissionRepo.On("CreateAndMarkSubmitted", ctx, mock.AnythingOfType("*domain.LessonSubmission")).Return(nil)

	submission, err := uc.SubmitFile(ctx, student, "p1", "l1", domain.FileUpload{
		Filename: "homework.pdf",
		Content:  strings.NewReader("data"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "a-won", submission.AssignmentID)
}

func TestSubmissionUseCase_SubmitFile_ForeignProgressForbidden(t *testing.T) {
	ctx := context.Background()
	progressRepo := &ProgressRepository{}
	uc := usecase.NewSubmissionUseCase(&SubmissionRepository{}, &AssignmentRepository{}, progressRepo, &BlobStore{})

	stranger := &domain.User{ID: "s2", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}
	progressRepo.On("GetByID", ctx, "p1").Return(progress, nil)

	submission, err := uc.SubmitFile(ctx, stranger, "p1", "l1", domain.FileUpload{Filename: "homework.pdf"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, submission)
}

func TestSubmissionUseCase_SubmitFile_RemovesBlobOnDBError(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	progressRepo := &ProgressRepository{}
	blobs := &BlobStore{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, progressRepo, blobs)

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	progress := &domain.UserCourseProgress{ID: "p1", UserID: "s1"}
	assignment := &domain.LessonAssignment{ID: "a1", UserID: "s1", LessonID: "l1"}

	progressRepo.On("GetByID", ctx, "p1").Return(progress, nil)
	assignmentRepo.On("GetByUserAndLesson", ctx, "s1", "l1").Return(assignment, nil)
	blobs.On("Save", "homework.pdf", mock.Anything).Return("/uploads/abc.pdf", nil)
	submissionRepo.On("CreateAndMarkSubmitted", ctx, mock.AnythingOfType("*domain.LessonSubmission")).
		Return(assert.AnError)
	blobs.On("Remove", "/uploads/abc.pdf").Return(nil)

	submission, err := uc.SubmitFile(ctx, student, "p1", "l1", domain.FileUpload{
		Filename: "homework.pdf",
		Content:  strings.NewReader("data"),
	})

	assert.Error(t, err)
	assert.Nil(t, submission)
	blobs.AssertCalled(t, "Remove", "/uploads/abc.pdf")
}

func TestSubmissionUseCase_Grade_AcceptedMovesAssignment(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, &ProgressRepository{}, &BlobStore{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	submission := &domain.LessonSubmission{ID: "sub1", AssignmentID: "a1", UserID: "s1"}
	assignment := &domain.LessonAssignment{ID: "a1", UserID: "s1", AssignedBy: "t1"}
	grade := 95.0
	reviewed := &domain.LessonSubmission{ID: "sub1", AssignmentID: "a1", Status: domain.SubmissionStatusAccepted, Grade: &grade}

	submissionRepo.On("GetByID", ctx, "sub1").Return(submission, nil)
	assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
	submissionRepo.On("UpdateReview", ctx, "sub1", domain.SubmissionStatusAccepted, &grade, "отлично").Return(reviewed, nil)
	assignmentRepo.On("UpdateStatus", ctx, "a1", domain.AssignmentStatusReviewed).Return(nil)

	result, err := uc.Grade(ctx, teacher, "sub1", domain.GradeInput{
		Status:   domain.SubmissionStatusAccepted,
		Grade:    &grade,
		Feedback: "отлично",
	})

	assert.NoError(t, err)
	assert.Equal(t, reviewed, result)
	assignmentRepo.AssertCalled(t, "UpdateStatus", ctx, "a1", domain.AssignmentStatusReviewed)
}

func TestSubmissionUseCase_Grade_ProcessingKeepsAssignment(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, &ProgressRepository{}, &BlobStore{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	submission := &domain.LessonSubmission{ID: "sub1", AssignmentID: "a1"}
	assignment := &domain.LessonAssignment{ID: "a1", AssignedBy: "t1"}
	updated := &domain.LessonSubmission{ID: "sub1", Status: domain.SubmissionStatusProcessing}

	submissionRepo.On("GetByID", ctx, "sub1").Return(submission, nil)
	assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
	submissionRepo.On("UpdateReview", ctx, "sub1", domain.SubmissionStatusProcessing, (*float64)(nil), "").Return(updated, nil)

	_, err := uc.Grade(ctx, teacher, "sub1", domain.GradeInput{Status: domain.SubmissionStatusProcessing})

	assert.NoError(t, err)
	assignmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionUseCase_Grade_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSubmissionUseCase(&SubmissionRepository{}, &AssignmentRepository{}, &ProgressRepository{}, &BlobStore{})

	teacher := &domain.User{ID: "t1", Role: domain.RoleTeacher}
	result, err := uc.Grade(ctx, teacher, "sub1", domain.GradeInput{Status: "sent"})

	assert.ErrorIs(t, err, domain.ErrInvalidSubmissionStatus)
	assert.Nil(t, result)
}

func TestSubmissionUseCase_Grade_ForeignTeacherForbidden(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, &ProgressRepository{}, &BlobStore{})

	other := &domain.User{ID: "t2", Role: domain.RoleTeacher}
	submission := &domain.LessonSubmission{ID: "sub1", AssignmentID: "a1"}
	assignment := &domain.LessonAssignment{ID: "a1", AssignedBy: "t1"}

	submissionRepo.On("GetByID", ctx, "sub1").Return(submission, nil)
	assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)

	result, err := uc.Grade(ctx, other, "sub1", domain.GradeInput{Status: domain.SubmissionStatusAccepted})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, result)
}

func TestSubmissionUseCase_ListByAssignment_StudentAllowed(t *testing.T) {
	ctx := context.Background()
	submissionRepo := &SubmissionRepository{}
	assignmentRepo := &AssignmentRepository{}
	uc := usecase.NewSubmissionUseCase(submissionRepo, assignmentRepo, &ProgressRepository{}, &BlobStore{})

	student := &domain.User{ID: "s1", Role: domain.RoleApprentice}
	assignment := &domain.LessonAssignment{ID: "a1", UserID: "s1", AssignedBy: "t1"}
	submissions := []*domain.LessonSubmission{{ID: "sub1"}}

	assignmentRepo.On("GetByID", ctx, "a1").Return(assignment, nil)
	submissionRepo.On("ListByAssignment", ctx, "a1").Return(submissions, nil)

	result, err := uc.ListByAssignment(ctx, student, "a1")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}
