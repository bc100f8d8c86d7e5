package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

// StudentHandler обрабатывает сдачу домашних заданий и выдачу файлов
type StudentHandler struct {
	*BaseHandler
	submissionUseCase domain.SubmissionUseCase
	blobs             domain.BlobStore
}

// NewStudentHandler создает новый экземпляр StudentHandler
func NewStudentHandler(submissionUseCase domain.SubmissionUseCase, blobs domain.BlobStore, logger *logrus.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionUseCase: submissionUseCase,
		blobs:             blobs,
	}
}

// SubmitFile обрабатывает POST /student/progress/:id/lessons/:lessonId/submit.
// Принимает multipart/form-data с обязательным полем file.
func (h *StudentHandler) SubmitFile(c echo.Context) error {
	logger := h.logRequest(c, "submit_file")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error: domain.HTTPError{Code: "INVALID_REQUEST", Message: "file is required"},
		})
	}

	file, err := fh.Open()
	if err != nil {
		logger.WithError(err).Error("Failed to open uploaded file")
		return respondBadBody(c)
	}
	defer file.Close()

	submission, err := h.submissionUseCase.SubmitFile(
		c.Request().Context(),
		actor,
		c.Param("id"),
		c.Param("lessonId"),
		domain.FileUpload{Filename: fh.Filename, Content: file},
	)
	if err != nil {
		logger.WithError(err).Warn("Failed to submit file")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"assignment_id": submission.AssignmentID,
	}).Info("Homework submitted")

	return c.JSON(http.StatusCreated, toAPISubmission(submission))
}

// DownloadFile обрабатывает GET /uploads/:name — выдает сохраненный файл
func (h *StudentHandler) DownloadFile(c echo.Context) error {
	logger := h.logRequest(c, "download_file")

	if _, ok := auth.CurrentUser(c); !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	file, err := h.blobs.Open(c.Param("name"))
	if err != nil {
		logger.WithError(err).Warn("Failed to open stored file")
		return respondError(c, err)
	}
	defer file.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", file)
}
