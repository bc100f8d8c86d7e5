package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

// TeacherHandler обрабатывает справочник преподавателей и панель преподавателя
type TeacherHandler struct {
	*BaseHandler
	teacherUseCase    domain.TeacherUseCase
	assignmentUseCase domain.AssignmentUseCase
	submissionUseCase domain.SubmissionUseCase
}

// NewTeacherHandler создает новый экземпляр TeacherHandler
func NewTeacherHandler(
	teacherUseCase domain.TeacherUseCase,
	assignmentUseCase domain.AssignmentUseCase,
	submissionUseCase domain.SubmissionUseCase,
	logger *logrus.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:       NewBaseHandler(logger),
		teacherUseCase:    teacherUseCase,
		assignmentUseCase: assignmentUseCase,
		submissionUseCase: submissionUseCase,
	}
}

// CreateTeacher обрабатывает POST /teachers
func (h *TeacherHandler) CreateTeacher(c echo.Context) error {
	logger := h.logRequest(c, "create_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req CreateTeacherRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	teacher, err := h.teacherUseCase.CreateTeacher(c.Request().Context(), actor, domain.CreateTeacherInput{
		RegisterInput: domain.RegisterInput{
			Email:      string(req.Email),
			Password:   req.Password,
			Phone:      req.Phone,
			Surname:    req.Surname,
			Name:       req.Name,
			Patronymic: req.Patronymic,
		},
		Department:   req.Department,
		Title:        req.Title,
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		OfficeHours:  req.OfficeHours,
		HoursPerWeek: req.HoursPerWeek,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to create teacher")
		return respondError(c, err)
	}

	logger.WithField("teacher_id", teacher.ID).Info("Teacher created")

	return c.JSON(http.StatusCreated, toAPIUser(teacher))
}

// ListTeachers обрабатывает GET /teachers
func (h *TeacherHandler) ListTeachers(c echo.Context) error {
	logger := h.logRequest(c, "list_teachers")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	activeOnly := true
	if param := c.QueryParam("active_only"); param != "" {
		if parsed, err := strconv.ParseBool(param); err == nil {
			activeOnly = parsed
		}
	}

	teachers, err := h.teacherUseCase.ListTeachers(c.Request().Context(), actor, c.QueryParam("search"), activeOnly)
	if err != nil {
		logger.WithError(err).Error("Failed to list teachers")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUsers(teachers))
}

// GetTeacher обрабатывает GET /teachers/:id
func (h *TeacherHandler) GetTeacher(c echo.Context) error {
	logger := h.logRequest(c, "get_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	teacher, err := h.teacherUseCase.GetTeacher(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get teacher")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(teacher))
}

// UpdateTeacher обрабатывает PUT /teachers/:id
func (h *TeacherHandler) UpdateTeacher(c echo.Context) error {
	logger := h.logRequest(c, "update_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}

	teacher, err := h.teacherUseCase.UpdateTeacher(c.Request().Context(), actor, c.Param("id"), domain.UpdateProfileInput{
		Surname:      req.Surname,
		Name:         req.Name,
		Patronymic:   req.Patronymic,
		Phone:        req.Phone,
		Password:     req.Password,
		Department:   req.Department,
		Title:        req.Title,
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		OfficeHours:  req.OfficeHours,
		HoursPerWeek: req.HoursPerWeek,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to update teacher")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(teacher))
}

// DeleteTeacher обрабатывает DELETE /teachers/:id
func (h *TeacherHandler) DeleteTeacher(c echo.Context) error {
	logger := h.logRequest(c, "delete_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	if err := h.teacherUseCase.DeleteTeacher(c.Request().Context(), actor, c.Param("id")); err != nil {
		logger.WithError(err).Warn("Failed to delete teacher")
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetTeacherStats обрабатывает GET /teachers/:id/stats
func (h *TeacherHandler) GetTeacherStats(c echo.Context) error {
	logger := h.logRequest(c, "teacher_stats")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	stats, err := h.teacherUseCase.GetTeacherStats(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get teacher stats")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPITeacherStats(stats))
}

// GetDashboard обрабатывает GET /teacher/dashboard
func (h *TeacherHandler) GetDashboard(c echo.Context) error {
	logger := h.logRequest(c, "teacher_dashboard")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	dashboard, err := h.assignmentUseCase.GetDashboard(c.Request().Context(), actor)
	if err != nil {
		logger.WithError(err).Error("Failed to get dashboard")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIDashboard(dashboard))
}

// ListAssignments обрабатывает GET /teacher/assignments
func (h *TeacherHandler) ListAssignments(c echo.Context) error {
	logger := h.logRequest(c, "list_assignments")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	infos, err := h.assignmentUseCase.ListTeacherAssignments(c.Request().Context(), actor, domain.AssignmentFilter{
		Status:    c.QueryParam("status"),
		StudentID: c.QueryParam("student_id"),
	})
	if err != nil {
		logger.WithError(err).Error("Failed to list assignments")
		return respondError(c, err)
	}

	result := make([]AssignmentDTO, 0, len(infos))
	for _, info := range infos {
		result = append(result, toAPIAssignmentInfo(info))
	}

	return c.JSON(http.StatusOK, result)
}

// CreateAssignment обрабатывает POST /teacher/assignments
func (h *TeacherHandler) CreateAssignment(c echo.Context) error {
	logger := h.logRequest(c, "create_assignment")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req CreateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		dueDate = &req.DueDate.Time
	}

	assignment, err := h.assignmentUseCase.CreateAssignment(c.Request().Context(), actor, req.StudentID, req.LessonID, dueDate, req.Note)
	if err != nil {
		logger.WithError(err).Warn("Failed to create assignment")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"assignment_id": assignment.ID,
		"student_id":    assignment.UserID,
	}).Info("Assignment created")

	return c.JSON(http.StatusCreated, toAPIAssignment(assignment))
}

// ListStudents обрабатывает GET /teacher/students
func (h *TeacherHandler) ListStudents(c echo.Context) error {
	logger := h.logRequest(c, "list_students")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	students, err := h.assignmentUseCase.ListStudents(c.Request().Context(), actor)
	if err != nil {
		logger.WithError(err).Error("Failed to list students")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUsers(students))
}

// GetStudent обрабатывает GET /teacher/students/:id
func (h *TeacherHandler) GetStudent(c echo.Context) error {
	logger := h.logRequest(c, "get_student")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	student, err := h.assignmentUseCase.GetStudent(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get student")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(student))
}

// ListSubmissions обрабатывает GET /teacher/assignments/:id/submissions
func (h *TeacherHandler) ListSubmissions(c echo.Context) error {
	logger := h.logRequest(c, "list_submissions")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	submissions, err := h.submissionUseCase.ListByAssignment(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to list submissions")
		return respondError(c, err)
	}

	result := make([]SubmissionDTO, 0, len(submissions))
	for _, submission := range submissions {
		result = append(result, toAPISubmission(submission))
	}

	return c.JSON(http.StatusOK, result)
}

// GradeSubmission обрабатывает PUT /teacher/submissions/:id
func (h *TeacherHandler) GradeSubmission(c echo.Context) error {
	logger := h.logRequest(c, "grade_submission")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req GradeRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	submission, err := h.submissionUseCase.Grade(c.Request().Context(), actor, c.Param("id"), domain.GradeInput{
		Status:   req.Status,
		Grade:    req.Grade,
		Feedback: req.Feedback,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to grade submission")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"status":        submission.Status,
	}).Info("Submission reviewed")

	return c.JSON(http.StatusOK, toAPISubmission(submission))
}
