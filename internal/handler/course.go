package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

// CourseHandler обрабатывает каталог курсов и дерево контента
type CourseHandler struct {
	*BaseHandler
	courseUseCase domain.CourseUseCase
}

// NewCourseHandler создает новый экземпляр CourseHandler
func NewCourseHandler(courseUseCase domain.CourseUseCase, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseUseCase: courseUseCase,
	}
}

// ListCourses обрабатывает GET /courses — публичный каталог
func (h *CourseHandler) ListCourses(c echo.Context) error {
	logger := h.logRequest(c, "list_courses")

	courses, err := h.courseUseCase.ListCourses(c.Request().Context(), domain.CourseFilter{
		Category:   c.QueryParam("category"),
		Search:     c.QueryParam("search"),
		PublicOnly: true,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to list courses")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICourses(courses))
}

// ListCategories обрабатывает GET /courses/categories
func (h *CourseHandler) ListCategories(c echo.Context) error {
	logger := h.logRequest(c, "list_categories")

	categories, err := h.courseUseCase.ListCategories(c.Request().Context())
	if err != nil {
		logger.WithError(err).Error("Failed to list categories")
		return respondError(c, err)
	}

	result := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryDTO{
			Category:      category.Category,
			CategoryName:  category.CategoryName,
			CategoryColor: category.CategoryColor,
			CourseCount:   category.CourseCount,
		})
	}

	return c.JSON(http.StatusOK, result)
}

// GetCourse обрабатывает GET /courses/:id
func (h *CourseHandler) GetCourse(c echo.Context) error {
	logger := h.logRequest(c, "get_course")

	course, err := h.courseUseCase.GetCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get course")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICourse(course))
}

// GetCourseFull обрабатывает GET /courses/:id/full — курс с деревом модулей и уроков
func (h *CourseHandler) GetCourseFull(c echo.Context) error {
	logger := h.logRequest(c, "get_course_full")

	tree, err := h.courseUseCase.GetCourseFull(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get course tree")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICourseTree(tree))
}

// ListModules обрабатывает GET /courses/:id/modules
func (h *CourseHandler) ListModules(c echo.Context) error {
	logger := h.logRequest(c, "list_modules")

	modules, err := h.courseUseCase.ListModules(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to list modules")
		return respondError(c, err)
	}

	result := make([]ModuleDTO, 0, len(modules))
	for _, module := range modules {
		result = append(result, toAPIModule(module))
	}

	return c.JSON(http.StatusOK, result)
}

// ListLessons обрабатывает GET /modules/:id/lessons
func (h *CourseHandler) ListLessons(c echo.Context) error {
	logger := h.logRequest(c, "list_lessons")

	lessons, err := h.courseUseCase.ListLessons(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to list lessons")
		return respondError(c, err)
	}

	result := make([]LessonDTO, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, toAPILesson(lesson))
	}

	return c.JSON(http.StatusOK, result)
}

// CreateCourse обрабатывает POST /admin/courses
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	logger := h.logRequest(c, "create_course")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	course, err := h.courseUseCase.CreateCourse(c.Request().Context(), actor, domain.CreateCourseInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		CategoryName:  req.CategoryName,
		CategoryColor: req.CategoryColor,
		Icon:          req.Icon,
		Duration:      req.Duration,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to create course")
		return respondError(c, err)
	}

	logger.WithField("course_id", course.ID).Info("Course created")

	return c.JSON(http.StatusCreated, toAPICourse(course))
}

// UpdateCourse обрабатывает PUT /admin/courses/:id
func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	logger := h.logRequest(c, "update_course")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}

	course, err := h.courseUseCase.UpdateCourse(c.Request().Context(), actor, c.Param("id"), domain.UpdateCourseInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		CategoryName:  req.CategoryName,
		CategoryColor: req.CategoryColor,
		Icon:          req.Icon,
		Duration:      req.Duration,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to update course")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPICourse(course))
}

// DeleteCourse обрабатывает DELETE /admin/courses/:id
func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	logger := h.logRequest(c, "delete_course")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	if err := h.courseUseCase.DeleteCourse(c.Request().Context(), actor, c.Param("id")); err != nil {
		logger.WithError(err).Warn("Failed to delete course")
		return respondError(c, err)
	}

	logger.WithField("course_id", c.Param("id")).Info("Course deleted")

	return c.NoContent(http.StatusNoContent)
}

// AddModule обрабатывает POST /courses/:id/modules
func (h *CourseHandler) AddModule(c echo.Context) error {
	logger := h.logRequest(c, "add_module")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req CreateModuleRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	module, err := h.courseUseCase.AddModule(c.Request().Context(), actor, c.Param("id"), domain.CreateModuleInput{
		Order:           req.Order,
		Title:           req.Title,
		Description:     req.Description,
		RecommendedTime: req.RecommendedTime,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to add module")
		return respondError(c, err)
	}

	logger.WithField("module_id", module.ID).Info("Module created")

	return c.JSON(http.StatusCreated, toAPIModule(module))
}

// AddLesson обрабатывает POST /courses/:id/modules/:moduleId/lessons.
// Принимает multipart/form-data с опциональными файлами pptx_file и homework_file.
func (h *CourseHandler) AddLesson(c echo.Context) error {
	logger := h.logRequest(c, "add_lesson")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	order, err := strconv.Atoi(c.FormValue("order"))
	if err != nil || order <= 0 {
		return respondError(c, domain.ErrInvalidOrder)
	}

	input := domain.CreateLessonInput{
		Order:       order,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	if input.Title == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error: domain.HTTPError{Code: "INVALID_REQUEST", Message: "title is required"},
		})
	}

	pptx, pptxFile, err := openFormFile(c, "pptx_file")
	if err != nil {
		return respondBadBody(c)
	}
	if pptx != nil {
		defer pptx.Close()
		input.PptxFile = pptxFile
	}

	homework, homeworkFile, err := openFormFile(c, "homework_file")
	if err != nil {
		return respondBadBody(c)
	}
	if homework != nil {
		defer homework.Close()
		input.HomeworkFile = homeworkFile
	}

	lesson, err := h.courseUseCase.AddLesson(c.Request().Context(), actor, c.Param("id"), c.Param("moduleId"), input)
	if err != nil {
		logger.WithError(err).Warn("Failed to add lesson")
		return respondError(c, err)
	}

	logger.WithField("lesson_id", lesson.ID).Info("Lesson created")

	return c.JSON(http.StatusCreated, toAPILesson(lesson))
}

// AssignTeacher обрабатывает POST /admin/courses/:id/teachers
func (h *CourseHandler) AssignTeacher(c echo.Context) error {
	logger := h.logRequest(c, "assign_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req AssignTeacherRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	assignment, err := h.courseUseCase.AssignTeacher(c.Request().Context(), actor, c.Param("id"), req.TeacherID)
	if err != nil {
		logger.WithError(err).Warn("Failed to assign teacher")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"course_id":  assignment.CourseID,
		"teacher_id": assignment.TeacherID,
	}).Info("Teacher assigned to course")

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          assignment.ID,
		"teacher_id":  assignment.TeacherID,
		"course_id":   assignment.CourseID,
		"assigned_by": assignment.AssignedBy,
		"assigned_at": assignment.AssignedAt,
		"status":      assignment.Status,
	})
}

// UnassignTeacher обрабатывает DELETE /admin/courses/:id/teachers/:teacherId
func (h *CourseHandler) UnassignTeacher(c echo.Context) error {
	logger := h.logRequest(c, "unassign_teacher")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	if err := h.courseUseCase.UnassignTeacher(c.Request().Context(), actor, c.Param("id"), c.Param("teacherId")); err != nil {
		logger.WithError(err).Warn("Failed to unassign teacher")
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListCourseTeachers обрабатывает GET /courses/:id/teachers
func (h *CourseHandler) ListCourseTeachers(c echo.Context) error {
	logger := h.logRequest(c, "list_course_teachers")

	teachers, err := h.courseUseCase.ListCourseTeachers(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to list course teachers")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUsers(teachers))
}

// ListAvailableTeachers обрабатывает GET /admin/courses/:id/teachers/available
func (h *CourseHandler) ListAvailableTeachers(c echo.Context) error {
	logger := h.logRequest(c, "list_available_teachers")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	teachers, err := h.courseUseCase.ListAvailableTeachers(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to list available teachers")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUsers(teachers))
}

// openFormFile открывает опциональный файл multipart-формы.
// Возвращает nil без ошибки, если поле отсутствует.
func openFormFile(c echo.Context, field string) (multipart.File, *domain.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return file, &domain.FileUpload{Filename: fh.Filename, Content: file}, nil
}
