package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

type APIHandler struct {
	*AuthHandler
	*UserHandler
	*TeacherHandler
	*CourseHandler
	*StudentHandler
	*VacancyHandler
	*ScheduleHandler
}

func NewAPIHandler(
	authUseCase domain.AuthUseCase,
	userUseCase domain.UserUseCase,
	teacherUseCase domain.TeacherUseCase,
	courseUseCase domain.CourseUseCase,
	enrollmentUseCase domain.EnrollmentUseCase,
	assignmentUseCase domain.AssignmentUseCase,
	submissionUseCase domain.SubmissionUseCase,
	vacancyUseCase domain.VacancyUseCase,
	scheduleUseCase domain.ScheduleUseCase,
	statsUseCase domain.StatsUseCase,
	blobs domain.BlobStore,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		AuthHandler:     NewAuthHandler(authUseCase, logger),
		UserHandler:     NewUserHandler(userUseCase, enrollmentUseCase, statsUseCase, logger),
		TeacherHandler:  NewTeacherHandler(teacherUseCase, assignmentUseCase, submissionUseCase, logger),
		CourseHandler:   NewCourseHandler(courseUseCase, logger),
		StudentHandler:  NewStudentHandler(submissionUseCase, blobs, logger),
		VacancyHandler:  NewVacancyHandler(vacancyUseCase, logger),
		ScheduleHandler: NewScheduleHandler(scheduleUseCase, logger),
	}
}

// RegisterRoutes настраивает маршруты API
func RegisterRoutes(e *echo.Echo, h *APIHandler, authMW *auth.Middleware) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Публичные маршруты
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)

	e.GET("/courses", h.ListCourses)
	e.GET("/courses/categories", h.ListCategories)
	e.GET("/courses/:id", h.GetCourse)
	e.GET("/courses/:id/full", h.GetCourseFull)
	e.GET("/courses/:id/modules", h.ListModules)
	e.GET("/courses/:id/teachers", h.ListCourseTeachers)
	e.GET("/modules/:id/lessons", h.ListLessons)

	e.GET("/vacancies", h.ListVacancies)
	e.POST("/vacancies/analyze", h.Analyze)

	e.GET("/trainerSchedule/:id", h.GetSchedule)

	// Маршруты под аутентификацией
	authed := e.Group("", authMW.Authenticate)
	authed.GET("/users/me", h.GetMe)
	authed.GET("/users/me/progress", h.GetMyProgress)
	authed.PUT("/users/:id", h.UpdateProfile)
	authed.GET("/uploads/:name", h.DownloadFile)

	authed.POST("/trainerSchedule/:id", h.SetSchedule)
	authed.DELETE("/trainerSchedule/:id", h.ClearSchedule)

	authed.POST("/student/progress/:id/lessons/:lessonId/submit", h.SubmitFile)

	authed.GET("/teachers", h.ListTeachers)
	authed.GET("/teachers/:id", h.GetTeacher)
	authed.PUT("/teachers/:id", h.UpdateTeacher)
	authed.GET("/teachers/:id/stats", h.GetTeacherStats)

	// Панель преподавателя
	teacher := authed.Group("/teacher", authMW.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	teacher.GET("/dashboard", h.GetDashboard)
	teacher.GET("/assignments", h.ListAssignments)
	teacher.POST("/assignments", h.CreateAssignment)
	teacher.GET("/assignments/:id/submissions", h.ListSubmissions)
	teacher.PUT("/submissions/:id", h.GradeSubmission)
	teacher.GET("/students", h.ListStudents)
	teacher.GET("/students/:id", h.GetStudent)

	// Наполнение дерева контента — преподаватель своего курса или администратор
	authed.POST("/courses/:id/modules", h.AddModule, authMW.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))
	authed.POST("/courses/:id/modules/:moduleId/lessons", h.AddLesson, authMW.RequireRoles(domain.RoleTeacher, domain.RoleAdmin))

	// Панель администратора
	admin := authed.Group("/admin", authMW.RequireRoles(domain.RoleAdmin))
	admin.GET("/stats", h.GetAdminStats)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.PUT("/users/:id/role", h.ChangeRole)
	admin.PUT("/users/:id/active", h.SetActive)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/users/:id/enroll", h.Enroll)

	admin.POST("/courses", h.CreateCourse)
	admin.PUT("/courses/:id", h.UpdateCourse)
	admin.DELETE("/courses/:id", h.DeleteCourse)
	admin.POST("/courses/:id/teachers", h.AssignTeacher)
	admin.DELETE("/courses/:id/teachers/:teacherId", h.UnassignTeacher)
	admin.GET("/courses/:id/teachers/available", h.ListAvailableTeachers)

	admin.POST("/teachers", h.CreateTeacher)
	admin.DELETE("/teachers/:id", h.DeleteTeacher)
}
