package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"skillmap-service/internal/domain"
)

var validate = validator.New()

// getHTTPStatusCode возвращает HTTP-статус для domain ошибки
func getHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrInvalidSubmissionStatus),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrEmptyAnalysisRequest),
		errors.Is(err, domain.ErrSelfDelete),
		errors.Is(err, domain.ErrAdvisorNotTeacher):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTeacherNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrTeacherNotAssigned),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrSubmissionNotFound),
		errors.Is(err, domain.ErrProgressNotFound),
		errors.Is(err, domain.ErrScheduleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPhoneTaken),
		errors.Is(err, domain.ErrCourseNameTaken),
		errors.Is(err, domain.ErrCourseHasStudents),
		errors.Is(err, domain.ErrModuleOrderTaken),
		errors.Is(err, domain.ErrLessonOrderTaken),
		errors.Is(err, domain.ErrTeacherAlreadyAssigned),
		errors.Is(err, domain.ErrAssignmentAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError отправляет domain ошибку в формате ErrorResponse
func respondError(c echo.Context, err error) error {
	httpErr, known := domain.ToHTTPError(err)
	if !known {
		httpErr = domain.HTTPError{Code: "INTERNAL", Message: "internal server error"}
	}
	return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
}

// respondValidationError отправляет ошибку валидации входного запроса
func respondValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
		Error: domain.HTTPError{Code: "INVALID_REQUEST", Message: err.Error()},
	})
}

func respondBadBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
		Error: domain.HTTPError{Code: "INVALID_BODY", Message: "request body is malformed"},
	})
}

// toAPIUser сериализует пользователя, включая только профиль активной роли.
func toAPIUser(user *domain.User) UserDTO {
	dto := UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Phone:      user.Phone,
		Surname:    user.Surname,
		Name:       user.Name,
		Patronymic: user.Patronymic,
		Active:     user.Active,
		RegDate:    user.RegDate,
		Type:       user.Role,
	}

	switch user.Role {
	case domain.RoleAdmin:
		dto.Admin = &AdminProfileDTO{
			SuperPermissions: user.Admin.SuperPermissions,
			CanManageRoles:   user.Admin.CanManageRoles,
			CanManageBilling: user.Admin.CanManageBilling,
			CanImpersonate:   user.Admin.CanImpersonate,
			LastAuditAction:  user.Admin.LastAuditAction,
		}
	case domain.RoleApprentice:
		dto.Apprentice = &ApprenticeProfileDTO{
			Status:             user.Apprentice.Status,
			TrackID:            user.Apprentice.TrackID,
			GroupCode:          user.Apprentice.GroupCode,
			AdvisorUserID:      user.Apprentice.AdvisorUserID,
			HoursPerWeek:       user.Apprentice.HoursPerWeek,
			ProgressPercent:    user.Apprentice.ProgressPercent,
			CreditsEarned:      user.Apprentice.CreditsEarned,
			EnrollmentDate:     user.Apprentice.EnrollmentDate,
			ExpectedGraduation: user.Apprentice.ExpectedGraduation,
		}
	case domain.RoleTeacher:
		dto.Teacher = &TeacherProfileDTO{
			HireDate:     user.Teacher.HireDate,
			Department:   user.Teacher.Department,
			Title:        user.Teacher.Title,
			Bio:          user.Teacher.Bio,
			Specialties:  user.Teacher.Specialties,
			OfficeHours:  user.Teacher.OfficeHours,
			HoursPerWeek: user.Teacher.HoursPerWeek,
			Rating:       user.Teacher.Rating,
		}
	case domain.RoleModerator:
		dto.Moderator = &ModeratorProfileDTO{
			AssignedScope:    user.Moderator.AssignedScope,
			PermissionsScope: user.Moderator.PermissionsScope,
			OnCall:           user.Moderator.OnCall,
			WarningsIssued:   user.Moderator.WarningsIssued,
			UsersBanned:      user.Moderator.UsersBanned,
			LastActionAt:     user.Moderator.LastActionAt,
		}
	}

	return dto
}

func toAPIUsers(users []*domain.User) []UserDTO {
	result := make([]UserDTO, 0, len(users))
	for _, user := range users {
		result = append(result, toAPIUser(user))
	}
	return result
}

func toAPICourse(course *domain.Course) CourseDTO {
	return CourseDTO{
		ID:            course.ID,
		Name:          course.Name,
		Description:   course.Description,
		Category:      course.Category,
		CategoryName:  course.CategoryName,
		CategoryColor: course.CategoryColor,
		Icon:          course.Icon,
		Duration:      course.Duration,
		IsPublic:      course.IsPublic,
		CreatedAt:     course.CreatedAt,
	}
}

func toAPICourses(courses []*domain.Course) []CourseDTO {
	result := make([]CourseDTO, 0, len(courses))
	for _, course := range courses {
		result = append(result, toAPICourse(course))
	}
	return result
}

func toAPIModule(module *domain.CourseModule) ModuleDTO {
	return ModuleDTO{
		ID:              module.ID,
		CourseID:        module.CourseID,
		Order:           module.Order,
		Title:           module.Title,
		Description:     module.Description,
		RecommendedTime: module.RecommendedTime,
	}
}

func toAPILesson(lesson *domain.CourseLesson) LessonDTO {
	return LessonDTO{
		ID:          lesson.ID,
		ModuleID:    lesson.ModuleID,
		Order:       lesson.Order,
		Title:       lesson.Title,
		Description: lesson.Description,
		PptxURL:     lesson.PptxURL,
		HomeworkURL: lesson.HomeworkURL,
	}
}

func toAPICourseTree(tree *domain.CourseTree) CourseTreeDTO {
	dto := CourseTreeDTO{
		CourseDTO:    toAPICourse(tree.Course),
		Modules:      make([]ModuleTreeDTO, 0, len(tree.Modules)),
		TotalModules: tree.TotalModules,
		TotalLessons: tree.TotalLessons,
	}
	for _, mt := range tree.Modules {
		node := ModuleTreeDTO{
			ModuleDTO: toAPIModule(mt.Module),
			Lessons:   make([]LessonDTO, 0, len(mt.Lessons)),
		}
		for _, lesson := range mt.Lessons {
			node.Lessons = append(node.Lessons, toAPILesson(lesson))
		}
		dto.Modules = append(dto.Modules, node)
	}
	return dto
}

func toAPIProgress(progress *domain.UserCourseProgress) ProgressDTO {
	return ProgressDTO{
		ID:               progress.ID,
		UserID:           progress.UserID,
		CourseID:         progress.CourseID,
		CurrentModuleID:  progress.CurrentModuleID,
		CompletedLessons: progress.CompletedLessons,
		ProgressPercent:  progress.ProgressPercent,
		StartedAt:        progress.StartedAt,
		LastAccessed:     progress.LastAccessed,
	}
}

func toAPIAssignment(assignment *domain.LessonAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         assignment.ID,
		UserID:     assignment.UserID,
		LessonID:   assignment.LessonID,
		AssignedBy: assignment.AssignedBy,
		AssignedAt: assignment.AssignedAt,
		DueDate:    assignment.DueDate,
		Status:     assignment.Status,
		Note:       assignment.Note,
	}
}

func toAPIAssignmentInfo(info *domain.AssignmentInfo) AssignmentDTO {
	dto := toAPIAssignment(info.Assignment)
	dto.LessonTitle = info.LessonTitle
	dto.StudentName = info.StudentName
	return dto
}

func toAPISubmission(submission *domain.LessonSubmission) SubmissionDTO {
	return SubmissionDTO{
		ID:           submission.ID,
		AssignmentID: submission.AssignmentID,
		UserID:       submission.UserID,
		FileURL:      submission.FileURL,
		Filename:     submission.Filename,
		Status:       submission.Status,
		Grade:        submission.Grade,
		Feedback:     submission.Feedback,
		CreatedAt:    submission.CreatedAt,
	}
}

func toAPIDashboard(dashboard *domain.TeacherDashboard) DashboardDTO {
	dto := DashboardDTO{
		CoursesCount:     dashboard.CoursesCount,
		StudentsCount:    dashboard.StudentsCount,
		AssignmentsCount: dashboard.AssignmentsCount,
		SubmittedCount:   dashboard.SubmittedCount,
		AvgProgress:      dashboard.AvgProgress,
		RecentActivity:   make([]ActivityItemDTO, 0, len(dashboard.RecentActivity)),
	}
	for _, item := range dashboard.RecentActivity {
		dto.RecentActivity = append(dto.RecentActivity, ActivityItemDTO{
			Kind:        item.Kind,
			StudentName: item.StudentName,
			LessonTitle: item.LessonTitle,
			Status:      item.Status,
			OccurredAt:  item.OccurredAt,
		})
	}
	return dto
}

func toAPITeacherStats(stats *domain.TeacherStats) TeacherStatsDTO {
	dto := TeacherStatsDTO{
		TeacherID: stats.TeacherID,
		Name:      stats.FullName,
		Email:     stats.Email,
	}
	dto.Stats.Courses = stats.CoursesCount
	dto.Stats.Students = stats.StudentsCount
	dto.Stats.Assignments = stats.AssignmentsCount
	dto.Stats.AvgRating = stats.AvgRating
	dto.Info.Department = stats.Department
	dto.Info.Title = stats.Title
	dto.Info.HireDate = stats.HireDate
	dto.Info.Active = stats.Active
	return dto
}

func toAPIAdminStats(stats *domain.AdminStats) AdminStatsDTO {
	return AdminStatsDTO{
		TotalUsers:       stats.TotalUsers,
		ActiveUsers:      stats.ActiveUsers,
		UsersByRole:      stats.UsersByRole,
		TotalCourses:     stats.TotalCourses,
		TotalEnrollments: stats.TotalEnrollments,
		TotalAssignments: stats.TotalAssignments,
	}
}

func toAPIVacancy(vacancy *domain.Vacancy) VacancyDTO {
	return VacancyDTO{
		ID:          vacancy.ID,
		HHID:        vacancy.HHID,
		Title:       vacancy.Title,
		Company:     vacancy.Company,
		Salary:      vacancy.Salary,
		Experience:  vacancy.Experience,
		Employment:  vacancy.Employment,
		Description: vacancy.Description,
		Skills:      vacancy.Skills,
		URL:         vacancy.URL,
		ParsedAt:    vacancy.ParsedAt,
	}
}

func toAPIAnalysis(analysis *domain.VacancyAnalysis) AnalyzeResponse {
	resp := AnalyzeResponse{
		AnalysisID:   analysis.AnalysisID,
		AnalysisDate: analysis.AnalysisDate,
		NextSteps: []string{
			"Зарегистрируйтесь на платформе",
			"Запишитесь на рекомендованные курсы",
			"Следуйте предложенному плану обучения",
		},
	}
	resp.Vacancy.Title = analysis.Title
	resp.Vacancy.Links = analysis.Links
	resp.Vacancy.ParsedIDs = analysis.ParsedIDs
	resp.Vacancy.Level = analysis.Level
	resp.Recommendations.TotalCoursesFound = analysis.TotalFound
	resp.Recommendations.TopCourses = make([]RecommendationDTO, 0, len(analysis.TopCourses))
	for _, rec := range analysis.TopCourses {
		resp.Recommendations.TopCourses = append(resp.Recommendations.TopCourses, RecommendationDTO{
			CourseDTO: toAPICourse(rec.Course),
			Score:     rec.Score,
			Reasons:   rec.Reasons,
		})
	}
	resp.Recommendations.SuggestedPlan.DurationEstimate = "3-6 месяцев"
	resp.Recommendations.SuggestedPlan.WeeklyHours = "10-15 часов"
	resp.Recommendations.SuggestedPlan.StartingPoint = analysis.StartingPoint
	return resp
}

func toAPISchedule(schedule *domain.TeacherSchedule) ScheduleDTO {
	dto := ScheduleDTO{TeacherID: schedule.TeacherID}
	for i, day := range schedule.Days {
		dto.Days[i] = DayScheduleDTO{Start: day.Start, End: day.End}
	}
	return dto
}
