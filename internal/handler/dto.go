package handler

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// API модели запросов и ответов

type RegisterRequest struct {
	Email      types.Email `json:"email" validate:"required"`
	Password   string      `json:"password" validate:"required,min=8"`
	Phone      *string     `json:"phone" validate:"required"`
	Surname    string      `json:"surname" validate:"required"`
	Name       string      `json:"name" validate:"required"`
	Patronymic string      `json:"patronymic"`
}

type LoginRequest struct {
	Username types.Email `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Ok     bool   `json:"ok"`
	UserID string `json:"user_id"`
	Access string `json:"access"`
}

type LoginResponse struct {
	Access  string  `json:"access"`
	Refresh *string `json:"refresh"`
}

type AdminProfileDTO struct {
	SuperPermissions bool       `json:"super_permissions"`
	CanManageRoles   bool       `json:"can_manage_roles"`
	CanManageBilling bool       `json:"can_manage_billing"`
	CanImpersonate   bool       `json:"can_impersonate"`
	LastAuditAction  *time.Time `json:"last_audit_action"`
}

type ApprenticeProfileDTO struct {
	Status             string  `json:"status"`
	TrackID            string  `json:"track_id"`
	GroupCode          string  `json:"group_code"`
	AdvisorUserID      *string `json:"advisor_user_id"`
	HoursPerWeek       int     `json:"hours_per_week"`
	ProgressPercent    float64 `json:"progress_percent"`
	CreditsEarned      int     `json:"credits_earned"`
	EnrollmentDate     string  `json:"enrollment_date"`
	ExpectedGraduation string  `json:"expected_graduation"`
}

type TeacherProfileDTO struct {
	HireDate     string   `json:"hire_date"`
	Department   string   `json:"department"`
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	Specialties  []string `json:"specialties"`
	OfficeHours  string   `json:"office_hours"`
	HoursPerWeek int      `json:"hours_per_week"`
	Rating       float64  `json:"rating"`
}

type ModeratorProfileDTO struct {
	AssignedScope    string     `json:"assigned_scope"`
	PermissionsScope string     `json:"permissions_scope"`
	OnCall           bool       `json:"on_call"`
	WarningsIssued   int        `json:"warnings_issued"`
	UsersBanned      int        `json:"users_banned"`
	LastActionAt     *time.Time `json:"last_action_at"`
}

type UserDTO struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Surname    string    `json:"surname"`
	Name       string    `json:"name"`
	Patronymic string    `json:"patronymic"`
	Active     bool      `json:"active"`
	RegDate    time.Time `json:"reg_date"`
	Type       string    `json:"type"`

	Admin      *AdminProfileDTO      `json:"admin_profile,omitempty"`
	Apprentice *ApprenticeProfileDTO `json:"apprentice_profile,omitempty"`
	Teacher    *TeacherProfileDTO    `json:"teacher_profile,omitempty"`
	Moderator  *ModeratorProfileDTO  `json:"moderator_profile,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type UpdateProfileRequest struct {
	Surname      *string  `json:"surname"`
	Name         *string  `json:"name"`
	Patronymic   *string  `json:"patronymic"`
	Phone        *string  `json:"phone"`
	Password     *string  `json:"password"`
	Department   *string  `json:"department"`
	Title        *string  `json:"title"`
	Bio          *string  `json:"bio"`
	Specialties  []string `json:"specialties"`
	OfficeHours  *string  `json:"office_hours"`
	HoursPerWeek *int     `json:"hours_per_week"`
	AdvisorID    *string  `json:"advisor_user_id"`
}

type CreateTeacherRequest struct {
	Email        types.Email `json:"email" validate:"required"`
	Password     string      `json:"password" validate:"required,min=8"`
	Phone        *string     `json:"phone"`
	Surname      string      `json:"surname" validate:"required"`
	Name         string      `json:"name" validate:"required"`
	Patronymic   string      `json:"patronymic"`
	Department   string      `json:"department"`
	Title        string      `json:"title"`
	Bio          string      `json:"bio"`
	Specialties  []string    `json:"specialties"`
	OfficeHours  string      `json:"office_hours"`
	HoursPerWeek int         `json:"hours_per_week"`
}

type CourseDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color"`
	Icon          string    `json:"icon"`
	Duration      string    `json:"duration"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	Icon          string `json:"icon"`
	Duration      string `json:"duration"`
	IsPublic      *bool  `json:"is_public"`
}

type UpdateCourseRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Category      *string `json:"category"`
	CategoryName  *string `json:"category_name"`
	CategoryColor *string `json:"category_color"`
	Icon          *string `json:"icon"`
	Duration      *string `json:"duration"`
	IsPublic      *bool   `json:"is_public"`
}

type CategoryDTO struct {
	Category      string `json:"category"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	CourseCount   int    `json:"course_count"`
}

type ModuleDTO struct {
	ID              string `json:"id"`
	CourseID        string `json:"course_id"`
	Order           int    `json:"order"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	RecommendedTime string `json:"recommended_time"`
}

type CreateModuleRequest struct {
	Order           int    `json:"order" validate:"required,gt=0"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	RecommendedTime string `json:"recommended_time"`
}

type LessonDTO struct {
	ID          string `json:"id"`
	ModuleID    string `json:"module_id"`
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PptxURL     string `json:"pptx_url"`
	HomeworkURL string `json:"homework_url"`
}

type ModuleTreeDTO struct {
	ModuleDTO
	Lessons []LessonDTO `json:"lessons"`
}

type CourseTreeDTO struct {
	CourseDTO
	Modules      []ModuleTreeDTO `json:"modules"`
	TotalModules int             `json:"total_modules"`
	TotalLessons int             `json:"total_lessons"`
}

type EnrollRequest struct {
	CourseName string `json:"course_name" validate:"required"`
	Category   string `json:"category"`
}

type EnrollResponse struct {
	ProgressID string `json:"progress_id"`
	Created    bool   `json:"created"`
}

type ProgressDTO struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	CourseID         string    `json:"course_id"`
	CurrentModuleID  *string   `json:"current_module_id"`
	CompletedLessons []string  `json:"completed_lessons"`
	ProgressPercent  float64   `json:"progress_percent"`
	StartedAt        time.Time `json:"started_at"`
	LastAccessed     time.Time `json:"last_accessed"`
}

type AssignTeacherRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
}

type CreateAssignmentRequest struct {
	StudentID string      `json:"student_id" validate:"required"`
	LessonID  string      `json:"lesson_id" validate:"required"`
	DueDate   *types.Date `json:"due_date"`
	Note      string      `json:"note"`
}

type AssignmentDTO struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	LessonID    string     `json:"lesson_id"`
	AssignedBy  string     `json:"assigned_by"`
	AssignedAt  time.Time  `json:"assigned_at"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Note        string     `json:"note"`
	LessonTitle string     `json:"lesson_title,omitempty"`
	StudentName string     `json:"student_name,omitempty"`
}

type SubmissionDTO struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"user_id"`
	FileURL      string    `json:"file_url"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	Grade        *float64  `json:"grade"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

type GradeRequest struct {
	Status   string   `json:"status" validate:"required"`
	Grade    *float64 `json:"grade"`
	Feedback string   `json:"feedback"`
}

type ActivityItemDTO struct {
	Kind        string    `json:"kind"`
	StudentName string    `json:"student_name"`
	LessonTitle string    `json:"lesson_title"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type DashboardDTO struct {
	CoursesCount     int               `json:"courses_count"`
	StudentsCount    int               `json:"students_count"`
	AssignmentsCount int               `json:"assignments_count"`
	SubmittedCount   int               `json:"submitted_count"`
	AvgProgress      float64           `json:"avg_progress"`
	RecentActivity   []ActivityItemDTO `json:"recent_activity"`
}

type TeacherStatsDTO struct {
	TeacherID string `json:"teacher_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Stats     struct {
		Courses     int     `json:"courses"`
		Students    int     `json:"students"`
		Assignments int     `json:"assignments"`
		AvgRating   float64 `json:"avg_rating"`
	} `json:"stats"`
	Info struct {
		Department string `json:"department"`
		Title      string `json:"title"`
		HireDate   string `json:"hire_date"`
		Active     bool   `json:"active"`
	} `json:"info"`
}

type AdminStatsDTO struct {
	TotalUsers       int            `json:"total_users"`
	ActiveUsers      int            `json:"active_users"`
	UsersByRole      map[string]int `json:"users_by_role"`
	TotalCourses     int            `json:"total_courses"`
	TotalEnrollments int            `json:"total_enrollments"`
	TotalAssignments int            `json:"total_assignments"`
}

type VacancyDTO struct {
	ID          string    `json:"id"`
	HHID        string    `json:"hh_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Salary      string    `json:"salary"`
	Experience  string    `json:"experience"`
	Employment  string    `json:"employment"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	URL         string    `json:"url"`
	ParsedAt    time.Time `json:"parsed_at"`
}

type AnalyzeRequest struct {
	Title string   `json:"title" validate:"required"`
	Links []string `json:"links" validate:"required,min=1"`
	Level string   `json:"level"`
}

type RecommendationDTO struct {
	CourseDTO
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type AnalyzeResponse struct {
	AnalysisID string `json:"analysis_id"`
	Vacancy    struct {
		Title     string   `json:"title"`
		Links     []string `json:"links"`
		ParsedIDs []string `json:"parsed_ids"`
		Level     string   `json:"level"`
	} `json:"vacancy"`
	Recommendations struct {
		TotalCoursesFound int                 `json:"total_courses_found"`
		TopCourses        []RecommendationDTO `json:"top_courses"`
		SuggestedPlan     struct {
			DurationEstimate string `json:"duration_estimate"`
			WeeklyHours      string `json:"weekly_hours"`
			StartingPoint    string `json:"starting_point"`
		} `json:"suggested_plan"`
	} `json:"recommendations"`
	AnalysisDate time.Time `json:"analysis_date"`
	NextSteps    []string  `json:"next_steps"`
}

type DayScheduleDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ScheduleRequest struct {
	Days [7]DayScheduleDTO `json:"days"`
}

type ScheduleDTO struct {
	TeacherID string            `json:"teacher_id"`
	Days      [7]DayScheduleDTO `json:"days"`
}
