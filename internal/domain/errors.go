package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidPhone            = errors.New("phone must be exactly 11 digits")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInvalidOrder            = errors.New("order must be a positive integer")
	ErrInvalidSubmissionStatus = errors.New("invalid submission status")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file too large")
	ErrEmptyAnalysisRequest    = errors.New("vacancy title and links are required")

	// Auth errors
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrSelfDelete         = errors.New("cannot delete own account")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrPhoneTaken        = errors.New("phone already registered")
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrAdvisorNotTeacher = errors.New("advisor must be a teacher")

	// Course errors
	ErrCourseNotFound    = errors.New("course not found")
	ErrCourseNameTaken   = errors.New("course name already exists")
	ErrCourseHasStudents = errors.New("course has enrolled students")
	ErrModuleNotFound    = errors.New("module not found")
	ErrModuleOrderTaken  = errors.New("module order already used in course")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrLessonOrderTaken  = errors.New("lesson order already used in module")

	// Teacher assignment errors
	ErrTeacherAlreadyAssigned = errors.New("teacher already assigned to course")
	ErrTeacherNotAssigned     = errors.New("teacher is not assigned to course")

	// Assignment / submission errors
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrAssignmentAlreadyExists = errors.New("assignment for this lesson already exists")
	ErrSubmissionNotFound      = errors.New("submission not found")

	// Progress errors
	ErrProgressNotFound = errors.New("progress not found")

	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
)

// HTTPError — тело ошибки в HTTP-ответе.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidPhone:            {Code: "INVALID_PHONE", Message: "phone must be exactly 11 digits"},
	ErrInvalidEmail:            {Code: "INVALID_EMAIL", Message: "email is malformed"},
	ErrPasswordTooShort:        {Code: "WEAK_PASSWORD", Message: "password must be at least 8 characters"},
	ErrInvalidRole:             {Code: "INVALID_ROLE", Message: "role must be one of admin, apprentice, teacher, moderator"},
	ErrInvalidOrder:            {Code: "INVALID_ORDER", Message: "order must be a positive integer"},
	ErrInvalidSubmissionStatus: {Code: "INVALID_STATUS", Message: "status must be one of processing, accepted, rejected"},
	ErrUnsupportedFileType:     {Code: "UNSUPPORTED_TYPE", Message: "only .docx, .pdf and .zip files are accepted"},
	ErrFileTooLarge:            {Code: "TOO_LARGE", Message: "file exceeds the 50MB limit"},
	ErrEmptyAnalysisRequest:    {Code: "INVALID_REQUEST", Message: "vacancy title and links are required"},

	ErrInvalidCredentials: {Code: "INVALID_CREDENTIALS", Message: "incorrect email or password"},
	ErrInvalidToken:       {Code: "INVALID_TOKEN", Message: "invalid or expired token"},
	ErrForbidden:          {Code: "FORBIDDEN", Message: "insufficient permissions"},
	ErrSelfDelete:         {Code: "SELF_DELETE", Message: "cannot delete own account"},

	ErrUserNotFound:      {Code: "NOT_FOUND", Message: "user not found"},
	ErrEmailTaken:        {Code: "EMAIL_TAKEN", Message: "email already registered"},
	ErrPhoneTaken:        {Code: "PHONE_TAKEN", Message: "phone already registered"},
	ErrTeacherNotFound:   {Code: "NOT_FOUND", Message: "teacher not found"},
	ErrAdvisorNotTeacher: {Code: "INVALID_ADVISOR", Message: "advisor must be a teacher"},

	ErrCourseNotFound:    {Code: "NOT_FOUND", Message: "course not found"},
	ErrCourseNameTaken:   {Code: "COURSE_EXISTS", Message: "course name already exists"},
	ErrCourseHasStudents: {Code: "COURSE_IN_USE", Message: "cannot delete course with enrolled students"},
	ErrModuleNotFound:    {Code: "NOT_FOUND", Message: "module not found"},
	ErrModuleOrderTaken:  {Code: "ORDER_TAKEN", Message: "module order already used in course"},
	ErrLessonNotFound:    {Code: "NOT_FOUND", Message: "lesson not found"},
	ErrLessonOrderTaken:  {Code: "ORDER_TAKEN", Message: "lesson order already used in module"},

	ErrTeacherAlreadyAssigned: {Code: "ALREADY_ASSIGNED", Message: "teacher already assigned to course"},
	ErrTeacherNotAssigned:     {Code: "NOT_ASSIGNED", Message: "teacher is not assigned to course"},

	ErrAssignmentNotFound:      {Code: "NOT_FOUND", Message: "assignment not found"},
	ErrAssignmentAlreadyExists: {Code: "ASSIGNMENT_EXISTS", Message: "assignment for this lesson already exists"},
	ErrSubmissionNotFound:      {Code: "NOT_FOUND", Message: "submission not found"},

	ErrProgressNotFound: {Code: "NOT_FOUND", Message: "progress not found"},
	ErrScheduleNotFound: {Code: "NOT_FOUND", Message: "schedule not found"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
