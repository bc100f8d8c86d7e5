package domain

import (
	"context"
	"time"
)

// Роли пользователей.
const (
	RoleAdmin      = "admin"
	RoleApprentice = "apprentice"
	RoleTeacher    = "teacher"
	RoleModerator  = "moderator"
)

// ValidRoles содержит допустимые значения роли пользователя.
var ValidRoles = map[string]bool{
	RoleAdmin:      true,
	RoleApprentice: true,
	RoleTeacher:    true,
	RoleModerator:  true,
}

// User представляет пользователя системы. Одна широкая запись хранит
// атрибуты всех четырех ролей, активный набор определяется полем Role.
// Смена роли не стирает атрибуты прежней роли.
type User struct {
	ID         string
	Email      string
	Phone      *string
	Password   string
	Surname    string
	Name       string
	Patronymic string
	Active     bool
	RegDate    time.Time
	Role       string

	Admin      AdminProfile
	Apprentice ApprenticeProfile
	Teacher    TeacherProfile
	Moderator  ModeratorProfile
}

// AdminProfile содержит атрибуты роли администратора.
type AdminProfile struct {
	SuperPermissions bool
	CanManageRoles   bool
	CanManageBilling bool
	CanImpersonate   bool
	LastAuditAction  *time.Time
}

// ApprenticeProfile содержит атрибуты роли ученика.
type ApprenticeProfile struct {
	Status             string
	TrackID            string
	GroupCode          string
	AdvisorUserID      *string
	HoursPerWeek       int
	ProgressPercent    float64
	CreditsEarned      int
	EnrollmentDate     string
	ExpectedGraduation string
}

// TeacherProfile содержит атрибуты роли преподавателя.
type TeacherProfile struct {
	HireDate     string
	Department   string
	Title        string
	Bio          string
	Specialties  []string
	OfficeHours  string
	HoursPerWeek int
	Rating       float64
}

// ModeratorProfile содержит атрибуты роли модератора.
type ModeratorProfile struct {
	AssignedScope    string
	PermissionsScope string
	OnCall           bool
	WarningsIssued   int
	UsersBanned      int
	LastActionAt     *time.Time
}

// FullName возвращает "Фамилия Имя" пользователя.
func (u *User) FullName() string {
	return u.Surname + " " + u.Name
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasRole проверяет, что роль пользователя входит в набор roles.
func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// CanAccessOwned разрешает доступ владельцу ресурса или администратору.
func (u *User) CanAccessOwned(ownerID string) bool {
	return u.ID == ownerID || u.IsAdmin()
}

// UserFilter задает параметры выборки пользователей.
type UserFilter struct {
	Role   *string
	Active *bool
	Search string
	Offset int
	Limit  int
}

// UserRepository определяет контракт для работы с хранилищем пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	Update(ctx context.Context, user *User) (*User, error)
	UpdateActiveStatus(ctx context.Context, userID string, active bool) (*User, error)
	Delete(ctx context.Context, userID string) error
}
