package usecase

import (
	"context"
	"time"

	"skillmap-service/internal/domain"
)

// Дефолты профиля преподавателя при повышении роли.
const (
	defaultTeacherDepartment = "Общий отдел"
	defaultTeacherTitle      = "Преподаватель"
)

// UserUseCase реализует бизнес-логику для работы с пользователями.
type UserUseCase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(userRepo domain.UserRepository, hasher domain.PasswordHasher) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// GetUser возвращает профиль пользователя. Доступ — администратор или сам пользователь.
func (uc *UserUseCase) GetUser(ctx context.Context, actor *domain.User, userID string) (*domain.User, error) {
	if !actor.CanAccessOwned(userID) {
		return nil, domain.ErrForbidden
	}

	return uc.userRepo.GetByID(ctx, userID)
}

// ListUsers возвращает пользователей по фильтру. Только для администратора.
func (uc *UserUseCase) ListUsers(ctx context.Context, actor *domain.User, filter domain.UserFilter) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return uc.userRepo.List(ctx, filter)
}

// ChangeRole меняет роль пользователя. Смена на ту же роль — no-op.
// Атрибуты прежней роли не стираются, недостающие атрибуты новой роли
// заполняются дефолтами.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor *domain.User, userID, newRole string) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidRoles[newRole] {
		return nil, domain.ErrInvalidRole
	}

	// 1. Загружаем пользователя
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Смена на текущую роль ничего не меняет
	if user.Role == newRole {
		return user, nil
	}

	// 3. Переводим роль и заполняем дефолты новой роли
	user.Role = newRole
	switch newRole {
	case domain.RoleTeacher:
		if user.Teacher.HireDate == "" {
			user.Teacher.HireDate = time.Now().Format(dateLayout)
		}
		if user.Teacher.Department == "" {
			user.Teacher.Department = defaultTeacherDepartment
		}
		if user.Teacher.Title == "" {
			user.Teacher.Title = defaultTeacherTitle
		}
	case domain.RoleApprentice:
		if user.Apprentice.Status == "" {
			user.Apprentice.Status = "active"
		}
		if user.Apprentice.EnrollmentDate == "" {
			user.Apprentice.EnrollmentDate = time.Now().Format(dateLayout)
		}
	}

	return uc.userRepo.Update(ctx, user)
}

// SetActive устанавливает флаг активности пользователя. Идемпотентна.
func (uc *UserUseCase) SetActive(ctx context.Context, actor *domain.User, userID string, active bool) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Active == active {
		return user, nil
	}

	return uc.userRepo.UpdateActiveStatus(ctx, userID, active)
}

// UpdateProfile частично обновляет профиль. Доступ — администратор или сам пользователь.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor *domain.User, userID string, input domain.UpdateProfileInput) (*domain.User, error) {
	if !actor.CanAccessOwned(userID) {
		return nil, domain.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		if !isValidPhone(*input.Phone) {
			return nil, domain.ErrInvalidPhone
		}
		user.Phone = input.Phone
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, domain.ErrPasswordTooShort
		}
		hash, err := uc.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if input.AdvisorID != nil {
		advisor, err := uc.userRepo.GetByID(ctx, *input.AdvisorID)
		if err != nil {
			return nil, err
		}
		if advisor.Role != domain.RoleTeacher {
			return nil, domain.ErrAdvisorNotTeacher
		}
		user.Apprentice.AdvisorUserID = input.AdvisorID
	}

	applyString(&user.Surname, input.Surname)
	applyString(&user.Name, input.Name)
	applyString(&user.Patronymic, input.Patronymic)
	applyString(&user.Teacher.Department, input.Department)
	applyString(&user.Teacher.Title, input.Title)
	applyString(&user.Teacher.Bio, input.Bio)
	applyString(&user.Teacher.OfficeHours, input.OfficeHours)
	if input.Specialties != nil {
		user.Teacher.Specialties = input.Specialties
	}
	if input.HoursPerWeek != nil {
		user.Teacher.HoursPerWeek = *input.HoursPerWeek
	}

	return uc.userRepo.Update(ctx, user)
}

// DeleteUser удаляет пользователя. Доступ — администратор или сам пользователь.
func (uc *UserUseCase) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if !actor.CanAccessOwned(userID) {
		return domain.ErrForbidden
	}

	return uc.userRepo.Delete(ctx, userID)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
