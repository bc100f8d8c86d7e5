package usecase

import (
	"context"
	"errors"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// TeacherUseCase реализует бизнес-логику справочника преподавателей.
type TeacherUseCase struct {
	userRepo  domain.UserRepository
	statsRepo domain.StatsRepository
	userUC    domain.UserUseCase
	hasher    domain.PasswordHasher
}

// NewTeacherUseCase создает новый экземпляр TeacherUseCase.
func NewTeacherUseCase(userRepo domain.UserRepository, statsRepo domain.StatsRepository, userUC domain.UserUseCase, hasher domain.PasswordHasher) domain.TeacherUseCase {
	return &TeacherUseCase{
		userRepo:  userRepo,
		statsRepo: statsRepo,
		userUC:    userUC,
		hasher:    hasher,
	}
}

// CreateTeacher создает пользователя с ролью teacher. Только для администратора.
func (uc *TeacherUseCase) CreateTeacher(ctx context.Context, actor *domain.User, input domain.CreateTeacherInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}
	if input.Phone != nil && !isValidPhone(*input.Phone) {
		return nil, domain.ErrInvalidPhone
	}

	// 1. Проверяем уникальность email
	_, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// 2. Хешируем пароль и создаем преподавателя
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	teacher := &domain.User{
		ID:         uuid.NewString(),
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   hash,
		Surname:    input.Surname,
		Name:       input.Name,
		Patronymic: input.Patronymic,
		Active:     true,
		RegDate:    now,
		Role:       domain.RoleTeacher,
		Teacher: domain.TeacherProfile{
			HireDate:     now.Format(dateLayout),
			Department:   orDefault(input.Department, defaultTeacherDepartment),
			Title:        orDefault(input.Title, defaultTeacherTitle),
			Bio:          input.Bio,
			Specialties:  input.Specialties,
			OfficeHours:  input.OfficeHours,
			HoursPerWeek: input.HoursPerWeek,
		},
	}

	if err := uc.userRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

// ListTeachers возвращает преподавателей с поиском. Только для администратора.
func (uc *TeacherUseCase) ListTeachers(ctx context.Context, actor *domain.User, search string, activeOnly bool) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	role := domain.RoleTeacher
	filter := domain.UserFilter{Role: &role, Search: search}
	if activeOnly {
		active := true
		filter.Active = &active
	}

	return uc.userRepo.List(ctx, filter)
}

// GetTeacher возвращает преподавателя по ID. Только для администратора.
func (uc *TeacherUseCase) GetTeacher(ctx context.Context, actor *domain.User, teacherID string) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return uc.getTeacher(ctx, teacherID)
}

// UpdateTeacher обновляет профиль преподавателя. Доступ — администратор или сам преподаватель.
func (uc *TeacherUseCase) UpdateTeacher(ctx context.Context, actor *domain.User, teacherID string, input domain.UpdateProfileInput) (*domain.User, error) {
	if !actor.CanAccessOwned(teacherID) {
		return nil, domain.ErrForbidden
	}

	if _, err := uc.getTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	return uc.userUC.UpdateProfile(ctx, actor, teacherID, input)
}

// DeleteTeacher удаляет преподавателя. Свой аккаунт удалить нельзя.
func (uc *TeacherUseCase) DeleteTeacher(ctx context.Context, actor *domain.User, teacherID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if actor.ID == teacherID {
		return domain.ErrSelfDelete
	}

	if _, err := uc.getTeacher(ctx, teacherID); err != nil {
		return err
	}

	return uc.userRepo.Delete(ctx, teacherID)
}

// GetTeacherStats возвращает статистику преподавателя. Только для администратора.
func (uc *TeacherUseCase) GetTeacherStats(ctx context.Context, actor *domain.User, teacherID string) (*domain.TeacherStats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return uc.statsRepo.GetTeacherStats(ctx, teacherID)
}

func (uc *TeacherUseCase) getTeacher(ctx context.Context, teacherID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTeacherNotFound
		}
		return nil, err
	}
	if user.Role != domain.RoleTeacher {
		return nil, domain.ErrTeacherNotFound
	}
	return user, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
