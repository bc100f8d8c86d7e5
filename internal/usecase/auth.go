package usecase

import (
	"context"
	"errors"
	"time"

	"skillmap-service/internal/domain"

	"github.com/google/uuid"
)

// dateLayout — формат дат профиля (hire_date, enrollment_date).
const dateLayout = "02.01.2006"

// AuthUseCase реализует бизнес-логику регистрации и входа.
type AuthUseCase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer) domain.AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register создает нового пользователя с ролью apprentice и выдает токен доступа.
func (uc *AuthUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	// Валидация входных данных
	if len(input.Password) < 8 {
		return nil, "", domain.ErrPasswordTooShort
	}
	if input.Phone != nil && !isValidPhone(*input.Phone) {
		return nil, "", domain.ErrInvalidPhone
	}

	// 1. Проверяем уникальность email
	_, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	// 2. Проверяем уникальность телефона
	if input.Phone != nil {
		taken, err := uc.userRepo.ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, "", err
		}
		if taken {
			return nil, "", domain.ErrPhoneTaken
		}
	}

	// 3. Хешируем пароль
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	// 4. Создаем пользователя с дефолтами роли apprentice
	now := time.Now()
	user := &domain.User{
		ID:         uuid.NewString(),
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   hash,
		Surname:    input.Surname,
		Name:       input.Name,
		Patronymic: input.Patronymic,
		Active:     true,
		RegDate:    now,
		Role:       domain.RoleApprentice,
		Apprentice: domain.ApprenticeProfile{
			Status:         "active",
			TrackID:        "default",
			GroupCode:      "A1",
			EnrollmentDate: now.Format(dateLayout),
		},
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// 5. Выпускаем токен
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login проверяет учетные данные и выдает токен доступа.
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if !uc.hasher.Verify(user.Password, password) {
		return "", domain.ErrInvalidCredentials
	}

	if !user.Active {
		return "", domain.ErrInvalidCredentials
	}

	return uc.tokens.Issue(user)
}

// isValidPhone проверяет, что телефон состоит ровно из 11 цифр.
func isValidPhone(phone string) bool {
	if len(phone) != 11 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
