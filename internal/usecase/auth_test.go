package usecase_test

import (
	"context"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func TestAuthUseCase_Register_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := &UserRepository{}
	hasher := &PasswordHasher{}
	tokens := &TokenIssuer{}
	uc := usecase.NewAuthUseCase(userRepo, hasher, tokens)

	phone := "79001234567"
	userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrUserNotFound)
	userRepo.On("ExistsByPhone", ctx, phone).Return(false, nil)
	hasher.On("Hash", "strongpass").Return("hashed", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("Issue", mock.AnythingOfType("*domain.User")).Return("token-123", nil)

	user, token, err := uc.Register(ctx, domain.RegisterInput{
		Email:    "new@example.com",
		Password: "strongpass",
		Phone:    &phone,
		Surname:  "Иванов",
		Name:     "Иван",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, domain.RoleApprentice, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, "active", user.Apprentice.Status)
	assert.Equal(t, "default", user.Apprentice.TrackID)
	assert.Equal(t, "A1", user.Apprentice.GroupCode)
	assert.NotEmpty(t, user.Apprentice.EnrollmentDate)
}

func TestAuthUseCase_Register_PasswordTooShort(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAuthUseCase(&UserRepository{}, &PasswordHasher{}, &TokenIssuer{})

	user, token, err := uc.Register(ctx, domain.RegisterInput{
		Email:    "new@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthUseCase_Register_InvalidPhone(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAuthUseCase(&UserRepository{}, &PasswordHasher{}, &TokenIssuer{})

	cases := []string{"1234567890", "790012345678", "7900123456a", "+7900123456"}
	for _, phone := range cases {
		phone := phone
		_, _, err := uc.Register(ctx, domain.RegisterInput{
			Email:    "new@example.com",
			Password: "strongpass",
			Phone:    &phone,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPhone, "phone %q", phone)
	}
}

func TestAuthUseCase_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := &UserRepository{}
	uc := usecase.NewAuthUseCase(userRepo, &PasswordHasher{}, &TokenIssuer{})

	existing := &domain.User{ID: "u1", Email: "taken@example.com"}
	userRepo.On("GetByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, _, err := uc.Register(ctx, domain.RegisterInput{
		Email:    "taken@example.com",
		Password: "strongpass",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthUseCase_Register_PhoneTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := &UserRepository{}
	uc := usecase.NewAuthUseCase(userRepo, &PasswordHasher{}, &TokenIssuer{})

	phone := "79001234567"
	userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domain.ErrUserNotFound)
	userRepo.On("ExistsByPhone", ctx, phone).Return(true, nil)

	_, _, err := uc.Register(ctx, domain.RegisterInput{
		Email:    "new@example.com",
		Password: "strongpass",
		Phone:    &phone,
	})

	assert.ErrorIs(t, err, domain.ErrPhoneTaken)
}

func TestAuthUseCase_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := &UserRepository{}
	hasher := &PasswordHasher{}
	tokens := &TokenIssuer{}
	uc := usecase.NewAuthUseCase(userRepo, hasher, tokens)

	user := &domain.User{ID: "u1", Email: "user@example.com", Password: "hashed", Active: true}
	userRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	hasher.On("Verify", "hashed", "strongpass").Return(true)
	tokens.On("Issue", user).Return("token-123", nil)

	token, err := uc.Login(ctx, "user@example.com", "strongpass")

	assert.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestAuthUseCase_Login_FailuresIndistinguishable(t *testing.T) {
	ctx := context.Background()

	// Несуществующий пользователь
	userRepo := &UserRepository{}
	uc := usecase.NewAuthUseCase(userRepo, &PasswordHasher{}, &TokenIssuer{})
	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)
	_, errNoUser := uc.Login(ctx, "ghost@example.com", "whatever")

	// Неверный пароль
	userRepo2 := &UserRepository{}
	hasher2 := &PasswordHasher{}
	uc2 := usecase.NewAuthUseCase(userRepo2, hasher2, &TokenIssuer{})
	user := &domain.User{ID: "u1", Email: "user@example.com", Password: "hashed", Active: true}
	userRepo2.On("GetByEmail", ctx, "user@example.com").Return(user, nil)
	hasher2.On("Verify", "hashed", "wrong").Return(false)
	_, errBadPass := uc2.Login(ctx, "user@example.com", "wrong")

	// Деактивированный аккаунт
	userRepo3 := &UserRepository{}
	hasher3 := &PasswordHasher{}
	uc3 := usecase.NewAuthUseCase(userRepo3, hasher3, &TokenIssuer{})
	inactive := &domain.User{ID: "u2", Email: "off@example.com", Password: "hashed", Active: false}
	userRepo3.On("GetByEmail", ctx, "off@example.com").Return(inactive, nil)
	hasher3.On("Verify", "hashed", "strongpass").Return(true)
	_, errInactive := uc3.Login(ctx, "off@example.com", "strongpass")

	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errInactive, domain.ErrInvalidCredentials)
}
