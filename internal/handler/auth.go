package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/domain"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	*BaseHandler
	authUseCase domain.AuthUseCase
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUseCase domain.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authUseCase: authUseCase,
	}
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	logger := h.logRequest(c, "register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.WithError(err).Warn("Failed to bind register request")
		return respondBadBody(c)
	}

	if err := validate.Struct(req); err != nil {
		logger.WithError(err).Warn("Register request validation failed")
		return respondValidationError(c, err)
	}

	user, token, err := h.authUseCase.Register(c.Request().Context(), domain.RegisterInput{
		Email:      string(req.Email),
		Password:   req.Password,
		Phone:      req.Phone,
		Surname:    req.Surname,
		Name:       req.Name,
		Patronymic: req.Patronymic,
	})
	if err != nil {
		logger.WithError(err).Warn("Registration failed")
		return respondError(c, err)
	}

	logger.WithField("user_id", user.ID).Info("User registered")

	return c.JSON(http.StatusCreated, RegisterResponse{
		Ok:     true,
		UserID: user.ID,
		Access: token,
	})
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	logger := h.logRequest(c, "login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.WithError(err).Warn("Failed to bind login request")
		return respondBadBody(c)
	}

	if err := validate.Struct(req); err != nil {
		logger.WithError(err).Warn("Login request validation failed")
		return respondValidationError(c, err)
	}

	token, err := h.authUseCase.Login(c.Request().Context(), string(req.Username), req.Password)
	if err != nil {
		logger.Warn("Login failed")
		return respondError(c, err)
	}

	logger.Info("User logged in")

	return c.JSON(http.StatusOK, LoginResponse{Access: token})
}
