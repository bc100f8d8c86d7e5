package auth

import (
	"net/http"
	"strings"

	"skillmap-service/internal/domain"

	"github.com/labstack/echo/v4"
)

const userContextKey = "current_user"

// CurrentUser извлекает аутентифицированного пользователя из echo-контекста.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok
}

// Middleware проверяет bearer-токены и роли на защищенных маршрутах.
type Middleware struct {
	manager  *Manager
	userRepo domain.UserRepository
}

// NewMiddleware создает новый middleware аутентификации.
func NewMiddleware(manager *Manager, userRepo domain.UserRepository) *Middleware {
	return &Middleware{
		manager:  manager,
		userRepo: userRepo,
	}
}

// Authenticate проверяет заголовок Authorization и кладет пользователя в контекст.
// Пользователь должен существовать и быть активным на момент запроса.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c)
		}

		claims, err := m.manager.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), claims.UserID)
		if err != nil || !user.Active {
			return unauthorized(c)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireRoles пропускает только пользователей с одной из перечисленных ролей.
func (m *Middleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return unauthorized(c)
			}

			if !user.HasRole(roles...) {
				httpErr, _ := domain.ToHTTPError(domain.ErrForbidden)
				return c.JSON(http.StatusForbidden, domain.ErrorResponse{Error: httpErr})
			}

			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	httpErr, _ := domain.ToHTTPError(domain.ErrInvalidToken)
	return c.JSON(http.StatusUnauthorized, domain.ErrorResponse{Error: httpErr})
}
