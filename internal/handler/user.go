package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

// UserHandler обрабатывает запросы управления пользователями
type UserHandler struct {
	*BaseHandler
	userUseCase       domain.UserUseCase
	enrollmentUseCase domain.EnrollmentUseCase
	statsUseCase      domain.StatsUseCase
}

// NewUserHandler создает новый экземпляр UserHandler
func NewUserHandler(
	userUseCase domain.UserUseCase,
	enrollmentUseCase domain.EnrollmentUseCase,
	statsUseCase domain.StatsUseCase,
	logger *logrus.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler:       NewBaseHandler(logger),
		userUseCase:       userUseCase,
		enrollmentUseCase: enrollmentUseCase,
		statsUseCase:      statsUseCase,
	}
}

// GetMe обрабатывает GET /users/me
func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// ListUsers обрабатывает GET /admin/users
func (h *UserHandler) ListUsers(c echo.Context) error {
	logger := h.logRequest(c, "list_users")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	filter := domain.UserFilter{
		Search: c.QueryParam("search"),
		Limit:  50,
	}
	if role := c.QueryParam("role"); role != "" {
		filter.Role = &role
	}
	if activeParam := c.QueryParam("active"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err == nil {
			filter.Active = &active
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if offset, err := strconv.Atoi(offsetParam); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	users, err := h.userUseCase.ListUsers(c.Request().Context(), actor, filter)
	if err != nil {
		logger.WithError(err).Error("Failed to list users")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUsers(users))
}

// GetUser обрабатывает GET /admin/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	logger := h.logRequest(c, "get_user")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	user, err := h.userUseCase.GetUser(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get user")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// ChangeRole обрабатывает PUT /admin/users/:id/role
func (h *UserHandler) ChangeRole(c echo.Context) error {
	logger := h.logRequest(c, "change_role")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.userUseCase.ChangeRole(c.Request().Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		logger.WithError(err).Warn("Failed to change role")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User role changed")

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// SetActive обрабатывает PUT /admin/users/:id/active
func (h *UserHandler) SetActive(c echo.Context) error {
	logger := h.logRequest(c, "set_active")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}

	user, err := h.userUseCase.SetActive(c.Request().Context(), actor, c.Param("id"), req.Active)
	if err != nil {
		logger.WithError(err).Warn("Failed to set active status")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// UpdateProfile обрабатывает PUT /users/:id
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	logger := h.logRequest(c, "update_profile")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), actor, c.Param("id"), domain.UpdateProfileInput{
		Surname:      req.Surname,
		Name:         req.Name,
		Patronymic:   req.Patronymic,
		Phone:        req.Phone,
		Password:     req.Password,
		Department:   req.Department,
		Title:        req.Title,
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		OfficeHours:  req.OfficeHours,
		HoursPerWeek: req.HoursPerWeek,
		AdvisorID:    req.AdvisorID,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to update profile")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// DeleteUser обрабатывает DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	logger := h.logRequest(c, "delete_user")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	if err := h.userUseCase.DeleteUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		logger.WithError(err).Warn("Failed to delete user")
		return respondError(c, err)
	}

	logger.WithField("user_id", c.Param("id")).Info("User deleted")

	return c.NoContent(http.StatusNoContent)
}

// Enroll обрабатывает POST /admin/users/:id/enroll
func (h *UserHandler) Enroll(c echo.Context) error {
	logger := h.logRequest(c, "enroll_user")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	progress, created, err := h.enrollmentUseCase.Enroll(c.Request().Context(), actor, c.Param("id"), req.CourseName, req.Category)
	if err != nil {
		logger.WithError(err).Warn("Failed to enroll user")
		return respondError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return c.JSON(status, EnrollResponse{
		ProgressID: progress.ID,
		Created:    created,
	})
}

// GetMyProgress обрабатывает GET /users/me/progress
func (h *UserHandler) GetMyProgress(c echo.Context) error {
	logger := h.logRequest(c, "get_my_progress")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	progress, err := h.enrollmentUseCase.GetMyProgress(c.Request().Context(), actor)
	if err != nil {
		logger.WithError(err).Warn("Failed to get progress")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIProgress(progress))
}

// GetAdminStats обрабатывает GET /admin/stats
func (h *UserHandler) GetAdminStats(c echo.Context) error {
	logger := h.logRequest(c, "admin_stats")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	stats, err := h.statsUseCase.GetAdminStats(c.Request().Context(), actor)
	if err != nil {
		logger.WithError(err).Error("Failed to get admin stats")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIAdminStats(stats))
}
