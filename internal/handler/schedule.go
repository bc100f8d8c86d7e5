package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/auth"
	"skillmap-service/internal/domain"
)

// ScheduleHandler обрабатывает расписания преподавателей
type ScheduleHandler struct {
	*BaseHandler
	scheduleUseCase domain.ScheduleUseCase
}

// NewScheduleHandler создает новый экземпляр ScheduleHandler
func NewScheduleHandler(scheduleUseCase domain.ScheduleUseCase, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		BaseHandler:     NewBaseHandler(logger),
		scheduleUseCase: scheduleUseCase,
	}
}

// SetSchedule обрабатывает POST /trainerSchedule/:id
func (h *ScheduleHandler) SetSchedule(c echo.Context) error {
	logger := h.logRequest(c, "set_schedule")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	var req ScheduleRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}

	schedule := &domain.TeacherSchedule{TeacherID: c.Param("id")}
	for i, day := range req.Days {
		schedule.Days[i] = domain.DaySchedule{Start: day.Start, End: day.End}
	}

	if err := h.scheduleUseCase.SetSchedule(c.Request().Context(), actor, schedule); err != nil {
		logger.WithError(err).Warn("Failed to set schedule")
		return respondError(c, err)
	}

	logger.WithField("teacher_id", schedule.TeacherID).Info("Schedule saved")

	return c.JSON(http.StatusOK, toAPISchedule(schedule))
}

// GetSchedule обрабатывает GET /trainerSchedule/:id
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	logger := h.logRequest(c, "get_schedule")

	schedule, err := h.scheduleUseCase.GetSchedule(c.Request().Context(), c.Param("id"))
	if err != nil {
		logger.WithError(err).Warn("Failed to get schedule")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPISchedule(schedule))
}

// ClearSchedule обрабатывает DELETE /trainerSchedule/:id
func (h *ScheduleHandler) ClearSchedule(c echo.Context) error {
	logger := h.logRequest(c, "clear_schedule")

	actor, ok := auth.CurrentUser(c)
	if !ok {
		return respondError(c, domain.ErrInvalidToken)
	}

	if err := h.scheduleUseCase.ClearSchedule(c.Request().Context(), actor, c.Param("id")); err != nil {
		logger.WithError(err).Warn("Failed to clear schedule")
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
