package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"skillmap-service/internal/domain"
)

// VacancyHandler обрабатывает вакансии и подбор курсов
type VacancyHandler struct {
	*BaseHandler
	vacancyUseCase domain.VacancyUseCase
}

// NewVacancyHandler создает новый экземпляр VacancyHandler
func NewVacancyHandler(vacancyUseCase domain.VacancyUseCase, logger *logrus.Logger) *VacancyHandler {
	return &VacancyHandler{
		BaseHandler:    NewBaseHandler(logger),
		vacancyUseCase: vacancyUseCase,
	}
}

// ListVacancies обрабатывает GET /vacancies
func (h *VacancyHandler) ListVacancies(c echo.Context) error {
	logger := h.logRequest(c, "list_vacancies")

	limit := 0
	if param := c.QueryParam("limit"); param != "" {
		if parsed, err := strconv.Atoi(param); err == nil {
			limit = parsed
		}
	}

	vacancies, err := h.vacancyUseCase.ListVacancies(c.Request().Context(), c.QueryParam("search"), limit)
	if err != nil {
		logger.WithError(err).Error("Failed to list vacancies")
		return respondError(c, err)
	}

	result := make([]VacancyDTO, 0, len(vacancies))
	for _, vacancy := range vacancies {
		result = append(result, toAPIVacancy(vacancy))
	}

	return c.JSON(http.StatusOK, result)
}

// Analyze обрабатывает POST /vacancies/analyze — подбор курсов под вакансию
func (h *VacancyHandler) Analyze(c echo.Context) error {
	logger := h.logRequest(c, "analyze_vacancy")

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return respondBadBody(c)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	analysis, err := h.vacancyUseCase.Analyze(c.Request().Context(), req.Title, req.Links, req.Level)
	if err != nil {
		logger.WithError(err).Warn("Failed to analyze vacancy")
		return respondError(c, err)
	}

	logger.WithFields(logrus.Fields{
		"analysis_id":  analysis.AnalysisID,
		"courses":      analysis.TotalFound,
		"parsed_links": len(analysis.ParsedIDs),
	}).Info("Vacancy analyzed")

	return c.JSON(http.StatusOK, toAPIAnalysis(analysis))
}
