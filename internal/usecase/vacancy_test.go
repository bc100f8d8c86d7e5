package usecase_test

import (
	"context"
	"testing"

	"skillmap-service/internal/domain"
	"skillmap-service/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestVacancyUseCase_Analyze_ScoresAndSorts(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewVacancyUseCase(&VacancyRepository{}, courseRepo)

	courses := []*domain.Course{
		{ID: "c1", Name: "Python для начинающих", Description: "Базовый курс", Category: "it"},
		{ID: "c2", Name: "Курс верстки", Description: "HTML, CSS и python автоматизация", Category: "it"},
		{ID: "c3", Name: "Основы права", Description: "Юридический курс", Category: "law"},
	}
	courseRepo.On("ListCourses", ctx, domain.CourseFilter{PublicOnly: true}).Return(courses, nil)

	analysis, err := uc.Analyze(ctx, "Python разработчик", []string{"https://hh.ru/vacancy/12345"}, "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"12345"}, analysis.ParsedIDs)
	assert.Equal(t, "junior", analysis.Level)
	assert.Equal(t, 2, analysis.TotalFound)

	// Совпадение в названии весит больше совпадения в описании
	assert.Equal(t, "Python для начинающих", analysis.TopCourses[0].Course.Name)
	// 3 за имя + 2 за категорийное слово "python"
	assert.Equal(t, 5, analysis.TopCourses[0].Score)
	assert.Equal(t, "Python для начинающих", analysis.StartingPoint)
}

func TestVacancyUseCase_Analyze_TopFiveCap(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewVacancyUseCase(&VacancyRepository{}, courseRepo)

	courses := make([]*domain.Course, 0, 8)
	for i := 0; i < 8; i++ {
		courses = append(courses, &domain.Course{
			ID:          string(rune('a' + i)),
			Name:        "Backend мастерская",
			Description: "",
			Category:    "design",
		})
	}
	courseRepo.On("ListCourses", ctx, domain.CourseFilter{PublicOnly: true}).Return(courses, nil)

	analysis, err := uc.Analyze(ctx, "Backend инженер", []string{"https://hh.ru/vacancy/1"}, "middle")

	assert.NoError(t, err)
	assert.Equal(t, 8, analysis.TotalFound)
	assert.Len(t, analysis.TopCourses, 5)
	assert.Equal(t, "middle", analysis.Level)
}

func TestVacancyUseCase_Analyze_EmptyRequest(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewVacancyUseCase(&VacancyRepository{}, &CourseRepository{})

	_, err := uc.Analyze(ctx, "   ", []string{"https://hh.ru/vacancy/1"}, "")
	assert.ErrorIs(t, err, domain.ErrEmptyAnalysisRequest)

	_, err = uc.Analyze(ctx, "Python разработчик", nil, "")
	assert.ErrorIs(t, err, domain.ErrEmptyAnalysisRequest)
}

func TestVacancyUseCase_Analyze_IgnoresForeignLinks(t *testing.T) {
	ctx := context.Background()
	courseRepo := &CourseRepository{}
	uc := usecase.NewVacancyUseCase(&VacancyRepository{}, courseRepo)

	courseRepo.On("ListCourses", ctx, domain.CourseFilter{PublicOnly: true}).Return([]*domain.Course{}, nil)

	analysis, err := uc.Analyze(ctx, "Аналитик данных", []string{
		"https://hh.ru/vacancy/777",
		"https://example.com/job/123",
		"https://hh.ru/vacancy/888",
	}, "")

	assert.NoError(t, err)
	assert.Equal(t, []string{"777", "888"}, analysis.ParsedIDs)
	assert.Equal(t, "Базовые курсы", analysis.StartingPoint)
	assert.Empty(t, analysis.TopCourses)
}

func TestVacancyUseCase_ListVacancies_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	vacancyRepo := &VacancyRepository{}
	uc := usecase.NewVacancyUseCase(vacancyRepo, &CourseRepository{})

	vacancies := []*domain.Vacancy{{ID: "v1"}}
	vacancyRepo.On("List", ctx, "python", 20).Return(vacancies, nil)

	result, err := uc.ListVacancies(ctx, "python", 0)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	vacancyRepo.AssertCalled(t, "List", ctx, "python", 20)
}
