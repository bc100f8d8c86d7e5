package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"skillmap-service/internal/domain"
)

// hhVacancyRe извлекает ID вакансии из ссылки hh.ru.
var hhVacancyRe = regexp.MustCompile(`hh\.ru/vacancy/(\d+)`)

// categoryKeywords — типичные ключевые слова категорий для скоринга курсов.
var categoryKeywords = map[string][]string{
	"it":         {"frontend", "backend", "react", "python", "javascript", "java", "devops", "data"},
	"finance":    {"finance", "analyst", "accounting", "budget", "investment", "bank"},
	"law":        {"law", "lawyer", "legal", "corporate", "contract", "justice"},
	"marketing":  {"marketing", "digital", "smm", "seo", "content", "advertising"},
	"management": {"management", "project", "manager", "team", "lead", "product"},
	"geology":    {"geology", "geologist", "mining", "oil", "gas", "resources"},
	"design":     {"design", "designer", "ui", "ux", "interface", "graphic"},
	"medicine":   {"medicine", "clinical", "research", "healthcare", "medical"},
}

// VacancyUseCase реализует бизнес-логику вакансий и рекомендаций курсов.
type VacancyUseCase struct {
	vacancyRepo domain.VacancyRepository
	courseRepo  domain.CourseRepository
}

// NewVacancyUseCase создает новый экземпляр VacancyUseCase.
func NewVacancyUseCase(vacancyRepo domain.VacancyRepository, courseRepo domain.CourseRepository) domain.VacancyUseCase {
	return &VacancyUseCase{
		vacancyRepo: vacancyRepo,
		courseRepo:  courseRepo,
	}
}

// ListVacancies возвращает вакансии с поиском по названию и компании.
func (uc *VacancyUseCase) ListVacancies(ctx context.Context, search string, limit int) ([]*domain.Vacancy, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.vacancyRepo.List(ctx, search, limit)
}

// Analyze подбирает курсы под вакансию по совпадению ключевых слов:
// слово из названия вакансии в имени курса дает 3 балла, в описании 1 балл,
// совпадения с категорийными словами по 2 балла каждое.
func (uc *VacancyUseCase) Analyze(ctx context.Context, title string, links []string, level string) (*domain.VacancyAnalysis, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(links) == 0 {
		return nil, domain.ErrEmptyAnalysisRequest
	}

	// 1. Извлекаем ID вакансий из ссылок
	parsedIDs := []string{}
	for _, link := range links {
		if match := hhVacancyRe.FindStringSubmatch(link); match != nil {
			parsedIDs = append(parsedIDs, match[1])
		}
	}

	// 2. Собираем ключевые слова из названия вакансии
	keywords := map[string]bool{}
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len([]rune(word)) > 2 {
			keywords[word] = true
		}
	}

	// 3. Считаем релевантность каждого публичного курса
	courses, err := uc.courseRepo.ListCourses(ctx, domain.CourseFilter{PublicOnly: true})
	if err != nil {
		return nil, err
	}

	recommendations := []*domain.CourseRecommendation{}
	for _, course := range courses {
		score := 0
		reasons := []string{}

		nameLower := strings.ToLower(course.Name)
		descLower := strings.ToLower(course.Description)
		for keyword := range keywords {
			if strings.Contains(nameLower, keyword) {
				score += 3
				reasons = append(reasons, fmt.Sprintf("Ключевое слово '%s' в названии курса", keyword))
			}
			if strings.Contains(descLower, keyword) {
				score++
				reasons = append(reasons, fmt.Sprintf("Ключевое слово '%s' в описании курса", keyword))
			}
		}

		if words, ok := categoryKeywords[course.Category]; ok {
			matched := 0
			for _, word := range words {
				if keywords[word] {
					matched++
				}
			}
			if matched > 0 {
				score += matched * 2
				reasons = append(reasons, "Совпадение по категорийным ключевым словам")
			}
		}

		if score > 0 {
			if len(reasons) > 3 {
				reasons = reasons[:3]
			}
			recommendations = append(recommendations, &domain.CourseRecommendation{
				Course:  course,
				Score:   score,
				Reasons: reasons,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	analysis := &domain.VacancyAnalysis{
		AnalysisID:    fmt.Sprintf("analysis_%d", time.Now().Unix()),
		Title:         title,
		Links:         links,
		ParsedIDs:     parsedIDs,
		Level:         orDefault(level, "junior"),
		TotalFound:    len(recommendations),
		StartingPoint: "Базовые курсы",
		AnalysisDate:  time.Now(),
	}
	if len(recommendations) > 0 {
		analysis.StartingPoint = recommendations[0].Course.Name
	}
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	analysis.TopCourses = recommendations

	return analysis, nil
}
