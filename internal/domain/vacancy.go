package domain

import (
	"context"
	"time"
)

// Vacancy — вакансия, загруженная с hh.ru.
type Vacancy struct {
	ID          string
	HHID        string
	Title       string
	Company     string
	Salary      string
	Experience  string
	Employment  string
	Description string
	Skills      []string
	URL         string
	ParsedAt    time.Time
}

// CourseRecommendation — курс, подобранный под вакансию, с оценкой релевантности.
type CourseRecommendation struct {
	Course  *Course
	Score   int
	Reasons []string
}

// VacancyAnalysis — результат анализа набора вакансий.
type VacancyAnalysis struct {
	AnalysisID    string
	Title         string
	Links         []string
	ParsedIDs     []string
	Level         string
	TopCourses    []*CourseRecommendation
	TotalFound    int
	StartingPoint string
	AnalysisDate  time.Time
}

// VacancyRepository определяет контракт для работы с вакансиями.
type VacancyRepository interface {
	List(ctx context.Context, search string, limit int) ([]*Vacancy, error)
}
