package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"skillmap-service/internal/domain"
)

// VacancyRepository реализует взаимодействие с вакансиями в PostgreSQL.
type VacancyRepository struct {
	db *sql.DB
}

// NewVacancyRepository создает новый экземпляр VacancyRepository.
func NewVacancyRepository(db *sql.DB) domain.VacancyRepository {
	return &VacancyRepository{db: db}
}

// List возвращает вакансии, новые первыми, с поиском по названию и компании.
func (r *VacancyRepository) List(ctx context.Context, search string, limit int) ([]*domain.Vacancy, error) {
	query := `SELECT id, hh_id, title, company, salary, experience, employment, description, skills, url, parsed_at
		FROM vacancies WHERE 1=1`
	args := []any{}

	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (lower(title) LIKE $%d OR lower(company) LIKE $%d)", n, n)
	}
	query += " ORDER BY parsed_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	defer rows.Close()

	vacancies := []*domain.Vacancy{}
	for rows.Next() {
		var (
			v      domain.Vacancy
			skills []byte
		)
		err := rows.Scan(&v.ID, &v.HHID, &v.Title, &v.Company, &v.Salary, &v.Experience,
			&v.Employment, &v.Description, &skills, &v.URL, &v.ParsedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		if len(skills) > 0 {
			if err := json.Unmarshal(skills, &v.Skills); err != nil {
				return nil, fmt.Errorf("failed to decode skills: %w", err)
			}
		}
		vacancies = append(vacancies, &v)
	}
	return vacancies, rows.Err()
}
