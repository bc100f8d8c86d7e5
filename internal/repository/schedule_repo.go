package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skillmap-service/internal/domain"
)

// ScheduleRepository реализует взаимодействие с расписаниями преподавателей в PostgreSQL.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository создает новый экземпляр ScheduleRepository.
func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Upsert записывает недельное расписание преподавателя, заменяя прежнее.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *domain.TeacherSchedule) error {
	d := schedule.Days
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teacher_schedules (teacher_id,
			mon_start, mon_end, tue_start, tue_end, wed_start, wed_end, thu_start, thu_end,
			fri_start, fri_end, sat_start, sat_end, sun_start, sun_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (teacher_id) DO UPDATE SET
			mon_start = EXCLUDED.mon_start, mon_end = EXCLUDED.mon_end,
			tue_start = EXCLUDED.tue_start, tue_end = EXCLUDED.tue_end,
			wed_start = EXCLUDED.wed_start, wed_end = EXCLUDED.wed_end,
			thu_start = EXCLUDED.thu_start, thu_end = EXCLUDED.thu_end,
			fri_start = EXCLUDED.fri_start, fri_end = EXCLUDED.fri_end,
			sat_start = EXCLUDED.sat_start, sat_end = EXCLUDED.sat_end,
			sun_start = EXCLUDED.sun_start, sun_end = EXCLUDED.sun_end`,
		schedule.TeacherID,
		d[0].Start, d[0].End, d[1].Start, d[1].End, d[2].Start, d[2].End, d[3].Start, d[3].End,
		d[4].Start, d[4].End, d[5].Start, d[5].End, d[6].Start, d[6].End,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return nil
}

// GetByTeacher возвращает расписание преподавателя.
func (r *ScheduleRepository) GetByTeacher(ctx context.Context, teacherID string) (*domain.TeacherSchedule, error) {
	s := domain.TeacherSchedule{TeacherID: teacherID}
	d := &s.Days

	err := r.db.QueryRowContext(ctx, `
		SELECT mon_start, mon_end, tue_start, tue_end, wed_start, wed_end, thu_start, thu_end,
			fri_start, fri_end, sat_start, sat_end, sun_start, sun_end
		FROM teacher_schedules WHERE teacher_id = $1`, teacherID,
	).Scan(
		&d[0].Start, &d[0].End, &d[1].Start, &d[1].End, &d[2].Start, &d[2].End, &d[3].Start, &d[3].End,
		&d[4].Start, &d[4].End, &d[5].Start, &d[5].End, &d[6].Start, &d[6].End,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &s, nil
}

// Delete очищает расписание преподавателя.
func (r *ScheduleRepository) Delete(ctx context.Context, teacherID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teacher_schedules WHERE teacher_id = $1`, teacherID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
