package domain

import "context"

// DaySchedule — интервал занятий одного дня недели.
type DaySchedule struct {
	Start string
	End   string
}

// TeacherSchedule — недельное расписание преподавателя, семь дней с понедельника.
type TeacherSchedule struct {
	TeacherID string
	Days      [7]DaySchedule
}

// ScheduleRepository определяет контракт для работы с расписаниями преподавателей.
type ScheduleRepository interface {
	Upsert(ctx context.Context, schedule *TeacherSchedule) error
	GetByTeacher(ctx context.Context, teacherID string) (*TeacherSchedule, error)
	Delete(ctx context.Context, teacherID string) error
}
