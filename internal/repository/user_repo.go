package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skillmap-service/internal/domain"
)

// userColumns — полный набор колонок широкой таблицы users в порядке скана.
const userColumns = `id, email, phone, password, surname, name, patronymic, active, reg_date, type,
	super_permissions, can_manage_roles, can_manage_billing, can_impersonate, last_audit_action,
	status, track_id, group_code, advisor_user_id, hours_per_week, progress_percent, credits_earned, enrollment_date, expected_graduation,
	hire_date, department, title, bio, specialties, office_hours, teacher_hours_per_week, rating,
	assigned_scope, permissions_scope, on_call, warnings_issued, users_banned, last_action_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u           domain.User
		phone       sql.NullString
		lastAudit   sql.NullTime
		advisorID   sql.NullString
		specialties []byte
		lastAction  sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Email, &phone, &u.Password, &u.Surname, &u.Name, &u.Patronymic, &u.Active, &u.RegDate, &u.Role,
		&u.Admin.SuperPermissions, &u.Admin.CanManageRoles, &u.Admin.CanManageBilling, &u.Admin.CanImpersonate, &lastAudit,
		&u.Apprentice.Status, &u.Apprentice.TrackID, &u.Apprentice.GroupCode, &advisorID, &u.Apprentice.HoursPerWeek,
		&u.Apprentice.ProgressPercent, &u.Apprentice.CreditsEarned, &u.Apprentice.EnrollmentDate, &u.Apprentice.ExpectedGraduation,
		&u.Teacher.HireDate, &u.Teacher.Department, &u.Teacher.Title, &u.Teacher.Bio, &specialties,
		&u.Teacher.OfficeHours, &u.Teacher.HoursPerWeek, &u.Teacher.Rating,
		&u.Moderator.AssignedScope, &u.Moderator.PermissionsScope, &u.Moderator.OnCall,
		&u.Moderator.WarningsIssued, &u.Moderator.UsersBanned, &lastAction,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}
	if lastAudit.Valid {
		u.Admin.LastAuditAction = &lastAudit.Time
	}
	if advisorID.Valid {
		u.Apprentice.AdvisorUserID = &advisorID.String
	}
	if lastAction.Valid {
		u.Moderator.LastActionAt = &lastAction.Time
	}
	if len(specialties) > 0 {
		if err := json.Unmarshal(specialties, &u.Teacher.Specialties); err != nil {
			return nil, fmt.Errorf("failed to decode specialties: %w", err)
		}
	}

	return &u, nil
}

// UserRepository реализует взаимодействие с данными пользователей в PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	specialties, err := json.Marshal(emptyIfNil(user.Teacher.Specialties))
	if err != nil {
		return fmt.Errorf("failed to encode specialties: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, phone, password, surname, name, patronymic, active, reg_date, type,
			super_permissions, can_manage_roles, can_manage_billing, can_impersonate, last_audit_action,
			status, track_id, group_code, advisor_user_id, hours_per_week, progress_percent, credits_earned, enrollment_date, expected_graduation,
			hire_date, department, title, bio, specialties, office_hours, teacher_hours_per_week, rating,
			assigned_scope, permissions_scope, on_call, warnings_issued, users_banned, last_action_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29, $30, $31, $32,
			$33, $34, $35, $36, $37, $38
		)`,
		user.ID, user.Email, user.Phone, user.Password, user.Surname, user.Name, user.Patronymic, user.Active, user.RegDate, user.Role,
		user.Admin.SuperPermissions, user.Admin.CanManageRoles, user.Admin.CanManageBilling, user.Admin.CanImpersonate, user.Admin.LastAuditAction,
		user.Apprentice.Status, user.Apprentice.TrackID, user.Apprentice.GroupCode, user.Apprentice.AdvisorUserID, user.Apprentice.HoursPerWeek,
		user.Apprentice.ProgressPercent, user.Apprentice.CreditsEarned, user.Apprentice.EnrollmentDate, user.Apprentice.ExpectedGraduation,
		user.Teacher.HireDate, user.Teacher.Department, user.Teacher.Title, user.Teacher.Bio, specialties,
		user.Teacher.OfficeHours, user.Teacher.HoursPerWeek, user.Teacher.Rating,
		user.Moderator.AssignedScope, user.Moderator.PermissionsScope, user.Moderator.OnCall,
		user.Moderator.WarningsIssued, user.Moderator.UsersBanned, user.Moderator.LastActionAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByPhone проверяет, занят ли номер телефона.
func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1)`, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}

// List возвращает пользователей по фильтру, новые первыми.
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (lower(email) LIKE $%d OR lower(name) LIKE $%d OR lower(surname) LIKE $%d
			OR lower(patronymic) LIKE $%d OR coalesce(phone, '') LIKE $%d)`, n, n, n, n, n)
	}

	query += " ORDER BY reg_date DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update перезаписывает изменяемые поля пользователя и возвращает свежую запись.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	specialties, err := json.Marshal(emptyIfNil(user.Teacher.Specialties))
	if err != nil {
		return nil, fmt.Errorf("failed to encode specialties: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE users SET
			email = $2, phone = $3, password = $4, surname = $5, name = $6, patronymic = $7, type = $8,
			super_permissions = $9, can_manage_roles = $10, can_manage_billing = $11, can_impersonate = $12, last_audit_action = $13,
			status = $14, track_id = $15, group_code = $16, advisor_user_id = $17, hours_per_week = $18,
			progress_percent = $19, credits_earned = $20, enrollment_date = $21, expected_graduation = $22,
			hire_date = $23, department = $24, title = $25, bio = $26, specialties = $27,
			office_hours = $28, teacher_hours_per_week = $29, rating = $30,
			assigned_scope = $31, permissions_scope = $32, on_call = $33, warnings_issued = $34, users_banned = $35, last_action_at = $36
		WHERE id = $1`,
		user.ID, user.Email, user.Phone, user.Password, user.Surname, user.Name, user.Patronymic, user.Role,
		user.Admin.SuperPermissions, user.Admin.CanManageRoles, user.Admin.CanManageBilling, user.Admin.CanImpersonate, user.Admin.LastAuditAction,
		user.Apprentice.Status, user.Apprentice.TrackID, user.Apprentice.GroupCode, user.Apprentice.AdvisorUserID, user.Apprentice.HoursPerWeek,
		user.Apprentice.ProgressPercent, user.Apprentice.CreditsEarned, user.Apprentice.EnrollmentDate, user.Apprentice.ExpectedGraduation,
		user.Teacher.HireDate, user.Teacher.Department, user.Teacher.Title, user.Teacher.Bio, specialties,
		user.Teacher.OfficeHours, user.Teacher.HoursPerWeek, user.Teacher.Rating,
		user.Moderator.AssignedScope, user.Moderator.PermissionsScope, user.Moderator.OnCall,
		user.Moderator.WarningsIssued, user.Moderator.UsersBanned, user.Moderator.LastActionAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetByID(ctx, user.ID)
}

// UpdateActiveStatus обновляет статус активности пользователя.
func (r *UserRepository) UpdateActiveStatus(ctx context.Context, userID string, active bool) (*domain.User, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET active = $2 WHERE id = $1`, userID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	return r.GetByID(ctx, userID)
}

// Delete удаляет пользователя. Зависимые прогресс, назначения и сдачи
// снимаются каскадом на уровне схемы.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
