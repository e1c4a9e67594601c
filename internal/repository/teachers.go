package repository

import (
	"context"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

func (r *Repository) CreateTeacher(teacher *domain.Teacher) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO teachers (full_name, gender, department, email, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{teacher.FullName, teacher.Gender, teacher.Department, teacher.Email, teacher.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTeacherByID(id int64) (*domain.Teacher, error) {
	query := `
		SELECT full_name, gender, department, email, is_active, created_at, version
		FROM teachers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	teacher := &domain.Teacher{
		ID: id,
	}

	dst := []any{&teacher.FullName, &teacher.Gender, &teacher.Department, &teacher.Email, &teacher.IsActive, &teacher.CreatedAt, &teacher.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return teacher, nil
}

func (r *Repository) GetAllTeachers() ([]*domain.Teacher, error) {
	query := `
		SELECT id, full_name, gender, department, email, is_active, created_at, version FROM teachers
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]*domain.Teacher, 0)
	for rows.Next() {
		teacher := &domain.Teacher{}
		dst := []any{&teacher.ID, &teacher.FullName, &teacher.Gender, &teacher.Department, &teacher.Email, &teacher.IsActive, &teacher.CreatedAt, &teacher.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}
