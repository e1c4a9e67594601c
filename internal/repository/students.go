package repository

import (
	"context"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

func (r *Repository) CreateStudent(student *domain.Student) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO students (enrollment_no, full_name, branch, semester, batch)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{student.EnrollmentNo, student.FullName, student.Branch, student.Semester, student.Batch}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&student.ID, &student.CreatedAt, &student.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllStudents() ([]*domain.Student, error) {
	query := `
		SELECT id, enrollment_no, full_name, branch, semester, batch, created_at, version FROM students
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student := &domain.Student{}
		dst := []any{&student.ID, &student.EnrollmentNo, &student.FullName, &student.Branch, &student.Semester, &student.Batch, &student.CreatedAt, &student.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
