package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

func (r *Repository) CreateExam(exam *domain.Exam) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO exams (subject_code, subject_name, department, semester, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{exam.SubjectCode, exam.SubjectName, exam.Department, exam.Semester, exam.Date, exam.StartTime, exam.EndTime}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&exam.ID, &exam.CreatedAt, &exam.Version); err != nil {
		return err
	}

	for _, branch := range exam.Branches {
		query := `
			INSERT INTO exam_branches (exam_id, branch)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, exam.ID, branch); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetExamByID(id int64) (*domain.Exam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.subject_code,
			e.subject_name,
			e.department,
			e.semester,
			e.date,
			e.start_time,
			e.end_time,
			e.created_at,
			e.version,
			eb.branch
		FROM exams e
		LEFT JOIN exam_branches eb ON e.id = eb.exam_id
		WHERE e.id = $1
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exam := &domain.Exam{
		ID:       id,
		Branches: make([]string, 0),
	}

	found := false
	for rows.Next() {
		var branch sql.NullString
		dst := []any{&exam.SubjectCode, &exam.SubjectName, &exam.Department, &exam.Semester, &exam.Date, &exam.StartTime, &exam.EndTime, &exam.CreatedAt, &exam.Version, &branch}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		found = true

		if branch.Valid {
			exam.Branches = append(exam.Branches, branch.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return exam, nil
}

func (r *Repository) GetAllExams() ([]*domain.Exam, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			e.id,
			e.subject_code,
			e.subject_name,
			e.department,
			e.semester,
			e.date,
			e.start_time,
			e.end_time,
			e.created_at,
			e.version,
			eb.branch
		FROM exams e
		LEFT JOIN exam_branches eb ON e.id = eb.exam_id
		ORDER BY e.date, e.start_time, e.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := make([]*domain.Exam, 0)
	examMap := make(map[int64]*domain.Exam)

	for rows.Next() {
		exam := &domain.Exam{}
		var branch sql.NullString

		dst := []any{&exam.ID, &exam.SubjectCode, &exam.SubjectName, &exam.Department, &exam.Semester, &exam.Date, &exam.StartTime, &exam.EndTime, &exam.CreatedAt, &exam.Version, &branch}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := examMap[exam.ID]; !exists {
			exam.Branches = make([]string, 0)
			examMap[exam.ID] = exam
			exams = append(exams, exam)
		}

		if branch.Valid {
			examMap[exam.ID].Branches = append(examMap[exam.ID].Branches, branch.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exams, nil
}
