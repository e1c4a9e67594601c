package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

// UpsertSeatingResult 整体替换某场考试的座位表
// 重新生成时旧结果会被完整删除，不存在部分合并的情况
func (r *Repository) UpsertSeatingResult(result *domain.SeatingResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将这场考试之前的座位表删除
	query := `DELETE FROM seating_results WHERE exam_id = $1`
	if _, err := tx.ExecContext(ctx, query, result.ExamID); err != nil {
		return err
	}

	query = `
		INSERT INTO seating_results (exam_id, generated_at)
		VALUES ($1, $2)
		RETURNING id, version
	`

	if err := tx.QueryRowContext(ctx, query, result.ExamID, result.GeneratedAt).Scan(&result.ID, &result.Version); err != nil {
		return err
	}

	for _, assignment := range result.Assignments {
		query := `
			INSERT INTO seat_assignments (seating_result_id, student_id, enrollment_no, branch, room_id, seat_number, seat_row, seat_col, is_absent)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		args := []any{result.ID, assignment.StudentID, assignment.EnrollmentNo, assignment.Branch, assignment.RoomID, assignment.SeatNumber, assignment.Row, assignment.Col, assignment.IsAbsent}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSeatingResultByExamID(examID int64) (*domain.SeatingResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			sr.id,
			sr.generated_at,
			sr.version,
			sa.student_id,
			sa.enrollment_no,
			sa.branch,
			sa.room_id,
			sa.seat_number,
			sa.seat_row,
			sa.seat_col,
			sa.is_absent
		FROM seating_results sr
		LEFT JOIN seat_assignments sa ON sr.id = sa.seating_result_id
		WHERE sr.exam_id = $1
		ORDER BY sa.room_id, sa.seat_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &domain.SeatingResult{
		ExamID:      examID,
		Assignments: make([]domain.SeatAssignment, 0),
	}

	for rows.Next() {
		var row struct {
			resultID     int64
			generatedAt  time.Time
			version      int32
			studentID    sql.NullInt64
			enrollmentNo sql.NullString
			branch       sql.NullString
			roomID       sql.NullInt64
			seatNumber   sql.NullInt32
			seatRow      sql.NullInt32
			seatCol      sql.NullInt32
			isAbsent     sql.NullBool
		}

		dst := []any{
			&row.resultID,
			&row.generatedAt,
			&row.version,
			&row.studentID,
			&row.enrollmentNo,
			&row.branch,
			&row.roomID,
			&row.seatNumber,
			&row.seatRow,
			&row.seatCol,
			&row.isAbsent,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		result.ID = row.resultID
		result.GeneratedAt = row.generatedAt
		result.Version = row.version

		if !row.studentID.Valid {
			// 说明这个座位表不存在任何座位，业务上不可能出现，但还是要防一下
			continue
		}

		result.Assignments = append(result.Assignments, domain.SeatAssignment{
			ExamID:       examID,
			StudentID:    row.studentID.Int64,
			EnrollmentNo: row.enrollmentNo.String,
			Branch:       row.branch.String,
			RoomID:       row.roomID.Int64,
			SeatNumber:   row.seatNumber.Int32,
			Row:          row.seatRow.Int32,
			Col:          row.seatCol.Int32,
			IsAbsent:     row.isAbsent.Bool,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 还需要处理没有结果的情况
	if result.ID == 0 {
		return nil, sql.ErrNoRows
	}

	return result, nil
}
