package repository

import (
	"context"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

// ReplaceDutyRoster 整体替换当前的监考安排表
// 监考排班覆盖整个考试周期，所以不按考试拆分，而是全量替换
func (r *Repository) ReplaceDutyRoster(roster *domain.DutyRoster) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将之前的监考安排删除
	query := `DELETE FROM duty_rosters`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return err
	}

	query = `
		INSERT INTO duty_rosters (generated_at)
		VALUES ($1)
		RETURNING id, version
	`

	if err := tx.QueryRowContext(ctx, query, roster.GeneratedAt).Scan(&roster.ID, &roster.Version); err != nil {
		return err
	}

	for _, assignment := range roster.Assignments {
		query := `
			INSERT INTO duty_assignments (duty_roster_id, teacher_id, exam_id, room_id, duty_type, duty_date, shift)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		args := []any{roster.ID, assignment.TeacherID, assignment.Slot.ExamID, assignment.Slot.RoomID, assignment.Slot.Type, assignment.Slot.Date, assignment.Slot.Shift}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	for _, slot := range roster.UnassignedSlots {
		query := `
			INSERT INTO unassigned_duty_slots (duty_roster_id, exam_id, room_id, duty_type, duty_date, shift)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		args := []any{roster.ID, slot.ExamID, slot.RoomID, slot.Type, slot.Date, slot.Shift}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDutyRoster() (*domain.DutyRoster, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	roster := &domain.DutyRoster{
		Assignments:     make([]domain.DutyAssignment, 0),
		UnassignedSlots: make([]domain.DutySlot, 0),
	}

	query := `
		SELECT id, generated_at, version FROM duty_rosters
	`
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&roster.ID, &roster.GeneratedAt, &roster.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT teacher_id, exam_id, room_id, duty_type, duty_date, shift
		FROM duty_assignments
		WHERE duty_roster_id = $1
		ORDER BY duty_date, shift, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, roster.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		assignment := domain.DutyAssignment{}
		dst := []any{&assignment.TeacherID, &assignment.Slot.ExamID, &assignment.Slot.RoomID, &assignment.Slot.Type, &assignment.Slot.Date, &assignment.Slot.Shift}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		roster.Assignments = append(roster.Assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT exam_id, room_id, duty_type, duty_date, shift
		FROM unassigned_duty_slots
		WHERE duty_roster_id = $1
		ORDER BY duty_date, shift, id
	`

	slotRows, err := r.dbpool.QueryContext(ctx, query, roster.ID)
	if err != nil {
		return nil, err
	}
	defer slotRows.Close()

	for slotRows.Next() {
		slot := domain.DutySlot{}
		dst := []any{&slot.ExamID, &slot.RoomID, &slot.Type, &slot.Date, &slot.Shift}
		if err := slotRows.Scan(dst...); err != nil {
			return nil, err
		}
		roster.UnassignedSlots = append(roster.UnassignedSlots, slot)
	}

	if err := slotRows.Err(); err != nil {
		return nil, err
	}

	return roster, nil
}
