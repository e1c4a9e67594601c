package scheduler

import (
	"testing"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func makePolicyContext() *Context {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	return &Context{
		Teacher: &domain.Teacher{ID: 1, FullName: "张伟", Gender: domain.GenderMale, Department: "IT", IsActive: true},
		Exam:    makeTestExam(1, "CO", date, "09:00:00", "12:00:00"),
		Slot: &domain.DutySlot{
			ExamID: 1,
			RoomID: 1,
			Type:   domain.DutyMain,
			Date:   date,
			Shift:  1,
		},
		DutyCount:   make(map[int64]int32),
		Assignments: nil,
	}
}

func TestDepartmentConflict(t *testing.T) {
	ctx := makePolicyContext()
	require.NoError(t, DepartmentConflict(ctx))

	ctx.Teacher.Department = "CO"
	require.Error(t, DepartmentConflict(ctx))
}

func TestFemaleLongExamRestriction(t *testing.T) {
	constraint := FemaleLongExamRestriction(4)

	ctx := makePolicyContext()
	ctx.Exam.EndTime = "13:00:00" // 时长 4 小时
	require.NoError(t, constraint(ctx))

	ctx.Teacher.Gender = domain.GenderFemale
	require.Error(t, constraint(ctx))

	// 短时考试不受限制
	ctx.Exam.EndTime = "12:00:00"
	require.NoError(t, constraint(ctx))
}

func TestDutyCap(t *testing.T) {
	constraint := DutyCap(5)

	ctx := makePolicyContext()
	ctx.DutyCount[ctx.Teacher.ID] = 4
	require.NoError(t, constraint(ctx))

	ctx.DutyCount[ctx.Teacher.ID] = 5
	require.Error(t, constraint(ctx))
}

func TestSessionConflict(t *testing.T) {
	ctx := makePolicyContext()
	require.NoError(t, SessionConflict(ctx))

	// 同一天同一场次的已有安排会触发冲突
	ctx.Assignments = []domain.DutyAssignment{
		{TeacherID: 1, Slot: domain.DutySlot{ExamID: 9, RoomID: 5, Date: ctx.Slot.Date, Shift: 1}},
	}
	require.Error(t, SessionConflict(ctx))

	// 同一天不同场次不算冲突
	ctx.Assignments[0].Slot.Shift = 2
	require.NoError(t, SessionConflict(ctx))

	// 别的老师的安排与自己无关
	ctx.Assignments[0].Slot.Shift = 1
	ctx.Assignments[0].TeacherID = 2
	require.NoError(t, SessionConflict(ctx))
}

func TestLoadScore(t *testing.T) {
	scorer := LoadScore(10)

	ctx := makePolicyContext()
	require.Equal(t, 0.0, scorer(ctx))

	ctx.DutyCount[ctx.Teacher.ID] = 3
	require.Equal(t, 30.0, scorer(ctx))
}

func TestAdjacentShiftScore(t *testing.T) {
	scorer := AdjacentShiftScore(50)

	ctx := makePolicyContext()
	ctx.Slot.Shift = 2
	require.Equal(t, 0.0, scorer(ctx))

	ctx.Assignments = []domain.DutyAssignment{
		{TeacherID: 1, Slot: domain.DutySlot{ExamID: 9, RoomID: 5, Date: ctx.Slot.Date, Shift: 1}},
	}
	require.Equal(t, 50.0, scorer(ctx))

	// 不同日期的相邻场次不加分
	ctx.Assignments[0].Slot.Date = ctx.Slot.Date.AddDate(0, 0, 1)
	require.Equal(t, 0.0, scorer(ctx))
}

func TestRepeatRoomScore(t *testing.T) {
	scorer := RepeatRoomScore(10)

	ctx := makePolicyContext()
	require.Equal(t, 0.0, scorer(ctx))

	ctx.Assignments = []domain.DutyAssignment{
		{TeacherID: 1, Slot: domain.DutySlot{ExamID: 9, RoomID: 1, Date: ctx.Slot.Date.AddDate(0, 0, 1), Shift: 1}},
	}
	require.Equal(t, 10.0, scorer(ctx))

	ctx.Assignments[0].Slot.RoomID = 2
	require.Equal(t, 0.0, scorer(ctx))
}

func TestDefaultPolicyOmitsFemaleRuleWhenDisabled(t *testing.T) {
	parameters := DefaultParameters()
	require.Len(t, DefaultPolicy(parameters).Constraints, 4)

	parameters.RestrictFemaleLongExams = false
	require.Len(t, DefaultPolicy(parameters).Constraints, 3)
}
