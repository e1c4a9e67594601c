package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func makeTestTeacher(id int64, department string, gender domain.Gender) *domain.Teacher {
	return &domain.Teacher{
		ID:         id,
		FullName:   fmt.Sprintf("老师%d", id),
		Gender:     gender,
		Department: department,
		IsActive:   true,
	}
}

func singleRoomUsage(examIDs ...int64) map[int64][]*domain.Room {
	room := &domain.Room{ID: 1, Number: "101", Capacity: 30, IsActive: true}
	usage := make(map[int64][]*domain.Room)
	for _, examID := range examIDs {
		usage[examID] = []*domain.Room{room}
	}
	return usage
}

func TestScheduleDepartmentConflictLandsInUnassignedSlots(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "10:00:00")}
	// 唯一的候选老师与考试科目同系，岗位必须留空
	teachers := []*domain.Teacher{makeTestTeacher(1, "CO", domain.GenderMale)}

	roster, err := New(DefaultParameters(), teachers, exams, singleRoomUsage(1)).Schedule()
	require.NoError(t, err)
	require.Empty(t, roster.Assignments)
	require.Len(t, roster.UnassignedSlots, 1)
	require.Equal(t, int64(1), roster.UnassignedSlots[0].ExamID)
}

func TestScheduleNeverDoubleBooksSameSession(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "10:00:00")}
	usage := map[int64][]*domain.Room{
		1: {
			{ID: 1, Number: "101", Capacity: 30, IsActive: true},
			{ID: 2, Number: "102", Capacity: 30, IsActive: true},
		},
	}
	teachers := []*domain.Teacher{
		makeTestTeacher(1, "IT", domain.GenderMale),
		makeTestTeacher(2, "ME", domain.GenderMale),
	}

	roster, err := New(DefaultParameters(), teachers, exams, usage).Schedule()
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 2)
	require.Empty(t, roster.UnassignedSlots)
	require.NotEqual(t, roster.Assignments[0].TeacherID, roster.Assignments[1].TeacherID)
}

func TestScheduleRespectsDutyCap(t *testing.T) {
	exams := make([]*domain.Exam, 0, 6)
	examIDs := make([]int64, 0, 6)
	for i := 0; i < 6; i++ {
		date := time.Date(2025, 5, 12+i, 0, 0, 0, 0, time.UTC)
		exams = append(exams, makeTestExam(int64(i+1), "CO", date, "09:00:00", "10:00:00"))
		examIDs = append(examIDs, int64(i+1))
	}
	teachers := []*domain.Teacher{makeTestTeacher(1, "IT", domain.GenderMale)}

	roster, err := New(DefaultParameters(), teachers, exams, singleRoomUsage(examIDs...)).Schedule()
	require.NoError(t, err)

	// 上限为 5，第 6 个岗位找不到人
	require.Len(t, roster.Assignments, 5)
	require.Len(t, roster.UnassignedSlots, 1)
}

func TestScheduleFemaleTeacherExcludedFromLongExams(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "13:00:00")}
	teachers := []*domain.Teacher{
		makeTestTeacher(1, "IT", domain.GenderFemale),
		makeTestTeacher(2, "ME", domain.GenderMale),
	}

	roster, err := New(DefaultParameters(), teachers, exams, singleRoomUsage(1)).Schedule()
	require.NoError(t, err)
	for _, assignment := range roster.Assignments {
		require.Equal(t, int64(2), assignment.TeacherID)
	}
}

func TestScheduleFemaleRestrictionCanBeDisabled(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "13:00:00")}
	teachers := []*domain.Teacher{makeTestTeacher(1, "IT", domain.GenderFemale)}

	parameters := DefaultParameters()
	roster, err := New(parameters, teachers, exams, singleRoomUsage(1)).Schedule()
	require.NoError(t, err)
	require.Empty(t, roster.Assignments)
	require.Len(t, roster.UnassignedSlots, 2)

	// 关闭限制后主监考岗位可以分配
	// 流动监考岗位在同一场次中，同一位老师不能兼任，所以仍然留空
	parameters.RestrictFemaleLongExams = false
	roster, err = New(parameters, teachers, exams, singleRoomUsage(1)).Schedule()
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.Len(t, roster.UnassignedSlots, 1)
}

func TestScheduleBalancesLoadAcrossTeachers(t *testing.T) {
	day1 := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{
		makeTestExam(1, "CO", day1, "09:00:00", "10:00:00"),
		makeTestExam(2, "CO", day2, "09:00:00", "10:00:00"),
	}
	teachers := []*domain.Teacher{
		makeTestTeacher(1, "IT", domain.GenderMale),
		makeTestTeacher(2, "ME", domain.GenderMale),
	}

	roster, err := New(DefaultParameters(), teachers, exams, singleRoomUsage(1, 2)).Schedule()
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 2)

	// 两个岗位在不同的天，负载均衡使两位老师各承担一个
	require.NotEqual(t, roster.Assignments[0].TeacherID, roster.Assignments[1].TeacherID)
}

func TestScheduleAvoidsRepeatedRoomWhenLoadIsEqual(t *testing.T) {
	day1 := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC)
	roomA := &domain.Room{ID: 1, Number: "101", Capacity: 30, IsActive: true}
	roomB := &domain.Room{ID: 2, Number: "102", Capacity: 30, IsActive: true}

	exams := []*domain.Exam{
		makeTestExam(1, "CO", day1, "09:00:00", "10:00:00"),
		makeTestExam(2, "CO", day2, "09:00:00", "10:00:00"),
	}
	usage := map[int64][]*domain.Room{
		1: {roomA, roomB},
		2: {roomA},
	}
	teachers := []*domain.Teacher{
		makeTestTeacher(1, "IT", domain.GenderMale),
		makeTestTeacher(2, "ME", domain.GenderMale),
	}

	roster, err := New(DefaultParameters(), teachers, exams, usage).Schedule()
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 3)

	// 第一天：老师 1 进考场 101，老师 2 进考场 102
	// 第二天只用考场 101，两人负载相同，避免重复考场的规则使老师 2 被选中
	require.Equal(t, int64(1), roster.Assignments[0].TeacherID)
	require.Equal(t, int64(2), roster.Assignments[1].TeacherID)
	require.Equal(t, int64(2), roster.Assignments[2].TeacherID)
}

func TestScheduleSkipsInactiveTeachers(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "10:00:00")}

	leaved := makeTestTeacher(1, "IT", domain.GenderMale)
	leaved.IsActive = false
	teachers := []*domain.Teacher{leaved}

	roster, err := New(DefaultParameters(), teachers, exams, singleRoomUsage(1)).Schedule()
	require.NoError(t, err)
	require.Empty(t, roster.Assignments)
	require.Len(t, roster.UnassignedSlots, 1)
}

func TestScheduleWithCustomPolicy(t *testing.T) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	exams := []*domain.Exam{makeTestExam(1, "CO", date, "09:00:00", "10:00:00")}
	// 默认约束下同系老师不可用，换成空约束的策略后就可以了
	teachers := []*domain.Teacher{makeTestTeacher(1, "CO", domain.GenderMale)}

	scheduler := New(DefaultParameters(), teachers, exams, singleRoomUsage(1)).WithPolicy(&Policy{})
	roster, err := scheduler.Schedule()
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
}
