package utils

import (
	"testing"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestEqualSemester(t *testing.T) {
	require.True(t, EqualSemester("6", "6"))
	require.True(t, EqualSemester("06", "6"))
	require.True(t, EqualSemester(" 6 ", "6"))
	require.True(t, EqualSemester("0", "00"))
	require.False(t, EqualSemester("6", "4"))
	require.False(t, EqualSemester("", "6"))
}

func makeSeatingFixture() (*domain.SeatingResult, []*domain.Room, []*domain.Student) {
	result := &domain.SeatingResult{
		ExamID: 1,
		Assignments: []domain.SeatAssignment{
			{ExamID: 1, StudentID: 1, EnrollmentNo: "CO001", Branch: "CO", RoomID: 1, SeatNumber: 1, Row: 1, Col: 1},
			{ExamID: 1, StudentID: 2, EnrollmentNo: "CO002", Branch: "CO", RoomID: 1, SeatNumber: 2, Row: 1, Col: 2},
			{ExamID: 1, StudentID: 3, EnrollmentNo: "IT001", Branch: "IT", RoomID: 2, SeatNumber: 1, Row: 1, Col: 1},
		},
		GeneratedAt: time.Now(),
	}
	rooms := []*domain.Room{
		{ID: 1, Number: "101", Capacity: 2, IsActive: true},
		{ID: 2, Number: "102", Capacity: 5, IsActive: true},
	}
	students := []*domain.Student{
		{ID: 1, EnrollmentNo: "CO001", Branch: "CO", Semester: "6"},
		{ID: 2, EnrollmentNo: "CO002", Branch: "CO", Semester: "6"},
		{ID: 3, EnrollmentNo: "IT001", Branch: "IT", Semester: "6"},
	}
	return result, rooms, students
}

func TestValidateSeatingResultAcceptsValidResult(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	require.NoError(t, ValidateSeatingResult(result, rooms, students))
}

func TestValidateSeatingResultRejectsOverCapacity(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	result.Assignments[1].SeatNumber = 3 // 超过考场 101 的容量 2
	require.Error(t, ValidateSeatingResult(result, rooms, students))
}

func TestValidateSeatingResultRejectsDuplicateSeat(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	result.Assignments[1].SeatNumber = 1
	require.Error(t, ValidateSeatingResult(result, rooms, students))
}

func TestValidateSeatingResultRejectsGapInSeatNumbers(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	result.Assignments[2].SeatNumber = 2 // 考场 102 缺少座位 1
	require.Error(t, ValidateSeatingResult(result, rooms, students))
}

func TestValidateSeatingResultRejectsMissingStudent(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	students = append(students, &domain.Student{ID: 4, EnrollmentNo: "IT002", Branch: "IT", Semester: "6"})
	require.Error(t, ValidateSeatingResult(result, rooms, students))
}

func TestValidateSeatingResultRejectsUnknownRoom(t *testing.T) {
	result, rooms, students := makeSeatingFixture()
	result.Assignments[0].RoomID = 99
	require.Error(t, ValidateSeatingResult(result, rooms, students))
}

func makeRosterFixture() (*domain.DutyRoster, []*domain.Teacher, map[int64]*domain.Exam) {
	date := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	roster := &domain.DutyRoster{
		Assignments: []domain.DutyAssignment{
			{TeacherID: 1, Slot: domain.DutySlot{ExamID: 1, RoomID: 1, Type: domain.DutyMain, Date: date, Shift: 1}},
			{TeacherID: 2, Slot: domain.DutySlot{ExamID: 1, RoomID: 2, Type: domain.DutyMain, Date: date, Shift: 1}},
		},
		GeneratedAt: time.Now(),
	}
	teachers := []*domain.Teacher{
		{ID: 1, FullName: "张伟", Department: "IT", IsActive: true},
		{ID: 2, FullName: "王强", Department: "ME", IsActive: true},
	}
	exams := map[int64]*domain.Exam{
		1: {ID: 1, Department: "CO", Date: date, StartTime: "09:00:00", EndTime: "10:00:00"},
	}
	return roster, teachers, exams
}

func TestValidateDutyRosterAcceptsValidRoster(t *testing.T) {
	roster, teachers, exams := makeRosterFixture()
	require.NoError(t, ValidateDutyRoster(roster, teachers, exams))
}

func TestValidateDutyRosterRejectsUnknownTeacher(t *testing.T) {
	roster, teachers, exams := makeRosterFixture()
	roster.Assignments[0].TeacherID = 99
	require.Error(t, ValidateDutyRoster(roster, teachers, exams))
}

func TestValidateDutyRosterRejectsUnknownExam(t *testing.T) {
	roster, teachers, exams := makeRosterFixture()
	roster.Assignments[0].Slot.ExamID = 99
	require.Error(t, ValidateDutyRoster(roster, teachers, exams))
}

func TestValidateDutyRosterRejectsSessionDoubleBooking(t *testing.T) {
	roster, teachers, exams := makeRosterFixture()
	roster.Assignments[1].TeacherID = 1 // 老师 1 在同一场次出现两次
	require.Error(t, ValidateDutyRoster(roster, teachers, exams))
}
