package utils

import (
	"fmt"
	"strings"

	"github.com/jwc-dev/exam-scheduler/backend/internal/domain"
)

// EqualSemester 对学期做宽松比较，"06"、" 6 " 和 "6" 视为同一个学期
func EqualSemester(a string, b string) bool {
	normalize := func(s string) string {
		s = strings.TrimSpace(s)
		trimmed := strings.TrimLeft(s, "0")
		if trimmed == "" && s != "" {
			return "0"
		}
		return trimmed
	}
	return strings.EqualFold(normalize(a), normalize(b))
}

func ValidateSeatingResult(result *domain.SeatingResult, rooms []*domain.Room, students []*domain.Student) error {
	capacityMap := make(map[int64]int32)
	for _, room := range rooms {
		capacityMap[room.ID] = room.Capacity
	}

	// 检查每个考场的座位号是否超过容量、是否重复
	seatsByRoom := make(map[int64]map[int32]bool)
	for _, assignment := range result.Assignments {
		capacity, exists := capacityMap[assignment.RoomID]
		if !exists {
			return fmt.Errorf("座位表中的考场 %d 不在启用的考场列表中", assignment.RoomID)
		}
		if assignment.SeatNumber < 1 || assignment.SeatNumber > capacity {
			return fmt.Errorf("考场 %d 中出现了超出容量的座位号 %d", assignment.RoomID, assignment.SeatNumber)
		}

		if _, exists := seatsByRoom[assignment.RoomID]; !exists {
			seatsByRoom[assignment.RoomID] = make(map[int32]bool)
		}
		if seatsByRoom[assignment.RoomID][assignment.SeatNumber] {
			return fmt.Errorf("考场 %d 中的座位号 %d 被分配了两次", assignment.RoomID, assignment.SeatNumber)
		}
		seatsByRoom[assignment.RoomID][assignment.SeatNumber] = true
	}

	// 检查每个考场内的座位号是否从 1 开始连续
	for roomID, seats := range seatsByRoom {
		for seat := int32(1); seat <= int32(len(seats)); seat++ {
			if !seats[seat] {
				return fmt.Errorf("考场 %d 中的座位号不连续，缺少座位 %d", roomID, seat)
			}
		}
	}

	// 检查每个考生是否恰好被分配了一次
	assigned := make(map[int64]int)
	for _, assignment := range result.Assignments {
		assigned[assignment.StudentID]++
	}
	for _, student := range students {
		switch assigned[student.ID] {
		case 0:
			return fmt.Errorf("考生 %s 没有被分配座位", student.EnrollmentNo)
		case 1:
			// 正常情况
		default:
			return fmt.Errorf("考生 %s 被分配了多个座位", student.EnrollmentNo)
		}
	}
	if len(assigned) != len(students) {
		return fmt.Errorf("座位表中出现了不符合条件的考生")
	}

	return nil
}

// ValidateDutyRoster 检查排班结果的固有约束：
// 老师和考试必须真实存在，并且任何老师在同一天的同一场次中最多只有一个岗位
// 系别回避、次数上限这类可调整的政策由 Policy 负责，这里不重复检查
func ValidateDutyRoster(roster *domain.DutyRoster, teachers []*domain.Teacher, exams map[int64]*domain.Exam) error {
	teacherMap := make(map[int64]*domain.Teacher)
	for _, teacher := range teachers {
		teacherMap[teacher.ID] = teacher
	}

	for i, assignment := range roster.Assignments {
		if _, exists := teacherMap[assignment.TeacherID]; !exists {
			return fmt.Errorf("第 %d 条监考安排中的老师 %d 不在老师列表中", i+1, assignment.TeacherID)
		}

		if _, exists := exams[assignment.Slot.ExamID]; !exists {
			return fmt.Errorf("第 %d 条监考安排中的考试 %d 不在考试列表中", i+1, assignment.Slot.ExamID)
		}
	}

	// 检查是否存在同一天同一场次的重复安排
	type session struct {
		teacherID int64
		date      string
		shift     int32
	}
	seen := make(map[session]bool)
	for _, assignment := range roster.Assignments {
		key := session{
			teacherID: assignment.TeacherID,
			date:      assignment.Slot.Date.Format("2006-01-02"),
			shift:     assignment.Slot.Shift,
		}
		if seen[key] {
			return fmt.Errorf("老师 %d 在 %s 的第 %d 场被安排了两个岗位", assignment.TeacherID, key.date, key.shift)
		}
		seen[key] = true
	}

	return nil
}
