package domain

import "time"

type DutyType string

const (
	DutyMain     DutyType = "主监考"
	DutyReliever DutyType = "流动监考"
)

// DutySlot 表示某场考试在某个考场中的一个监考岗位
// Date 和 Shift 从考试信息中冗余而来，用于排序和冲突判断
type DutySlot struct {
	ExamID int64     `json:"examID"`
	RoomID int64     `json:"roomID"`
	Type   DutyType  `json:"type"`
	Date   time.Time `json:"date"`
	Shift  int32     `json:"shift"`
}

type DutyAssignment struct {
	TeacherID int64    `json:"teacherID"`
	Slot      DutySlot `json:"slot"`
}

type DutyRoster struct {
	ID              int64            `json:"id"`
	Assignments     []DutyAssignment `json:"assignments"`
	UnassignedSlots []DutySlot       `json:"unassignedSlots"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	Version         int32            `json:"-"`
}
