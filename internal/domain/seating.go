package domain

import "time"

type SeatAssignment struct {
	ExamID       int64  `json:"examID"`
	StudentID    int64  `json:"studentID"`
	EnrollmentNo string `json:"enrollmentNo"`
	Branch       string `json:"branch"`
	RoomID       int64  `json:"roomID"`
	SeatNumber   int32  `json:"seatNumber"`
	Row          int32  `json:"row"`
	Col          int32  `json:"col"`
	IsAbsent     bool   `json:"isAbsent"`
}

type SeatingResult struct {
	ID          int64            `json:"id"`
	ExamID      int64            `json:"examID"`
	Assignments []SeatAssignment `json:"assignments"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Version     int32            `json:"-"`
}
