package domain

import "time"

type Student struct {
	ID           int64     `json:"id"`
	EnrollmentNo string    `json:"enrollmentNo"`
	FullName     string    `json:"fullName"`
	Branch       string    `json:"branch"`
	Semester     string    `json:"semester"`
	Batch        string    `json:"batch"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
