package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
)

type Teacher struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"fullName"`
	Gender     Gender    `json:"gender"`
	Department string    `json:"department"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
