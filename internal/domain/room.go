package domain

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Capacity  int32     `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
