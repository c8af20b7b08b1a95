package model

import "time"

type Room struct {
	ID        int64     `json:"store_room_id"`
	StoreID   int64     `json:"store_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
