package model

import "time"

// Client игрок, занимающий обычные (не DM) роли
type Client struct {
	ID          int64     `json:"client_id"`
	DisplayName string    `json:"display_name"`
	Phone       *string   `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DM ведущий; привязывается к магазинам через dm_store_membership
type DM struct {
	ID          int64     `json:"dm_id"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
