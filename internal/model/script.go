package model

import "time"

type Script struct {
	ID               int64     `json:"script_id"`
	Name             string    `json:"name"`
	EstimatedMinutes int32     `json:"estimated_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StoreScript активация сценария в конкретном магазине
type StoreScript struct {
	StoreID   int64     `json:"store_id"`
	ScriptID  int64     `json:"script_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Поля сценария для списков (не колонки store_script)
	Name             string `json:"name,omitempty"`
	EstimatedMinutes int32  `json:"estimated_minutes,omitempty"`
}
