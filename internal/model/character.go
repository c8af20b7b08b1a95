package model

import "time"

// Character роль внутри сценария; IsDM отмечает роли только для ведущих
type Character struct {
	ID        int64     `json:"character_id"`
	ScriptID  int64     `json:"script_id"`
	Name      string    `json:"character_name"`
	IsDM      bool      `json:"is_dm"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
