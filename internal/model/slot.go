package model

import "time"

// Slot дедуплицированная пара (магазин, время начала); брони с одинаковым
// стартом разделяют один слот
type Slot struct {
	ID        int64     `json:"slot_id"`
	StoreID   int64     `json:"store_id"`
	StartAt   time.Time `json:"start_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
