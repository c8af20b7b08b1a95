package handlers

import (
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
)

type createIncompleteBookingRequest struct {
	TargetMonth time.Time `json:"target_month"`
	ClientIDs   []int64   `json:"client_ids"`
	ScriptID    *int64    `json:"script_id"`
}

type updateIncompleteBookingRequest struct {
	TargetMonth *time.Time `json:"target_month"`
	ScriptID    *int64     `json:"script_id"`
	ClearScript bool       `json:"clear_script"`
}

type confirmBookingRequest struct {
	StartAt         time.Time `json:"start_at"`
	PreferredRoomID *int64    `json:"preferred_room_id"`
}

type addBookingClientRequest struct {
	ClientID int64 `json:"client_id"`
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type updateRoomRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type createSlotRequest struct {
	StartAt time.Time `json:"start_at"`
}

type updateSlotRequest struct {
	StartAt time.Time `json:"start_at"`
}

type createScriptRequest struct {
	Name             string `json:"name"`
	EstimatedMinutes int32  `json:"estimated_minutes"`
}

type createStoreScriptRequest struct {
	ScriptID int64 `json:"script_id"`
	IsActive *bool `json:"is_active"`
}

type updateStoreScriptRequest struct {
	IsActive *bool `json:"is_active"`
}

type createCharacterRequest struct {
	Name     string `json:"character_name"`
	IsDM     bool   `json:"is_dm"`
	IsActive *bool  `json:"is_active"`
}

type updateCharacterRequest struct {
	Name     *string `json:"character_name"`
	IsDM     *bool   `json:"is_dm"`
	IsActive *bool   `json:"is_active"`
}

type createClientMatchRequest struct {
	CharacterID int64 `json:"character_id"`
	ClientID    int64 `json:"client_id"`
}

type updateClientMatchRequest struct {
	CharacterID *int64 `json:"character_id"`
	ClientID    *int64 `json:"client_id"`
}

type createDmMatchRequest struct {
	DmID        int64  `json:"dm_id"`
	CharacterID *int64 `json:"character_id"`
}

type updateDmMatchRequest struct {
	DmID           *int64 `json:"dm_id"`
	CharacterID    *int64 `json:"character_id"`
	ClearCharacter bool   `json:"clear_character"`
}

// bookingItem бронь в ответе API вместе со сводкой конфликтов
type bookingItem struct {
	model.Booking
	HasConflict        bool    `json:"has_conflict"`
	ConflictCount      int     `json:"conflict_count"`
	ConflictBookingIDs []int64 `json:"conflict_booking_ids,omitempty"`
}

func newBookingItem(b model.Booking) bookingItem {
	if b.ClientIDs == nil {
		b.ClientIDs = []int64{}
	}
	return bookingItem{
		Booking:            b,
		HasConflict:        b.Conflicts.HasConflict,
		ConflictCount:      b.Conflicts.Count,
		ConflictBookingIDs: b.Conflicts.BookingIDs,
	}
}

func newBookingItems(bookings []model.Booking) []bookingItem {
	items := make([]bookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, newBookingItem(b))
	}
	return items
}

// dmMatchItem назначение ведущего в ответе API; character_id=null для
// свободного резерва
type dmMatchItem struct {
	ID          int64     `json:"character_dm_match_id"`
	BookingID   int64     `json:"booking_id"`
	DmID        int64     `json:"dm_id"`
	CharacterID *int64    `json:"character_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newDmMatchItem(m model.CharacterDmMatch) dmMatchItem {
	item := dmMatchItem{
		ID:        m.ID,
		BookingID: m.BookingID,
		DmID:      m.DmID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if characterID, ok := m.Assignment.CharacterID(); ok {
		item.CharacterID = &characterID
	}
	return item
}

// checkTargetMonth требует первый день месяца с нулевым временем (UTC)
func checkTargetMonth(t time.Time) error {
	t = t.UTC()
	if t.Day() != 1 || t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return badRequest("target_month must be the first day of a month")
	}
	return nil
}
