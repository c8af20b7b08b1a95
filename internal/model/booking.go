package model

import "time"

type BookingStatus int16

const (
	BookingStatusIncomplete BookingStatus = 1 // Черновик: известен только месяц и клиенты
	BookingStatusScheduled  BookingStatus = 2 // Подтверждено: зафиксированы сценарий, время, комната
	BookingStatusCancelled  BookingStatus = 3 // Отменено
	BookingStatusCompleted  BookingStatus = 4 // Завершено
)

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

func (s BookingStatus) String() string {
	switch s {
	case BookingStatusIncomplete:
		return "incomplete"
	case BookingStatusScheduled:
		return "scheduled"
	case BookingStatusCancelled:
		return "cancelled"
	case BookingStatusCompleted:
		return "completed"
	}
	return "unknown"
}

type Booking struct {
	ID                      int64         `json:"booking_id"`
	StoreID                 int64         `json:"store_id"`
	ScriptID                *int64        `json:"script_id"`
	StatusID                BookingStatus `json:"booking_status_id"`
	TargetMonth             *time.Time    `json:"target_month"` // первое число месяца, только для incomplete
	StartAt                 *time.Time    `json:"start_at"`
	EndAt                   *time.Time    `json:"end_at"`
	SlotID                  *int64        `json:"slot_id,omitempty"`
	StoreRoomID             *int64        `json:"store_room_id,omitempty"`
	DurationOverrideMinutes *int32        `json:"duration_override_minutes"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`

	// Дополнительные поля (не колонки booking)
	ClientIDs []int64         `json:"client_ids"`
	Conflicts ConflictSummary `json:"-"`
}

// ConflictSummary описывает пересечения брони с другими бронями той же комнаты
type ConflictSummary struct {
	HasConflict bool    `json:"has_conflict"`
	Count       int     `json:"conflict_count"`
	BookingIDs  []int64 `json:"conflict_booking_ids"`
}

// EffectiveMinutes вычисляет длительность брони: override либо оценка сценария
func EffectiveMinutes(override *int32, estimated int32) int32 {
	if override != nil {
		return *override
	}
	return estimated
}
