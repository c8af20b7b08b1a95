package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
)

// roomConflictProbe проверяет занятость комнаты в интервале [start, end)
type roomConflictProbe interface {
	RoomHasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error)
}

// AllocateRoom выбирает комнату для подтверждаемой брони. Предпочитаемая
// комната берётся, если свободна; иначе первая свободная по возрастанию id.
// Если свободных комнат нет, бронь всё равно получает комнату (предпочитаемую
// либо с наименьшим id) и помечается конфликтной — подтверждение никогда не
// блокируется из-за занятости комнат.
func AllocateRoom(ctx context.Context, probe roomConflictProbe, rooms []model.Room, preferredRoomID *int64, start, end time.Time, excludeBookingID int64) (int64, error) {
	if len(rooms) == 0 {
		return 0, Conflictf("store has no active rooms")
	}

	var preferred *model.Room
	if preferredRoomID != nil {
		for i := range rooms {
			if rooms[i].ID == *preferredRoomID {
				preferred = &rooms[i]
				break
			}
		}
		if preferred == nil {
			return 0, NotFoundf("room_id=%d is not an active room of this store", *preferredRoomID)
		}
	}

	if preferred != nil {
		busy, err := probe.RoomHasOverlap(ctx, preferred.ID, start, end, excludeBookingID)
		if err != nil {
			return 0, err
		}
		if !busy {
			return preferred.ID, nil
		}
	}

	for _, room := range rooms {
		if preferred != nil && room.ID == preferred.ID {
			continue
		}
		busy, err := probe.RoomHasOverlap(ctx, room.ID, start, end, excludeBookingID)
		if err != nil {
			return 0, err
		}
		if !busy {
			return room.ID, nil
		}
	}

	if preferred != nil {
		return preferred.ID, nil
	}
	return rooms[0].ID, nil
}
