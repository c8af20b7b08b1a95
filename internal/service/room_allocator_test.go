package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoomProbe считает занятыми комнаты из busy
type fakeRoomProbe struct {
	busy map[int64]bool
}

func (f *fakeRoomProbe) RoomHasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	return f.busy[roomID], nil
}

func roomList(ids ...int64) []model.Room {
	rooms := make([]model.Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, model.Room{ID: id})
	}
	return rooms
}

func TestAllocateRoom(t *testing.T) {
	ctx := context.Background()
	start, end := ts(18), ts(21)
	preferred := func(id int64) *int64 { return &id }

	tests := []struct {
		name        string
		rooms       []model.Room
		preferredID *int64
		busy        map[int64]bool
		want        int64
	}{
		{
			name:  "first free room by ascending id",
			rooms: roomList(2, 3),
			want:  2,
		},
		{
			name:        "free preferred room wins",
			rooms:       roomList(2, 3),
			preferredID: preferred(3),
			want:        3,
		},
		{
			name:        "busy preferred falls back to scan",
			rooms:       roomList(2, 3),
			preferredID: preferred(2),
			busy:        map[int64]bool{2: true},
			want:        3,
		},
		{
			name:  "scan skips busy rooms",
			rooms: roomList(1, 2, 3),
			busy:  map[int64]bool{1: true, 2: true},
			want:  3,
		},
		{
			name:        "all busy falls back to preferred",
			rooms:       roomList(2, 3),
			preferredID: preferred(3),
			busy:        map[int64]bool{2: true, 3: true},
			want:        3,
		},
		{
			name:  "all busy falls back to lowest id",
			rooms: roomList(2, 3),
			busy:  map[int64]bool{2: true, 3: true},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := &fakeRoomProbe{busy: tt.busy}

			roomID, err := AllocateRoom(ctx, probe, tt.rooms, tt.preferredID, start, end, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, roomID)
		})
	}

	t.Run("preferred room outside store is not found", func(t *testing.T) {
		probe := &fakeRoomProbe{}

		_, err := AllocateRoom(ctx, probe, roomList(2, 3), preferred(9), start, end, 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("store without active rooms", func(t *testing.T) {
		probe := &fakeRoomProbe{}

		_, err := AllocateRoom(ctx, probe, nil, nil, start, end, 0)
		assert.ErrorIs(t, err, ErrConflict)
	})
}
