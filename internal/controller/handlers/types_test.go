package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTargetMonth(t *testing.T) {
	tests := []struct {
		name    string
		value   time.Time
		wantErr bool
	}{
		{name: "first day of month", value: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "mid month", value: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), wantErr: true},
		{name: "first day with time", value: time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkTargetMonth(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	month, err := parseMonth("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), month)

	_, err = parseMonth("2026-09-15")
	assert.Error(t, err)

	_, err = parseMonth("next month")
	assert.Error(t, err)
}

func TestNewBookingItem(t *testing.T) {
	booking := model.Booking{
		ID:       7,
		StatusID: model.BookingStatusScheduled,
		Conflicts: model.ConflictSummary{
			HasConflict: true,
			Count:       2,
			BookingIDs:  []int64{3, 5},
		},
	}

	item := newBookingItem(booking)
	assert.True(t, item.HasConflict)
	assert.Equal(t, 2, item.ConflictCount)
	assert.Equal(t, []int64{3, 5}, item.ConflictBookingIDs)
	assert.NotNil(t, item.ClientIDs)
}

func TestNewDmMatchItem(t *testing.T) {
	assigned := newDmMatchItem(model.CharacterDmMatch{
		ID:         1,
		BookingID:  2,
		DmID:       3,
		Assignment: model.AssignedCharacter(42),
	})
	require.NotNil(t, assigned.CharacterID)
	assert.Equal(t, int64(42), *assigned.CharacterID)

	hold := newDmMatchItem(model.CharacterDmMatch{
		ID:         4,
		BookingID:  2,
		DmID:       3,
		Assignment: model.UnassignedHold(),
	})
	assert.Nil(t, hold.CharacterID)
}
