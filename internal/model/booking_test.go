package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusString(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   string
	}{
		{BookingStatusIncomplete, "incomplete"},
		{BookingStatusScheduled, "scheduled"},
		{BookingStatusCancelled, "cancelled"},
		{BookingStatusCompleted, "completed"},
		{BookingStatus(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.False(t, BookingStatusIncomplete.IsTerminal())
	assert.False(t, BookingStatusScheduled.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
}

func TestEffectiveMinutes(t *testing.T) {
	override := int32(210)

	tests := []struct {
		name      string
		override  *int32
		estimated int32
		want      int32
	}{
		{name: "no override uses estimated", override: nil, estimated: 180, want: 180},
		{name: "override wins", override: &override, estimated: 180, want: 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveMinutes(tt.override, tt.estimated))
		})
	}
}

func TestDmAssignment(t *testing.T) {
	assigned := AssignedCharacter(42)
	id, ok := assigned.CharacterID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	hold := UnassignedHold()
	_, ok = hold.CharacterID()
	assert.False(t, ok)
}
