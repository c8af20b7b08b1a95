package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour int) time.Time {
	return time.Date(2026, 3, 15, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{name: "full overlap", aStart: ts(18), aEnd: ts(21), bStart: ts(19), bEnd: ts(20), want: true},
		{name: "partial overlap", aStart: ts(18), aEnd: ts(20), bStart: ts(19), bEnd: ts(21), want: true},
		{name: "identical intervals", aStart: ts(18), aEnd: ts(20), bStart: ts(18), bEnd: ts(20), want: true},
		{name: "back to back is not a conflict", aStart: ts(18), aEnd: ts(20), bStart: ts(20), bEnd: ts(22), want: false},
		{name: "back to back reversed", aStart: ts(20), aEnd: ts(22), bStart: ts(18), bEnd: ts(20), want: false},
		{name: "disjoint", aStart: ts(10), aEnd: ts(12), bStart: ts(18), bEnd: ts(20), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Предикат симметричен
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

type fakeConflictStore struct {
	booking     *model.Booking
	overlapping []int64
}

func (f *fakeConflictStore) GetByID(ctx context.Context, storeID, bookingID int64) (*model.Booking, error) {
	return f.booking, nil
}

func (f *fakeConflictStore) OverlappingIDs(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) ([]int64, error) {
	return f.overlapping, nil
}

func scheduledBooking(id int64) *model.Booking {
	roomID := int64(7)
	start := ts(18)
	end := ts(21)
	return &model.Booking{
		ID:          id,
		StatusID:    model.BookingStatusScheduled,
		StoreRoomID: &roomID,
		StartAt:     &start,
		EndAt:       &end,
	}
}

func TestConflictServiceSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled booking with overlaps", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{overlapping: []int64{3, 5}})

		summary, err := svc.Summary(ctx, scheduledBooking(1))
		require.NoError(t, err)
		assert.True(t, summary.HasConflict)
		assert.Equal(t, 2, summary.Count)
		assert.Equal(t, []int64{3, 5}, summary.BookingIDs)
	})

	t.Run("scheduled booking without overlaps", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{})

		summary, err := svc.Summary(ctx, scheduledBooking(1))
		require.NoError(t, err)
		assert.False(t, summary.HasConflict)
		assert.Zero(t, summary.Count)
		assert.Empty(t, summary.BookingIDs)
	})

	t.Run("incomplete booking never participates", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{overlapping: []int64{3}})
		booking := &model.Booking{ID: 1, StatusID: model.BookingStatusIncomplete}

		summary, err := svc.Summary(ctx, booking)
		require.NoError(t, err)
		assert.False(t, summary.HasConflict)
		assert.Empty(t, summary.BookingIDs)
	})

	t.Run("cancelled booking never participates", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{overlapping: []int64{3}})
		booking := scheduledBooking(1)
		booking.StatusID = model.BookingStatusCancelled

		summary, err := svc.Summary(ctx, booking)
		require.NoError(t, err)
		assert.False(t, summary.HasConflict)
	})

	t.Run("completed booking participates", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{overlapping: []int64{9}})
		booking := scheduledBooking(1)
		booking.StatusID = model.BookingStatusCompleted

		summary, err := svc.Summary(ctx, booking)
		require.NoError(t, err)
		assert.True(t, summary.HasConflict)
		assert.Equal(t, []int64{9}, summary.BookingIDs)
	})
}

func TestConflictServiceGetBookingConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("missing booking", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{})

		_, err := svc.GetBookingConflicts(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("found booking", func(t *testing.T) {
		svc := NewConflictService(&fakeConflictStore{
			booking:     scheduledBooking(1),
			overlapping: []int64{2},
		})

		summary, err := svc.GetBookingConflicts(ctx, 1, 1)
		require.NoError(t, err)
		assert.True(t, summary.HasConflict)
		assert.Equal(t, []int64{2}, summary.BookingIDs)
	})
}
