package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
)

// conflictStore подмножество BookingRepository, нужное детектору конфликтов
type conflictStore interface {
	GetByID(ctx context.Context, storeID, bookingID int64) (*model.Booking, error)
	OverlappingIDs(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) ([]int64, error)
}

// ConflictService считает пересечения брони с другими активными бронями той
// же комнаты. Интервалы полуоткрытые: бронь, заканчивающаяся ровно в момент
// начала другой, конфликтом не считается.
type ConflictService struct {
	bookings conflictStore
}

func NewConflictService(bookings conflictStore) *ConflictService {
	return &ConflictService{bookings: bookings}
}

// GetBookingConflicts получает сводку конфликтов брони магазина
func (s *ConflictService) GetBookingConflicts(ctx context.Context, storeID, bookingID int64) (model.ConflictSummary, error) {
	booking, err := s.bookings.GetByID(ctx, storeID, bookingID)
	if err != nil {
		return model.ConflictSummary{}, err
	}
	if booking == nil {
		return model.ConflictSummary{}, NotFoundf("booking_id=%d was not found", bookingID)
	}

	return s.Summary(ctx, booking)
}

// Summary считает сводку конфликтов уже загруженной брони. Брони вне статусов
// scheduled/completed (или без комнаты и времени) в конфликтах не участвуют.
func (s *ConflictService) Summary(ctx context.Context, booking *model.Booking) (model.ConflictSummary, error) {
	if !participatesInConflicts(booking) {
		return model.ConflictSummary{BookingIDs: []int64{}}, nil
	}

	ids, err := s.bookings.OverlappingIDs(ctx, *booking.StoreRoomID, *booking.StartAt, *booking.EndAt, booking.ID)
	if err != nil {
		return model.ConflictSummary{}, err
	}
	if ids == nil {
		ids = []int64{}
	}

	return model.ConflictSummary{
		HasConflict: len(ids) > 0,
		Count:       len(ids),
		BookingIDs:  ids,
	}, nil
}

func participatesInConflicts(b *model.Booking) bool {
	if b.StatusID != model.BookingStatusScheduled && b.StatusID != model.BookingStatusCompleted {
		return false
	}
	return b.StoreRoomID != nil && b.StartAt != nil && b.EndAt != nil
}

// Overlaps предикат пересечения полуоткрытых интервалов [aStart, aEnd) и
// [bStart, bEnd); зеркало SQL-предиката из BookingRepository
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
