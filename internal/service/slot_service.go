package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"go.uber.org/zap"
)

type SlotService struct {
	storeRepo *repository.StoreRepository
	slotRepo  *repository.SlotRepository
	logger    *zap.Logger
}

func NewSlotService(storeRepo *repository.StoreRepository, slotRepo *repository.SlotRepository, logger *zap.Logger) *SlotService {
	return &SlotService{
		storeRepo: storeRepo,
		slotRepo:  slotRepo,
		logger:    logger,
	}
}

// List выдаёт страницу слотов магазина
func (s *SlotService) List(ctx context.Context, storeID int64, limit, offset int) ([]model.Slot, int, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, 0, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, 0, NotFoundf("store_id=%d was not found", storeID)
	}

	return s.slotRepo.List(ctx, storeID, limit, offset)
}

// Create создаёт слот; время начала уникально в пределах магазина
func (s *SlotService) Create(ctx context.Context, storeID int64, startAt time.Time) (*model.Slot, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, NotFoundf("store_id=%d was not found", storeID)
	}

	slot, err := s.slotRepo.Create(ctx, storeID, startAt)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("slot at %s already exists in this store", startAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("store_id", storeID),
		zap.Time("start_at", startAt),
	)

	return slot, nil
}

// Update переносит слот на другое время
func (s *SlotService) Update(ctx context.Context, storeID, slotID int64, startAt time.Time) (*model.Slot, error) {
	slot, err := s.slotRepo.Update(ctx, storeID, slotID, startAt)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("slot at %s already exists in this store", startAt.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("update slot: %w", err)
	}
	if slot == nil {
		return nil, NotFoundf("slot_id=%d was not found", slotID)
	}

	return slot, nil
}

// Delete удаляет слот; слот с бронями удалить нельзя
func (s *SlotService) Delete(ctx context.Context, storeID, slotID int64) error {
	has, err := s.slotRepo.HasBookings(ctx, slotID)
	if err != nil {
		return fmt.Errorf("check slot bookings: %w", err)
	}
	if has {
		return Conflictf("slot_id=%d is referenced by bookings", slotID)
	}

	deleted, err := s.slotRepo.Delete(ctx, storeID, slotID)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return Conflictf("slot_id=%d is referenced by bookings", slotID)
		}
		return fmt.Errorf("delete slot: %w", err)
	}
	if !deleted {
		return NotFoundf("slot_id=%d was not found", slotID)
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.Int64("store_id", storeID),
	)

	return nil
}
