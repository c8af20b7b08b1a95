package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"go.uber.org/zap"
)

type RoomService struct {
	storeRepo *repository.StoreRepository
	roomRepo  *repository.RoomRepository
	logger    *zap.Logger
}

func NewRoomService(storeRepo *repository.StoreRepository, roomRepo *repository.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{
		storeRepo: storeRepo,
		roomRepo:  roomRepo,
		logger:    logger,
	}
}

// List выдаёт страницу комнат магазина
func (s *RoomService) List(ctx context.Context, storeID int64, limit, offset int) ([]model.Room, int, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, 0, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, 0, NotFoundf("store_id=%d was not found", storeID)
	}

	return s.roomRepo.List(ctx, storeID, limit, offset)
}

// Create создаёт комнату магазина
func (s *RoomService) Create(ctx context.Context, storeID int64, name string) (*model.Room, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, NotFoundf("store_id=%d was not found", storeID)
	}

	room, err := s.roomRepo.Create(ctx, storeID, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("room %q already exists in this store", name)
		}
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.Int64("store_id", storeID),
		zap.String("name", name),
	)

	return room, nil
}

// Update меняет имя и/или активность комнаты
func (s *RoomService) Update(ctx context.Context, storeID, roomID int64, name *string, isActive *bool) (*model.Room, error) {
	room, err := s.roomRepo.Update(ctx, storeID, roomID, name, isActive)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("room %q already exists in this store", *name)
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	if room == nil {
		return nil, NotFoundf("room_id=%d was not found", roomID)
	}

	return room, nil
}

// Delete удаляет комнату; комнату с бронями удалить нельзя
func (s *RoomService) Delete(ctx context.Context, storeID, roomID int64) error {
	has, err := s.roomRepo.HasBookings(ctx, roomID)
	if err != nil {
		return fmt.Errorf("check room bookings: %w", err)
	}
	if has {
		return Conflictf("room_id=%d is referenced by bookings", roomID)
	}

	deleted, err := s.roomRepo.Delete(ctx, storeID, roomID)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return Conflictf("room_id=%d is referenced by bookings", roomID)
		}
		return fmt.Errorf("delete room: %w", err)
	}
	if !deleted {
		return NotFoundf("room_id=%d was not found", roomID)
	}

	s.logger.Info("Room deleted",
		zap.Int64("room_id", roomID),
		zap.Int64("store_id", storeID),
	)

	return nil
}
