package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ScriptService struct {
	pool          *pgxpool.Pool
	storeRepo     *repository.StoreRepository
	scriptRepo    *repository.ScriptRepository
	characterRepo *repository.CharacterRepository
	bookingRepo   *repository.BookingRepository
	logger        *zap.Logger
}

func NewScriptService(
	pool *pgxpool.Pool,
	storeRepo *repository.StoreRepository,
	scriptRepo *repository.ScriptRepository,
	characterRepo *repository.CharacterRepository,
	bookingRepo *repository.BookingRepository,
	logger *zap.Logger,
) *ScriptService {
	return &ScriptService{
		pool:          pool,
		storeRepo:     storeRepo,
		scriptRepo:    scriptRepo,
		characterRepo: characterRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// CreateScript создаёт сценарий в общем каталоге
func (s *ScriptService) CreateScript(ctx context.Context, name string, estimatedMinutes int32) (*model.Script, error) {
	script, err := s.scriptRepo.CreateScript(ctx, name, estimatedMinutes)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("script %q already exists", name)
		}
		return nil, fmt.Errorf("create script: %w", err)
	}

	s.logger.Info("Script created",
		zap.Int64("script_id", script.ID),
		zap.String("name", name),
	)

	return script, nil
}

// GetScript получает сценарий из каталога
func (s *ScriptService) GetScript(ctx context.Context, scriptID int64) (*model.Script, error) {
	script, err := s.scriptRepo.GetScript(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}
	if script == nil {
		return nil, NotFoundf("script_id=%d was not found", scriptID)
	}
	return script, nil
}

// DeleteScript удаляет сценарий вместе с персонажами и неактивными
// активациями. Сценарий с бронями или активный хоть в одном магазине
// удалить нельзя.
func (s *ScriptService) DeleteScript(ctx context.Context, scriptID int64) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		scriptRepo := s.scriptRepo.WithTx(tx)

		exists, err := scriptRepo.ScriptExists(ctx, scriptID)
		if err != nil {
			return fmt.Errorf("check script: %w", err)
		}
		if !exists {
			return NotFoundf("script_id=%d was not found", scriptID)
		}

		bookings, err := s.bookingRepo.WithTx(tx).CountForScript(ctx, scriptID)
		if err != nil {
			return fmt.Errorf("count script bookings: %w", err)
		}
		if bookings > 0 {
			return Conflictf("script_id=%d is referenced by %d bookings", scriptID, bookings)
		}

		activations, err := scriptRepo.CountActiveActivations(ctx, scriptID)
		if err != nil {
			return fmt.Errorf("count script activations: %w", err)
		}
		if activations > 0 {
			return Conflictf("script_id=%d is still active in %d stores", scriptID, activations)
		}

		if err := scriptRepo.DeleteActivations(ctx, scriptID); err != nil {
			return fmt.Errorf("delete script activations: %w", err)
		}
		if err := s.characterRepo.WithTx(tx).DeleteByScript(ctx, scriptID); err != nil {
			return fmt.Errorf("delete script characters: %w", err)
		}

		deleted, err := scriptRepo.DeleteScript(ctx, scriptID)
		if err != nil {
			if repository.IsForeignKeyViolation(err) {
				return Conflictf("script_id=%d is referenced by bookings", scriptID)
			}
			return fmt.Errorf("delete script: %w", err)
		}
		if !deleted {
			return NotFoundf("script_id=%d was not found", scriptID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Script deleted", zap.Int64("script_id", scriptID))

	return nil
}

// ListStoreScripts выдаёт страницу активаций сценариев в магазине
func (s *ScriptService) ListStoreScripts(ctx context.Context, storeID int64, limit, offset int) ([]model.StoreScript, int, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, 0, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, 0, NotFoundf("store_id=%d was not found", storeID)
	}

	return s.scriptRepo.ListStoreScripts(ctx, storeID, limit, offset)
}

// CreateStoreScript активирует сценарий каталога в магазине
func (s *ScriptService) CreateStoreScript(ctx context.Context, storeID, scriptID int64, isActive bool) (*model.StoreScript, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, NotFoundf("store_id=%d was not found", storeID)
	}

	exists, err = s.scriptRepo.ScriptExists(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("check script: %w", err)
	}
	if !exists {
		return nil, NotFoundf("script_id=%d was not found", scriptID)
	}

	if err := s.scriptRepo.CreateStoreScript(ctx, storeID, scriptID, isActive); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("script_id=%d is already activated for this store", scriptID)
		}
		return nil, fmt.Errorf("create store script: %w", err)
	}

	s.logger.Info("Script activated",
		zap.Int64("store_id", storeID),
		zap.Int64("script_id", scriptID),
		zap.Bool("is_active", isActive),
	)

	return s.scriptRepo.GetStoreScript(ctx, storeID, scriptID)
}

// UpdateStoreScript включает или выключает активацию сценария в магазине
func (s *ScriptService) UpdateStoreScript(ctx context.Context, storeID, scriptID int64, isActive bool) (*model.StoreScript, error) {
	ok, err := s.scriptRepo.UpdateStoreScript(ctx, storeID, scriptID, isActive)
	if err != nil {
		return nil, fmt.Errorf("update store script: %w", err)
	}
	if !ok {
		return nil, NotFoundf("script_id=%d is not activated for store_id=%d", scriptID, storeID)
	}

	return s.scriptRepo.GetStoreScript(ctx, storeID, scriptID)
}

// DeleteStoreScript убирает активацию; с бронями этого сценария в магазине
// активацию удалить нельзя
func (s *ScriptService) DeleteStoreScript(ctx context.Context, storeID, scriptID int64) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		count, err := s.bookingRepo.WithTx(tx).CountForStoreScript(ctx, storeID, scriptID)
		if err != nil {
			return fmt.Errorf("count store script bookings: %w", err)
		}
		if count > 0 {
			return Conflictf("script_id=%d is referenced by %d bookings in this store", scriptID, count)
		}

		deleted, err := s.scriptRepo.WithTx(tx).DeleteStoreScript(ctx, storeID, scriptID)
		if err != nil {
			if repository.IsForeignKeyViolation(err) {
				return Conflictf("script_id=%d is referenced by bookings in this store", scriptID)
			}
			return fmt.Errorf("delete store script: %w", err)
		}
		if !deleted {
			return NotFoundf("script_id=%d is not activated for store_id=%d", scriptID, storeID)
		}

		return nil
	})
}
