package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"go.uber.org/zap"
)

type ScriptCharacterService struct {
	scriptRepo    *repository.ScriptRepository
	characterRepo *repository.CharacterRepository
	logger        *zap.Logger
}

func NewScriptCharacterService(
	scriptRepo *repository.ScriptRepository,
	characterRepo *repository.CharacterRepository,
	logger *zap.Logger,
) *ScriptCharacterService {
	return &ScriptCharacterService{
		scriptRepo:    scriptRepo,
		characterRepo: characterRepo,
		logger:        logger,
	}
}

// List выдаёт страницу персонажей сценария
func (s *ScriptCharacterService) List(ctx context.Context, scriptID int64, limit, offset int) ([]model.Character, int, error) {
	exists, err := s.scriptRepo.ScriptExists(ctx, scriptID)
	if err != nil {
		return nil, 0, fmt.Errorf("check script: %w", err)
	}
	if !exists {
		return nil, 0, NotFoundf("script_id=%d was not found", scriptID)
	}

	return s.characterRepo.List(ctx, scriptID, limit, offset)
}

// Get получает персонажа сценария
func (s *ScriptCharacterService) Get(ctx context.Context, scriptID, characterID int64) (*model.Character, error) {
	character, err := s.characterRepo.Get(ctx, scriptID, characterID)
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	if character == nil {
		return nil, NotFoundf("character_id=%d was not found", characterID)
	}
	return character, nil
}

// Create создаёт персонажа; имя уникально в пределах сценария
func (s *ScriptCharacterService) Create(ctx context.Context, scriptID int64, name string, isDM, isActive bool) (*model.Character, error) {
	exists, err := s.scriptRepo.ScriptExists(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("check script: %w", err)
	}
	if !exists {
		return nil, NotFoundf("script_id=%d was not found", scriptID)
	}

	character, err := s.characterRepo.Create(ctx, scriptID, name, isDM, isActive)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("character %q already exists in this script", name)
		}
		return nil, fmt.Errorf("create character: %w", err)
	}

	s.logger.Info("Character created",
		zap.Int64("character_id", character.ID),
		zap.Int64("script_id", scriptID),
		zap.String("name", name),
		zap.Bool("is_dm", isDM),
	)

	return character, nil
}

// Update меняет имя, роль и/или активность персонажа
func (s *ScriptCharacterService) Update(ctx context.Context, scriptID, characterID int64, name *string, isDM, isActive *bool) (*model.Character, error) {
	character, err := s.characterRepo.Update(ctx, scriptID, characterID, name, isDM, isActive)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, Conflictf("character %q already exists in this script", *name)
		}
		return nil, fmt.Errorf("update character: %w", err)
	}
	if character == nil {
		return nil, NotFoundf("character_id=%d was not found", characterID)
	}

	return character, nil
}

// Delete удаляет персонажа сценария
func (s *ScriptCharacterService) Delete(ctx context.Context, scriptID, characterID int64) error {
	deleted, err := s.characterRepo.Delete(ctx, scriptID, characterID)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	if !deleted {
		return NotFoundf("character_id=%d was not found", characterID)
	}

	s.logger.Info("Character deleted",
		zap.Int64("character_id", characterID),
		zap.Int64("script_id", scriptID),
	)

	return nil
}
