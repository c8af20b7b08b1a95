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

// CharacterClientMatchService управляет назначениями клиентов на игровые
// роли. Все изменения допустимы только пока бронь остаётся черновиком.
type CharacterClientMatchService struct {
	pool          *pgxpool.Pool
	bookingRepo   *repository.BookingRepository
	characterRepo *repository.CharacterRepository
	matchRepo     *repository.CharacterClientMatchRepository
	logger        *zap.Logger
}

func NewCharacterClientMatchService(
	pool *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	characterRepo *repository.CharacterRepository,
	matchRepo *repository.CharacterClientMatchRepository,
	logger *zap.Logger,
) *CharacterClientMatchService {
	return &CharacterClientMatchService{
		pool:          pool,
		bookingRepo:   bookingRepo,
		characterRepo: characterRepo,
		matchRepo:     matchRepo,
		logger:        logger,
	}
}

// List выдаёт все матчи брони
func (s *CharacterClientMatchService) List(ctx context.Context, storeID, bookingID int64) ([]model.CharacterClientMatch, error) {
	_, found, err := s.bookingRepo.GetStatus(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking status: %w", err)
	}
	if !found {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}

	return s.matchRepo.ListByBooking(ctx, bookingID)
}

// Create назначает клиента брони на игровую роль её сценария
func (s *CharacterClientMatchService) Create(ctx context.Context, storeID, bookingID, characterID, clientID int64) (*model.CharacterClientMatch, error) {
	var match *model.CharacterClientMatch

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		booking, err := s.incompleteBooking(ctx, tx, storeID, bookingID)
		if err != nil {
			return err
		}

		if err := s.checkCharacterScope(ctx, tx, booking, characterID); err != nil {
			return err
		}
		if err := checkClientLinked(booking, clientID); err != nil {
			return err
		}

		match, err = s.matchRepo.WithTx(tx).Create(ctx, bookingID, characterID, clientID)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return Conflictf("character or client is already matched for this booking")
			}
			return fmt.Errorf("create match: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Client matched",
		zap.Int64("booking_id", bookingID),
		zap.Int64("character_id", characterID),
		zap.Int64("client_id", clientID),
	)

	return match, nil
}

// Update меняет роль и/или клиента существующего матча
func (s *CharacterClientMatchService) Update(ctx context.Context, storeID, bookingID, matchID int64, characterID, clientID *int64) (*model.CharacterClientMatch, error) {
	var match *model.CharacterClientMatch

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		booking, err := s.incompleteBooking(ctx, tx, storeID, bookingID)
		if err != nil {
			return err
		}

		if characterID != nil {
			if err := s.checkCharacterScope(ctx, tx, booking, *characterID); err != nil {
				return err
			}
		}
		if clientID != nil {
			if err := checkClientLinked(booking, *clientID); err != nil {
				return err
			}
		}

		match, err = s.matchRepo.WithTx(tx).Update(ctx, bookingID, matchID, characterID, clientID)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return Conflictf("character or client is already matched for this booking")
			}
			return fmt.Errorf("update match: %w", err)
		}
		if match == nil {
			return NotFoundf("match_id=%d was not found", matchID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Delete снимает назначение клиента с роли
func (s *CharacterClientMatchService) Delete(ctx context.Context, storeID, bookingID, matchID int64) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := requireIncomplete(ctx, s.bookingRepo.WithTx(tx), storeID, bookingID); err != nil {
			return err
		}

		deleted, err := s.matchRepo.WithTx(tx).Delete(ctx, bookingID, matchID)
		if err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		if !deleted {
			return NotFoundf("match_id=%d was not found", matchID)
		}

		return nil
	})
}

// incompleteBooking загружает бронь и проверяет, что она ещё черновик
func (s *CharacterClientMatchService) incompleteBooking(ctx context.Context, tx pgx.Tx, storeID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.WithTx(tx).GetByID(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}
	if booking.StatusID != model.BookingStatusIncomplete {
		return nil, Conflictf("booking is %s, matches can only be modified while incomplete", booking.StatusID)
	}
	return booking, nil
}

// checkCharacterScope проверяет, что роль игровая и принадлежит сценарию брони
func (s *CharacterClientMatchService) checkCharacterScope(ctx context.Context, tx pgx.Tx, booking *model.Booking, characterID int64) error {
	if booking.ScriptID == nil {
		return Conflictf("assign a script to the booking before matching")
	}

	character, err := s.characterRepo.WithTx(tx).GetByID(ctx, characterID)
	if err != nil {
		return fmt.Errorf("get character: %w", err)
	}
	if character == nil {
		return NotFoundf("character_id=%d was not found", characterID)
	}
	if character.ScriptID != *booking.ScriptID {
		return Conflictf("character_id=%d does not belong to the booking script", characterID)
	}
	if character.IsDM {
		return Conflictf("character_id=%d is a dm-only character", characterID)
	}

	return nil
}

func checkClientLinked(booking *model.Booking, clientID int64) error {
	for _, id := range booking.ClientIDs {
		if id == clientID {
			return nil
		}
	}
	return Conflictf("client_id=%d is not linked to this booking", clientID)
}

// CharacterDmMatchService управляет назначениями ведущих: либо на DM-роль
// сценария, либо свободным резервом без роли
type CharacterDmMatchService struct {
	pool          *pgxpool.Pool
	bookingRepo   *repository.BookingRepository
	characterRepo *repository.CharacterRepository
	dmRepo        *repository.DmRepository
	matchRepo     *repository.CharacterDmMatchRepository
	logger        *zap.Logger
}

func NewCharacterDmMatchService(
	pool *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	characterRepo *repository.CharacterRepository,
	dmRepo *repository.DmRepository,
	matchRepo *repository.CharacterDmMatchRepository,
	logger *zap.Logger,
) *CharacterDmMatchService {
	return &CharacterDmMatchService{
		pool:          pool,
		bookingRepo:   bookingRepo,
		characterRepo: characterRepo,
		dmRepo:        dmRepo,
		matchRepo:     matchRepo,
		logger:        logger,
	}
}

// List выдаёт все назначения ведущих брони
func (s *CharacterDmMatchService) List(ctx context.Context, storeID, bookingID int64) ([]model.CharacterDmMatch, error) {
	_, found, err := s.bookingRepo.GetStatus(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking status: %w", err)
	}
	if !found {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}

	return s.matchRepo.ListByBooking(ctx, bookingID)
}

// Create назначает ведущего на DM-роль или свободным резервом
func (s *CharacterDmMatchService) Create(ctx context.Context, storeID, bookingID, dmID int64, assignment model.DmAssignment) (*model.CharacterDmMatch, error) {
	var match *model.CharacterDmMatch

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		booking, err := s.incompleteBooking(ctx, tx, storeID, bookingID)
		if err != nil {
			return err
		}

		if err := s.checkDmScope(ctx, tx, storeID, dmID); err != nil {
			return err
		}
		if err := s.checkAssignmentScope(ctx, tx, booking, assignment); err != nil {
			return err
		}

		match, err = s.matchRepo.WithTx(tx).Create(ctx, bookingID, dmID, assignment)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return Conflictf("dm assignment already exists for this booking")
			}
			return fmt.Errorf("create dm match: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DM matched",
		zap.Int64("booking_id", bookingID),
		zap.Int64("dm_id", dmID),
	)

	return match, nil
}

// Update меняет ведущего и/или его назначение
func (s *CharacterDmMatchService) Update(ctx context.Context, storeID, bookingID, matchID int64, upd repository.DmMatchUpdate) (*model.CharacterDmMatch, error) {
	var match *model.CharacterDmMatch

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		booking, err := s.incompleteBooking(ctx, tx, storeID, bookingID)
		if err != nil {
			return err
		}

		if upd.DmID != nil {
			if err := s.checkDmScope(ctx, tx, storeID, *upd.DmID); err != nil {
				return err
			}
		}
		if upd.Assignment != nil {
			if err := s.checkAssignmentScope(ctx, tx, booking, *upd.Assignment); err != nil {
				return err
			}
		}

		match, err = s.matchRepo.WithTx(tx).Update(ctx, bookingID, matchID, upd)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return Conflictf("dm assignment already exists for this booking")
			}
			return fmt.Errorf("update dm match: %w", err)
		}
		if match == nil {
			return NotFoundf("match_id=%d was not found", matchID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// Delete снимает назначение ведущего
func (s *CharacterDmMatchService) Delete(ctx context.Context, storeID, bookingID, matchID int64) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := requireIncomplete(ctx, s.bookingRepo.WithTx(tx), storeID, bookingID); err != nil {
			return err
		}

		deleted, err := s.matchRepo.WithTx(tx).Delete(ctx, bookingID, matchID)
		if err != nil {
			return fmt.Errorf("delete dm match: %w", err)
		}
		if !deleted {
			return NotFoundf("match_id=%d was not found", matchID)
		}

		return nil
	})
}

func (s *CharacterDmMatchService) incompleteBooking(ctx context.Context, tx pgx.Tx, storeID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.WithTx(tx).GetByID(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}
	if booking.StatusID != model.BookingStatusIncomplete {
		return nil, Conflictf("booking is %s, matches can only be modified while incomplete", booking.StatusID)
	}
	return booking, nil
}

// checkDmScope проверяет, что ведущий существует и состоит в магазине брони
func (s *CharacterDmMatchService) checkDmScope(ctx context.Context, tx pgx.Tx, storeID, dmID int64) error {
	dmRepo := s.dmRepo.WithTx(tx)

	exists, err := dmRepo.Exists(ctx, dmID)
	if err != nil {
		return fmt.Errorf("check dm: %w", err)
	}
	if !exists {
		return NotFoundf("dm_id=%d was not found", dmID)
	}

	member, err := dmRepo.IsStoreMember(ctx, dmID, storeID)
	if err != nil {
		return fmt.Errorf("check dm membership: %w", err)
	}
	if !member {
		return NotFoundf("dm_id=%d is not a member of store_id=%d", dmID, storeID)
	}

	return nil
}

// checkAssignmentScope проверяет роль назначения: она должна быть DM-ролью
// сценария брони. Свободный резерв проверок не требует.
func (s *CharacterDmMatchService) checkAssignmentScope(ctx context.Context, tx pgx.Tx, booking *model.Booking, assignment model.DmAssignment) error {
	characterID, assigned := assignment.CharacterID()
	if !assigned {
		return nil
	}

	if booking.ScriptID == nil {
		return Conflictf("assign a script to the booking before matching")
	}

	character, err := s.characterRepo.WithTx(tx).GetByID(ctx, characterID)
	if err != nil {
		return fmt.Errorf("get character: %w", err)
	}
	if character == nil {
		return NotFoundf("character_id=%d was not found", characterID)
	}
	if character.ScriptID != *booking.ScriptID {
		return Conflictf("character_id=%d does not belong to the booking script", characterID)
	}
	if !character.IsDM {
		return Conflictf("character_id=%d is not a dm character", characterID)
	}

	return nil
}
