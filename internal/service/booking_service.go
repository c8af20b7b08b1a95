package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingService struct {
	pool          *pgxpool.Pool
	storeRepo     *repository.StoreRepository
	scriptRepo    *repository.ScriptRepository
	characterRepo *repository.CharacterRepository
	clientRepo    *repository.ClientRepository
	roomRepo      *repository.RoomRepository
	slotRepo      *repository.SlotRepository
	bookingRepo   *repository.BookingRepository
	clientMatches *repository.CharacterClientMatchRepository
	conflicts     *ConflictService
	logger        *zap.Logger
}

func NewBookingService(
	pool *pgxpool.Pool,
	storeRepo *repository.StoreRepository,
	scriptRepo *repository.ScriptRepository,
	characterRepo *repository.CharacterRepository,
	clientRepo *repository.ClientRepository,
	roomRepo *repository.RoomRepository,
	slotRepo *repository.SlotRepository,
	bookingRepo *repository.BookingRepository,
	clientMatches *repository.CharacterClientMatchRepository,
	conflicts *ConflictService,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		pool:          pool,
		storeRepo:     storeRepo,
		scriptRepo:    scriptRepo,
		characterRepo: characterRepo,
		clientRepo:    clientRepo,
		roomRepo:      roomRepo,
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		clientMatches: clientMatches,
		conflicts:     conflicts,
		logger:        logger,
	}
}

// CreateIncomplete создаёт черновик брони: только целевой месяц, клиенты и
// (опционально) сценарий. targetMonth должен быть первым днём месяца.
func (s *BookingService) CreateIncomplete(ctx context.Context, storeID int64, targetMonth time.Time, clientIDs []int64, scriptID *int64) (*model.Booking, error) {
	var booking *model.Booking

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		exists, err := s.storeRepo.WithTx(tx).Exists(ctx, storeID)
		if err != nil {
			return fmt.Errorf("check store: %w", err)
		}
		if !exists {
			return NotFoundf("store_id=%d was not found", storeID)
		}

		scriptRepo := s.scriptRepo.WithTx(tx)
		if scriptID != nil {
			active, err := scriptRepo.ActivationActive(ctx, storeID, *scriptID)
			if err != nil {
				return fmt.Errorf("check script activation: %w", err)
			}
			if !active {
				return NotFoundf("script_id=%d is not active for store_id=%d", *scriptID, storeID)
			}
		}

		count, err := s.clientRepo.WithTx(tx).CountExisting(ctx, clientIDs)
		if err != nil {
			return fmt.Errorf("check clients: %w", err)
		}
		if count != len(clientIDs) {
			return NotFoundf("one or more client ids were not found")
		}

		bookingRepo := s.bookingRepo.WithTx(tx)
		booking, err = bookingRepo.CreateIncomplete(ctx, storeID, targetMonth, scriptID)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		for _, clientID := range clientIDs {
			if err := bookingRepo.AddClient(ctx, booking.ID, clientID); err != nil {
				if repository.IsUniqueViolation(err) {
					return Conflictf("client_id=%d is listed more than once", clientID)
				}
				return fmt.Errorf("add client: %w", err)
			}
		}
		booking.ClientIDs = clientIDs

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("store_id", storeID),
		zap.Int("clients", len(clientIDs)),
	)

	return booking, nil
}

// Get получает бронь вместе со сводкой конфликтов
func (s *BookingService) Get(ctx context.Context, storeID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}

	summary, err := s.conflicts.Summary(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("booking conflicts: %w", err)
	}
	booking.Conflicts = summary

	return booking, nil
}

// List выдаёт страницу броней магазина по фильтру
func (s *BookingService) List(ctx context.Context, storeID int64, f repository.BookingFilter) ([]model.Booking, int, error) {
	exists, err := s.storeRepo.Exists(ctx, storeID)
	if err != nil {
		return nil, 0, fmt.Errorf("check store: %w", err)
	}
	if !exists {
		return nil, 0, NotFoundf("store_id=%d was not found", storeID)
	}

	return s.bookingRepo.List(ctx, storeID, f)
}

// UpdateIncomplete меняет месяц и/или сценарий черновика. ClearScript и
// ScriptID взаимоисключающие.
func (s *BookingService) UpdateIncomplete(ctx context.Context, storeID, bookingID int64, upd repository.IncompleteUpdate) (*model.Booking, error) {
	if upd.ClearScript && upd.ScriptID != nil {
		return nil, Conflictf("clear_script and script_id are mutually exclusive")
	}

	var booking *model.Booking

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if upd.ScriptID != nil {
			active, err := s.scriptRepo.WithTx(tx).ActivationActive(ctx, storeID, *upd.ScriptID)
			if err != nil {
				return fmt.Errorf("check script activation: %w", err)
			}
			if !active {
				return NotFoundf("script_id=%d is not active for store_id=%d", *upd.ScriptID, storeID)
			}
		}

		bookingRepo := s.bookingRepo.WithTx(tx)

		var err error
		booking, err = bookingRepo.UpdateIncomplete(ctx, storeID, bookingID, upd)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		if booking == nil {
			// Либо брони нет, либо она уже не черновик
			status, found, err := bookingRepo.GetStatus(ctx, storeID, bookingID)
			if err != nil {
				return fmt.Errorf("get booking status: %w", err)
			}
			if !found {
				return NotFoundf("booking_id=%d was not found", bookingID)
			}
			return Conflictf("booking is %s, only incomplete bookings can be edited", status)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// Confirm подтверждает черновик: проверяет состав, подбирает комнату,
// закрепляет слот и переводит бронь в scheduled. Занятость комнат
// подтверждению не мешает: при полной занятости бронь станет конфликтной.
func (s *BookingService) Confirm(ctx context.Context, storeID, bookingID int64, startAt time.Time, preferredRoomID *int64) (*model.Booking, error) {
	var booking *model.Booking

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		bookingRepo := s.bookingRepo.WithTx(tx)

		current, err := bookingRepo.GetByID(ctx, storeID, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if current == nil {
			return NotFoundf("booking_id=%d was not found", bookingID)
		}
		if current.StatusID != model.BookingStatusIncomplete {
			return Conflictf("booking is %s, only incomplete bookings can be confirmed", current.StatusID)
		}
		if current.ScriptID == nil {
			return Conflictf("booking has no script assigned")
		}
		if len(current.ClientIDs) == 0 {
			return Conflictf("booking has no clients")
		}

		scriptRepo := s.scriptRepo.WithTx(tx)

		active, err := scriptRepo.ActivationActive(ctx, storeID, *current.ScriptID)
		if err != nil {
			return fmt.Errorf("check script activation: %w", err)
		}
		if !active {
			return Conflictf("script_id=%d is not active for store_id=%d", *current.ScriptID, storeID)
		}

		// Состав: ровно столько клиентов, сколько игровых персонажей,
		// и строгая биекция персонаж-клиент через матчи
		characterIDs, err := s.characterRepo.WithTx(tx).ActiveNonDMIDs(ctx, *current.ScriptID)
		if err != nil {
			return fmt.Errorf("list script characters: %w", err)
		}
		if len(current.ClientIDs) != len(characterIDs) {
			return Conflictf("script requires exactly %d clients, booking has %d", len(characterIDs), len(current.ClientIDs))
		}

		matches, err := s.clientMatches.WithTx(tx).ListByBooking(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("list client matches: %w", err)
		}
		if err := validateCastBijection(characterIDs, current.ClientIDs, matches); err != nil {
			return err
		}

		script, err := scriptRepo.GetScript(ctx, *current.ScriptID)
		if err != nil {
			return fmt.Errorf("get script: %w", err)
		}
		if script == nil {
			return NotFoundf("script_id=%d was not found", *current.ScriptID)
		}

		minutes := model.EffectiveMinutes(current.DurationOverrideMinutes, script.EstimatedMinutes)
		endAt := startAt.Add(time.Duration(minutes) * time.Minute)

		rooms, err := s.roomRepo.WithTx(tx).ListActive(ctx, storeID)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}

		roomID, err := AllocateRoom(ctx, bookingRepo, rooms, preferredRoomID, startAt, endAt, bookingID)
		if err != nil {
			return err
		}

		slotID, err := s.slotRepo.WithTx(tx).GetOrCreate(ctx, storeID, startAt)
		if err != nil {
			return fmt.Errorf("get or create slot: %w", err)
		}

		ok, err := bookingRepo.ConfirmSchedule(ctx, storeID, bookingID, slotID, roomID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("confirm booking: %w", err)
		}
		if !ok {
			return Conflictf("booking is no longer incomplete")
		}

		booking, err = bookingRepo.GetByID(ctx, storeID, bookingID)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.conflicts.Summary(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("booking conflicts: %w", err)
	}
	booking.Conflicts = summary

	s.logger.Info("Booking confirmed",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("store_id", storeID),
		zap.Time("start_at", startAt),
		zap.Int64p("room_id", booking.StoreRoomID),
		zap.Bool("has_conflict", summary.HasConflict),
	)

	return booking, nil
}

// Cancel отменяет бронь из любого статуса
func (s *BookingService) Cancel(ctx context.Context, storeID, bookingID int64) (*model.Booking, error) {
	found, err := s.bookingRepo.Cancel(ctx, storeID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !found {
		return nil, NotFoundf("booking_id=%d was not found", bookingID)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("store_id", storeID),
	)

	return s.Get(ctx, storeID, bookingID)
}

// Complete переводит бронь из scheduled в completed
func (s *BookingService) Complete(ctx context.Context, storeID, bookingID int64) (*model.Booking, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		bookingRepo := s.bookingRepo.WithTx(tx)

		ok, err := bookingRepo.UpdateStatus(ctx, storeID, bookingID, model.BookingStatusScheduled, model.BookingStatusCompleted)
		if err != nil {
			return fmt.Errorf("complete booking: %w", err)
		}
		if !ok {
			status, found, err := bookingRepo.GetStatus(ctx, storeID, bookingID)
			if err != nil {
				return fmt.Errorf("get booking status: %w", err)
			}
			if !found {
				return NotFoundf("booking_id=%d was not found", bookingID)
			}
			return Conflictf("booking is %s, only scheduled bookings can be completed", status)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking completed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("store_id", storeID),
	)

	return s.Get(ctx, storeID, bookingID)
}

// AddClient привязывает клиента к черновику брони
func (s *BookingService) AddClient(ctx context.Context, storeID, bookingID, clientID int64) (*model.Booking, error) {
	var booking *model.Booking

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		bookingRepo := s.bookingRepo.WithTx(tx)

		if err := requireIncomplete(ctx, bookingRepo, storeID, bookingID); err != nil {
			return err
		}

		exists, err := s.clientRepo.WithTx(tx).Exists(ctx, clientID)
		if err != nil {
			return fmt.Errorf("check client: %w", err)
		}
		if !exists {
			return NotFoundf("client_id=%d was not found", clientID)
		}

		if err := bookingRepo.AddClient(ctx, bookingID, clientID); err != nil {
			if repository.IsUniqueViolation(err) {
				return Conflictf("client_id=%d is already linked to this booking", clientID)
			}
			return fmt.Errorf("add client: %w", err)
		}

		booking, err = bookingRepo.GetByID(ctx, storeID, bookingID)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// RemoveClient отвязывает клиента от черновика; последнего клиента снять нельзя
func (s *BookingService) RemoveClient(ctx context.Context, storeID, bookingID, clientID int64) (*model.Booking, error) {
	var booking *model.Booking

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		bookingRepo := s.bookingRepo.WithTx(tx)

		if err := requireIncomplete(ctx, bookingRepo, storeID, bookingID); err != nil {
			return err
		}

		count, err := bookingRepo.CountClients(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("count clients: %w", err)
		}
		if count <= 1 {
			return Conflictf("booking must keep at least one client")
		}

		removed, err := bookingRepo.RemoveClient(ctx, bookingID, clientID)
		if err != nil {
			return fmt.Errorf("remove client: %w", err)
		}
		if !removed {
			return NotFoundf("client_id=%d is not linked to this booking", clientID)
		}

		booking, err = bookingRepo.GetByID(ctx, storeID, bookingID)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// requireIncomplete проверяет, что бронь существует и всё ещё черновик
func requireIncomplete(ctx context.Context, bookingRepo *repository.BookingRepository, storeID, bookingID int64) error {
	status, found, err := bookingRepo.GetStatus(ctx, storeID, bookingID)
	if err != nil {
		return fmt.Errorf("get booking status: %w", err)
	}
	if !found {
		return NotFoundf("booking_id=%d was not found", bookingID)
	}
	if status != model.BookingStatusIncomplete {
		return Conflictf("booking is %s, only incomplete bookings can be modified", status)
	}
	return nil
}

// validateCastBijection проверяет, что матчи образуют строгую биекцию между
// игровыми персонажами сценария и клиентами брони
func validateCastBijection(characterIDs, clientIDs []int64, matches []model.CharacterClientMatch) error {
	if len(matches) != len(characterIDs) {
		return Conflictf("script requires %d character-client matches, booking has %d", len(characterIDs), len(matches))
	}

	characters := make(map[int64]bool, len(characterIDs))
	for _, id := range characterIDs {
		characters[id] = false
	}
	clients := make(map[int64]bool, len(clientIDs))
	for _, id := range clientIDs {
		clients[id] = false
	}

	for _, m := range matches {
		used, ok := characters[m.CharacterID]
		if !ok {
			return Conflictf("character_id=%d is not a playable character of the booking script", m.CharacterID)
		}
		if used {
			return Conflictf("character_id=%d is matched more than once", m.CharacterID)
		}
		characters[m.CharacterID] = true

		used, ok = clients[m.ClientID]
		if !ok {
			return Conflictf("client_id=%d is not linked to this booking", m.ClientID)
		}
		if used {
			return Conflictf("client_id=%d is matched more than once", m.ClientID)
		}
		clients[m.ClientID] = true
	}

	return nil
}
