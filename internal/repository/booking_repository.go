package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db base.DB
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *BookingRepository) WithTx(tx pgx.Tx) *BookingRepository {
	return &BookingRepository{db: tx}
}

// Пересечение полуоткрытых интервалов: бронь участвует в конфликтах только в
// статусах scheduled/completed и только при назначенной комнате. Касание
// концами (end == start) конфликтом не считается.
const conflictPredicate = `
	b.store_room_id IS NOT NULL
	AND b.booking_status_id IN (2, 4)
	AND EXISTS (
		SELECT 1
		FROM booking AS o
		WHERE o.store_room_id = b.store_room_id
		  AND o.booking_id <> b.booking_id
		  AND o.booking_status_id IN (2, 4)
		  AND o.start_at < b.end_at
		  AND b.start_at < o.end_at
	)`

const bookingColumns = `
	b.booking_id, b.store_id, b.script_id, b.booking_status_id, b.target_month,
	b.start_at, b.end_at, b.slot_id, b.store_room_id, b.duration_override_minutes,
	b.created_at, b.updated_at,
	(
		SELECT coalesce(array_agg(bc.client_id ORDER BY bc.client_id), '{}')
		FROM booking_client AS bc
		WHERE bc.booking_id = b.booking_id
	)`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.StoreID,
		&b.ScriptID,
		&b.StatusID,
		&b.TargetMonth,
		&b.StartAt,
		&b.EndAt,
		&b.SlotID,
		&b.StoreRoomID,
		&b.DurationOverrideMinutes,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ClientIDs,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateIncomplete создаёт черновик брони (статус 1)
func (r *BookingRepository) CreateIncomplete(ctx context.Context, storeID int64, targetMonth time.Time, scriptID *int64) (*model.Booking, error) {
	query := `
		INSERT INTO booking (store_id, script_id, booking_status_id, target_month)
		VALUES ($1, $2, 1, $3)
		RETURNING booking_id, store_id, script_id, booking_status_id, target_month,
			start_at, end_at, slot_id, store_room_id, duration_override_minutes,
			created_at, updated_at
	`

	var b model.Booking
	err := r.db.QueryRow(ctx, query, storeID, scriptID, targetMonth).Scan(
		&b.ID,
		&b.StoreID,
		&b.ScriptID,
		&b.StatusID,
		&b.TargetMonth,
		&b.StartAt,
		&b.EndAt,
		&b.SlotID,
		&b.StoreRoomID,
		&b.DurationOverrideMinutes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create incomplete booking: %w", err)
	}

	return &b, nil
}

// GetByID получает бронь магазина со списком клиентов; nil если не найдена
func (r *BookingRepository) GetByID(ctx context.Context, storeID, bookingID int64) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM booking AS b
		WHERE b.store_id = $1 AND b.booking_id = $2
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, storeID, bookingID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return b, nil
}

// GetStatus получает статус брони; found=false если брони нет в этом магазине
func (r *BookingRepository) GetStatus(ctx context.Context, storeID, bookingID int64) (model.BookingStatus, bool, error) {
	query := `SELECT booking_status_id FROM booking WHERE store_id = $1 AND booking_id = $2`

	var status model.BookingStatus
	err := r.db.QueryRow(ctx, query, storeID, bookingID).Scan(&status)
	if err != nil {
		if base.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get booking status: %w", err)
	}

	return status, true, nil
}

// BookingFilter условия выборки списка броней
type BookingFilter struct {
	StatusID    *model.BookingStatus
	TargetMonth *time.Time
	HasConflict *bool
	Limit       int
	Offset      int
}

// List получает страницу броней магазина; has_conflict и conflict_count
// считаются тем же предикатом существования, что и в GetByID
func (r *BookingRepository) List(ctx context.Context, storeID int64, f BookingFilter) ([]model.Booking, int, error) {
	where := "b.store_id = $1"
	args := []any{storeID}
	if f.StatusID != nil {
		args = append(args, *f.StatusID)
		where += fmt.Sprintf(" AND b.booking_status_id = $%d", len(args))
	}
	if f.TargetMonth != nil {
		args = append(args, *f.TargetMonth)
		where += fmt.Sprintf(" AND b.target_month = $%d", len(args))
	}
	if f.HasConflict != nil {
		if *f.HasConflict {
			where += " AND (" + conflictPredicate + ")"
		} else {
			where += " AND NOT (" + conflictPredicate + ")"
		}
	}

	countQuery := `SELECT count(*) FROM booking AS b WHERE ` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	args = append(args, f.Limit)
	limitArg := len(args)
	args = append(args, f.Offset)
	offsetArg := len(args)

	query := `
		SELECT ` + bookingColumns + `,
			(` + conflictPredicate + `) AS has_conflict,
			CASE WHEN b.store_room_id IS NOT NULL AND b.booking_status_id IN (2, 4) THEN (
				SELECT count(*)
				FROM booking AS o
				WHERE o.store_room_id = b.store_room_id
				  AND o.booking_id <> b.booking_id
				  AND o.booking_status_id IN (2, 4)
				  AND o.start_at < b.end_at
				  AND b.start_at < o.end_at
			) ELSE 0 END AS conflict_count
		FROM booking AS b
		WHERE ` + where + `
		ORDER BY b.booking_id DESC
		LIMIT $` + fmt.Sprint(limitArg) + `
		OFFSET $` + fmt.Sprint(offsetArg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		err := rows.Scan(
			&b.ID,
			&b.StoreID,
			&b.ScriptID,
			&b.StatusID,
			&b.TargetMonth,
			&b.StartAt,
			&b.EndAt,
			&b.SlotID,
			&b.StoreRoomID,
			&b.DurationOverrideMinutes,
			&b.CreatedAt,
			&b.UpdatedAt,
			&b.ClientIDs,
			&b.Conflicts.HasConflict,
			&b.Conflicts.Count,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, total, nil
}

// IncompleteUpdate изменяемые поля черновика
type IncompleteUpdate struct {
	TargetMonth *time.Time
	ScriptID    *int64
	ClearScript bool
}

// UpdateIncomplete условно обновляет черновик (WHERE status=1); nil если нет
// строки в нужном статусе
func (r *BookingRepository) UpdateIncomplete(ctx context.Context, storeID, bookingID int64, upd IncompleteUpdate) (*model.Booking, error) {
	set := "updated_at = now()"
	args := []any{storeID, bookingID}
	if upd.TargetMonth != nil {
		args = append(args, *upd.TargetMonth)
		set += fmt.Sprintf(", target_month = $%d", len(args))
	}
	if upd.ClearScript {
		set += ", script_id = NULL"
	} else if upd.ScriptID != nil {
		args = append(args, *upd.ScriptID)
		set += fmt.Sprintf(", script_id = $%d", len(args))
	}

	query := `
		UPDATE booking AS b
		SET ` + set + `
		WHERE b.store_id = $1 AND b.booking_id = $2 AND b.booking_status_id = 1
		RETURNING b.booking_id, b.store_id, b.script_id, b.booking_status_id, b.target_month,
			b.start_at, b.end_at, b.slot_id, b.store_room_id, b.duration_override_minutes,
			b.created_at, b.updated_at,
			(
				SELECT coalesce(array_agg(bc.client_id ORDER BY bc.client_id), '{}')
				FROM booking_client AS bc
				WHERE bc.booking_id = b.booking_id
			)
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return b, nil
}

// ConfirmSchedule переводит черновик в scheduled, фиксируя слот, комнату и
// время; false если бронь уже не в статусе incomplete. end_at дополнительно
// пересчитывается триггером set_booking_end_at.
func (r *BookingRepository) ConfirmSchedule(ctx context.Context, storeID, bookingID, slotID, roomID int64, startAt, endAt time.Time) (bool, error) {
	query := `
		UPDATE booking
		SET booking_status_id = 2,
			target_month = NULL,
			slot_id = $3,
			store_room_id = $4,
			start_at = $5,
			end_at = $6,
			updated_at = now()
		WHERE store_id = $1 AND booking_id = $2 AND booking_status_id = 1
	`

	tag, err := r.db.Exec(ctx, query, storeID, bookingID, slotID, roomID, startAt, endAt)
	if err != nil {
		return false, fmt.Errorf("confirm booking: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateStatus условно переводит бронь из from в to; false если строка уже не
// в ожидаемом статусе
func (r *BookingRepository) UpdateStatus(ctx context.Context, storeID, bookingID int64, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE booking
		SET booking_status_id = $4, updated_at = now()
		WHERE store_id = $1 AND booking_id = $2 AND booking_status_id = $3
	`

	tag, err := r.db.Exec(ctx, query, storeID, bookingID, from, to)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Cancel переводит бронь в cancelled из любого статуса, не трогая остальные
// поля; false если брони нет
func (r *BookingRepository) Cancel(ctx context.Context, storeID, bookingID int64) (bool, error) {
	query := `
		UPDATE booking
		SET booking_status_id = 3, updated_at = now()
		WHERE store_id = $1 AND booking_id = $2
	`

	tag, err := r.db.Exec(ctx, query, storeID, bookingID)
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddClient привязывает клиента к брони; нарушение уникальности пары
// отдаётся вызывающему
func (r *BookingRepository) AddClient(ctx context.Context, bookingID, clientID int64) error {
	query := `INSERT INTO booking_client (booking_id, client_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, bookingID, clientID)
	return err
}

// RemoveClient отвязывает клиента; false если связи не было
func (r *BookingRepository) RemoveClient(ctx context.Context, bookingID, clientID int64) (bool, error) {
	query := `DELETE FROM booking_client WHERE booking_id = $1 AND client_id = $2`

	tag, err := r.db.Exec(ctx, query, bookingID, clientID)
	if err != nil {
		return false, fmt.Errorf("remove booking client: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CountClients считает клиентов брони
func (r *BookingRepository) CountClients(ctx context.Context, bookingID int64) (int, error) {
	query := `SELECT count(*) FROM booking_client WHERE booking_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, bookingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count booking clients: %w", err)
	}

	return count, nil
}

// ClientIDs получает id клиентов брони по возрастанию
func (r *BookingRepository) ClientIDs(ctx context.Context, bookingID int64) ([]int64, error) {
	query := `
		SELECT client_id
		FROM booking_client
		WHERE booking_id = $1
		ORDER BY client_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list booking clients: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list booking clients: %w", err)
	}

	return ids, nil
}

// RoomHasOverlap проверяет пересекается ли окно [start, end) с активными
// бронями комнаты
func (r *BookingRepository) RoomHasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM booking
			WHERE store_room_id = $1
			  AND booking_id <> $4
			  AND booking_status_id IN (2, 4)
			  AND start_at < $3
			  AND $2 < end_at
		)
	`

	var overlap bool
	if err := r.db.QueryRow(ctx, query, roomID, start, end, excludeBookingID).Scan(&overlap); err != nil {
		return false, fmt.Errorf("room has overlap: %w", err)
	}

	return overlap, nil
}

// OverlappingIDs получает id пересекающихся броней комнаты по возрастанию
func (r *BookingRepository) OverlappingIDs(ctx context.Context, roomID int64, start, end time.Time, excludeBookingID int64) ([]int64, error) {
	query := `
		SELECT booking_id
		FROM booking
		WHERE store_room_id = $1
		  AND booking_id <> $4
		  AND booking_status_id IN (2, 4)
		  AND start_at < $3
		  AND $2 < end_at
		ORDER BY booking_id
	`

	rows, err := r.db.Query(ctx, query, roomID, start, end, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}

	return ids, nil
}

// CountForScript считает брони, ссылающиеся на сценарий (во всех магазинах)
func (r *BookingRepository) CountForScript(ctx context.Context, scriptID int64) (int, error) {
	query := `SELECT count(*) FROM booking WHERE script_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, scriptID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings for script: %w", err)
	}

	return count, nil
}

// CountForStoreScript считает брони магазина, ссылающиеся на сценарий
func (r *BookingRepository) CountForStoreScript(ctx context.Context, storeID, scriptID int64) (int, error) {
	query := `SELECT count(*) FROM booking WHERE store_id = $1 AND script_id = $2`

	var count int
	if err := r.db.QueryRow(ctx, query, storeID, scriptID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings for store script: %w", err)
	}

	return count, nil
}
