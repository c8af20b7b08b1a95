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

type SlotRepository struct {
	db base.DB
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *SlotRepository) WithTx(tx pgx.Tx) *SlotRepository {
	return &SlotRepository{db: tx}
}

const slotColumns = `slot_id, store_id, start_at, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.StoreID,
		&slot.StartAt,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// List получает страницу слотов магазина по возрастанию времени начала
func (r *SlotRepository) List(ctx context.Context, storeID int64, limit, offset int) ([]model.Slot, int, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slot
		WHERE store_id = $1
		ORDER BY start_at, slot_id
		LIMIT $2
		OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list slots: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM slot WHERE store_id = $1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count slots: %w", err)
	}

	return slots, total, nil
}

// Create создаёт слот; нарушение уникальности (store, start_at) отдаётся вызывающему
func (r *SlotRepository) Create(ctx context.Context, storeID int64, startAt time.Time) (*model.Slot, error) {
	query := `
		INSERT INTO slot (store_id, start_at)
		VALUES ($1, $2)
		RETURNING ` + slotColumns

	return scanSlot(r.db.QueryRow(ctx, query, storeID, startAt))
}

// Update меняет время начала слота; nil если слот не найден
func (r *SlotRepository) Update(ctx context.Context, storeID, slotID int64, startAt time.Time) (*model.Slot, error) {
	query := `
		UPDATE slot
		SET start_at = $3, updated_at = now()
		WHERE store_id = $1 AND slot_id = $2
		RETURNING ` + slotColumns

	slot, err := scanSlot(r.db.QueryRow(ctx, query, storeID, slotID, startAt))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return slot, nil
}

// Delete удаляет слот; false если не найден
func (r *SlotRepository) Delete(ctx context.Context, storeID, slotID int64) (bool, error) {
	query := `DELETE FROM slot WHERE store_id = $1 AND slot_id = $2`

	tag, err := r.db.Exec(ctx, query, storeID, slotID)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// HasBookings проверяет ссылаются ли брони на слот
func (r *SlotRepository) HasBookings(ctx context.Context, slotID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM booking WHERE slot_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("slot has bookings: %w", err)
	}

	return exists, nil
}

// GetOrCreate возвращает слот (store, start_at), создавая его при отсутствии.
// Гонка двух вставок гасится уникальным ограничением uq_slot_store_id_start_at.
func (r *SlotRepository) GetOrCreate(ctx context.Context, storeID int64, startAt time.Time) (int64, error) {
	query := `
		INSERT INTO slot (store_id, start_at)
		VALUES ($1, $2)
		ON CONFLICT (store_id, start_at) DO UPDATE SET updated_at = now()
		RETURNING slot_id
	`

	var slotID int64
	if err := r.db.QueryRow(ctx, query, storeID, startAt).Scan(&slotID); err != nil {
		return 0, fmt.Errorf("get or create slot: %w", err)
	}

	return slotID, nil
}
