package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db base.DB
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *RoomRepository) WithTx(tx pgx.Tx) *RoomRepository {
	return &RoomRepository{db: tx}
}

const roomColumns = `store_room_id, store_id, name, is_active, created_at, updated_at`

func scanRoom(row pgx.Row) (*model.Room, error) {
	var room model.Room
	err := row.Scan(
		&room.ID,
		&room.StoreID,
		&room.Name,
		&room.IsActive,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List получает страницу комнат магазина и общее количество
func (r *RoomRepository) List(ctx context.Context, storeID int64, limit, offset int) ([]model.Room, int, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM store_room
		WHERE store_id = $1
		ORDER BY store_room_id
		LIMIT $2
		OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM store_room WHERE store_id = $1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	return rooms, total, nil
}

// ListActive получает активные комнаты магазина по возрастанию id
func (r *RoomRepository) ListActive(ctx context.Context, storeID int64) ([]model.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM store_room
		WHERE store_id = $1 AND is_active
		ORDER BY store_room_id
	`

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list active rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active rooms: %w", err)
	}

	return rooms, nil
}

// GetActive получает активную комнату магазина по id
func (r *RoomRepository) GetActive(ctx context.Context, storeID, roomID int64) (*model.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM store_room
		WHERE store_id = $1 AND store_room_id = $2 AND is_active
	`

	room, err := scanRoom(r.db.QueryRow(ctx, query, storeID, roomID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active room: %w", err)
	}

	return room, nil
}

// Create создаёт комнату; нарушение уникальности имени отдаётся вызывающему
func (r *RoomRepository) Create(ctx context.Context, storeID int64, name string) (*model.Room, error) {
	query := `
		INSERT INTO store_room (store_id, name)
		VALUES ($1, $2)
		RETURNING ` + roomColumns

	return scanRoom(r.db.QueryRow(ctx, query, storeID, name))
}

// Update частично обновляет комнату; nil если комната не найдена
func (r *RoomRepository) Update(ctx context.Context, storeID, roomID int64, name *string, isActive *bool) (*model.Room, error) {
	set := "updated_at = now()"
	args := []any{storeID, roomID}
	if name != nil {
		args = append(args, *name)
		set += fmt.Sprintf(", name = $%d", len(args))
	}
	if isActive != nil {
		args = append(args, *isActive)
		set += fmt.Sprintf(", is_active = $%d", len(args))
	}

	query := `
		UPDATE store_room
		SET ` + set + `
		WHERE store_id = $1 AND store_room_id = $2
		RETURNING ` + roomColumns

	room, err := scanRoom(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return room, nil
}

// Delete удаляет комнату; false если комната не найдена
func (r *RoomRepository) Delete(ctx context.Context, storeID, roomID int64) (bool, error) {
	query := `DELETE FROM store_room WHERE store_id = $1 AND store_room_id = $2`

	tag, err := r.db.Exec(ctx, query, storeID, roomID)
	if err != nil {
		return false, fmt.Errorf("delete room: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// HasBookings проверяет ссылаются ли брони на комнату
func (r *RoomRepository) HasBookings(ctx context.Context, roomID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM booking WHERE store_room_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&exists); err != nil {
		return false, fmt.Errorf("room has bookings: %w", err)
	}

	return exists, nil
}
