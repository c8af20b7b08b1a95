package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	db base.DB
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *ClientRepository) WithTx(tx pgx.Tx) *ClientRepository {
	return &ClientRepository{db: tx}
}

// Exists проверяет существование клиента
func (r *ClientRepository) Exists(ctx context.Context, clientID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM client WHERE client_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("client exists: %w", err)
	}

	return exists, nil
}

// CountExisting считает сколько из переданных id действительно существуют
func (r *ClientRepository) CountExisting(ctx context.Context, clientIDs []int64) (int, error) {
	query := `SELECT count(*) FROM client WHERE client_id = ANY($1)`

	var count int
	if err := r.db.QueryRow(ctx, query, clientIDs).Scan(&count); err != nil {
		return 0, fmt.Errorf("count existing clients: %w", err)
	}

	return count, nil
}
