package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StoreRepository struct {
	db base.DB
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую в транзакции
func (r *StoreRepository) WithTx(tx pgx.Tx) *StoreRepository {
	return &StoreRepository{db: tx}
}

// Exists проверяет существование магазина
func (r *StoreRepository) Exists(ctx context.Context, storeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM store WHERE store_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, storeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("store exists: %w", err)
	}

	return exists, nil
}
