package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DmRepository struct {
	db base.DB
}

func NewDmRepository(pool *pgxpool.Pool) *DmRepository {
	return &DmRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *DmRepository) WithTx(tx pgx.Tx) *DmRepository {
	return &DmRepository{db: tx}
}

// Exists проверяет существование ведущего
func (r *DmRepository) Exists(ctx context.Context, dmID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM dm WHERE dm_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, dmID).Scan(&exists); err != nil {
		return false, fmt.Errorf("dm exists: %w", err)
	}

	return exists, nil
}

// IsStoreMember проверяет членство ведущего в магазине
func (r *DmRepository) IsStoreMember(ctx context.Context, dmID, storeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM dm_store_membership
			WHERE dm_id = $1 AND store_id = $2
		)
	`

	var member bool
	if err := r.db.QueryRow(ctx, query, dmID, storeID).Scan(&member); err != nil {
		return false, fmt.Errorf("dm store membership: %w", err)
	}

	return member, nil
}
