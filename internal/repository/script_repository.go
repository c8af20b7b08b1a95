package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScriptRepository struct {
	db base.DB
}

func NewScriptRepository(pool *pgxpool.Pool) *ScriptRepository {
	return &ScriptRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *ScriptRepository) WithTx(tx pgx.Tx) *ScriptRepository {
	return &ScriptRepository{db: tx}
}

// GetScript получает сценарий по id; nil если не найден
func (r *ScriptRepository) GetScript(ctx context.Context, scriptID int64) (*model.Script, error) {
	query := `
		SELECT script_id, name, estimated_minutes, created_at, updated_at
		FROM script
		WHERE script_id = $1
	`

	var script model.Script
	err := r.db.QueryRow(ctx, query, scriptID).Scan(
		&script.ID,
		&script.Name,
		&script.EstimatedMinutes,
		&script.CreatedAt,
		&script.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get script: %w", err)
	}

	return &script, nil
}

// ScriptExists проверяет существование сценария
func (r *ScriptRepository) ScriptExists(ctx context.Context, scriptID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM script WHERE script_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, scriptID).Scan(&exists); err != nil {
		return false, fmt.Errorf("script exists: %w", err)
	}

	return exists, nil
}

// CreateScript создаёт сценарий; нарушение уникальности имени отдаётся вызывающему
func (r *ScriptRepository) CreateScript(ctx context.Context, name string, estimatedMinutes int32) (*model.Script, error) {
	query := `
		INSERT INTO script (name, estimated_minutes)
		VALUES ($1, $2)
		RETURNING script_id, name, estimated_minutes, created_at, updated_at
	`

	var script model.Script
	err := r.db.QueryRow(ctx, query, name, estimatedMinutes).Scan(
		&script.ID,
		&script.Name,
		&script.EstimatedMinutes,
		&script.CreatedAt,
		&script.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &script, nil
}

// DeleteScript удаляет сценарий; false если не найден
func (r *ScriptRepository) DeleteScript(ctx context.Context, scriptID int64) (bool, error) {
	query := `DELETE FROM script WHERE script_id = $1`

	tag, err := r.db.Exec(ctx, query, scriptID)
	if err != nil {
		return false, fmt.Errorf("delete script: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

const storeScriptColumns = `ss.store_id, ss.script_id, ss.is_active, ss.created_at, ss.updated_at, s.name, s.estimated_minutes`

func scanStoreScript(row pgx.Row) (*model.StoreScript, error) {
	var ss model.StoreScript
	err := row.Scan(
		&ss.StoreID,
		&ss.ScriptID,
		&ss.IsActive,
		&ss.CreatedAt,
		&ss.UpdatedAt,
		&ss.Name,
		&ss.EstimatedMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &ss, nil
}

// ListStoreScripts получает страницу активаций сценариев магазина
func (r *ScriptRepository) ListStoreScripts(ctx context.Context, storeID int64, limit, offset int) ([]model.StoreScript, int, error) {
	query := `
		SELECT ` + storeScriptColumns + `
		FROM store_script AS ss
		JOIN script AS s ON s.script_id = ss.script_id
		WHERE ss.store_id = $1
		ORDER BY ss.script_id
		LIMIT $2
		OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list store scripts: %w", err)
	}
	defer rows.Close()

	var items []model.StoreScript
	for rows.Next() {
		ss, err := scanStoreScript(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan store script: %w", err)
		}
		items = append(items, *ss)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list store scripts: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM store_script WHERE store_id = $1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count store scripts: %w", err)
	}

	return items, total, nil
}

// GetStoreScript получает активацию сценария в магазине; nil если её нет
func (r *ScriptRepository) GetStoreScript(ctx context.Context, storeID, scriptID int64) (*model.StoreScript, error) {
	query := `
		SELECT ` + storeScriptColumns + `
		FROM store_script AS ss
		JOIN script AS s ON s.script_id = ss.script_id
		WHERE ss.store_id = $1 AND ss.script_id = $2
	`

	ss, err := scanStoreScript(r.db.QueryRow(ctx, query, storeID, scriptID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store script: %w", err)
	}

	return ss, nil
}

// CreateStoreScript создаёт активацию; нарушение уникальности отдаётся вызывающему
func (r *ScriptRepository) CreateStoreScript(ctx context.Context, storeID, scriptID int64, isActive bool) error {
	query := `
		INSERT INTO store_script (store_id, script_id, is_active)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, storeID, scriptID, isActive)
	return err
}

// UpdateStoreScript меняет флаг активности; false если активации нет
func (r *ScriptRepository) UpdateStoreScript(ctx context.Context, storeID, scriptID int64, isActive bool) (bool, error) {
	query := `
		UPDATE store_script
		SET is_active = $3, updated_at = now()
		WHERE store_id = $1 AND script_id = $2
	`

	tag, err := r.db.Exec(ctx, query, storeID, scriptID, isActive)
	if err != nil {
		return false, fmt.Errorf("update store script: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteStoreScript удаляет активацию; false если её нет
func (r *ScriptRepository) DeleteStoreScript(ctx context.Context, storeID, scriptID int64) (bool, error) {
	query := `DELETE FROM store_script WHERE store_id = $1 AND script_id = $2`

	tag, err := r.db.Exec(ctx, query, storeID, scriptID)
	if err != nil {
		return false, fmt.Errorf("delete store script: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ActivationActive проверяет активна ли связка сценарий+магазин
func (r *ScriptRepository) ActivationActive(ctx context.Context, storeID, scriptID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM store_script
			WHERE store_id = $1 AND script_id = $2 AND is_active
		)
	`

	var active bool
	if err := r.db.QueryRow(ctx, query, storeID, scriptID).Scan(&active); err != nil {
		return false, fmt.Errorf("store script active: %w", err)
	}

	return active, nil
}

// CountActiveActivations считает магазины, где сценарий всё ещё активен
func (r *ScriptRepository) CountActiveActivations(ctx context.Context, scriptID int64) (int, error) {
	query := `SELECT count(*) FROM store_script WHERE script_id = $1 AND is_active`

	var count int
	if err := r.db.QueryRow(ctx, query, scriptID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active activations: %w", err)
	}

	return count, nil
}

// DeleteActivations удаляет все активации сценария
func (r *ScriptRepository) DeleteActivations(ctx context.Context, scriptID int64) error {
	query := `DELETE FROM store_script WHERE script_id = $1`

	if _, err := r.db.Exec(ctx, query, scriptID); err != nil {
		return fmt.Errorf("delete activations: %w", err)
	}

	return nil
}
