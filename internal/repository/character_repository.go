package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CharacterRepository struct {
	db base.DB
}

func NewCharacterRepository(pool *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *CharacterRepository) WithTx(tx pgx.Tx) *CharacterRepository {
	return &CharacterRepository{db: tx}
}

const characterColumns = `character_id, script_id, character_name, is_dm, is_active, created_at, updated_at`

func scanCharacter(row pgx.Row) (*model.Character, error) {
	var ch model.Character
	err := row.Scan(
		&ch.ID,
		&ch.ScriptID,
		&ch.Name,
		&ch.IsDM,
		&ch.IsActive,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// List получает страницу персонажей сценария, свежие изменения первыми
func (r *CharacterRepository) List(ctx context.Context, scriptID int64, limit, offset int) ([]model.Character, int, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM script_character
		WHERE script_id = $1
		ORDER BY updated_at DESC, character_id DESC
		LIMIT $2
		OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, scriptID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	var characters []model.Character
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan character: %w", err)
		}
		characters = append(characters, *ch)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list characters: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT count(*) FROM script_character WHERE script_id = $1`, scriptID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count characters: %w", err)
	}

	return characters, total, nil
}

// Get получает персонажа сценария; nil если не найден
func (r *CharacterRepository) Get(ctx context.Context, scriptID, characterID int64) (*model.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM script_character
		WHERE script_id = $1 AND character_id = $2
	`

	ch, err := scanCharacter(r.db.QueryRow(ctx, query, scriptID, characterID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get character: %w", err)
	}

	return ch, nil
}

// GetByID получает персонажа без привязки к сценарию; nil если не найден
func (r *CharacterRepository) GetByID(ctx context.Context, characterID int64) (*model.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM script_character
		WHERE character_id = $1
	`

	ch, err := scanCharacter(r.db.QueryRow(ctx, query, characterID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get character by id: %w", err)
	}

	return ch, nil
}

// Create создаёт персонажа; нарушение уникальности имени отдаётся вызывающему
func (r *CharacterRepository) Create(ctx context.Context, scriptID int64, name string, isDM, isActive bool) (*model.Character, error) {
	query := `
		INSERT INTO script_character (script_id, character_name, is_dm, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + characterColumns

	return scanCharacter(r.db.QueryRow(ctx, query, scriptID, name, isDM, isActive))
}

// Update частично обновляет персонажа; nil если не найден
func (r *CharacterRepository) Update(ctx context.Context, scriptID, characterID int64, name *string, isDM, isActive *bool) (*model.Character, error) {
	set := "updated_at = now()"
	args := []any{scriptID, characterID}
	if name != nil {
		args = append(args, *name)
		set += fmt.Sprintf(", character_name = $%d", len(args))
	}
	if isDM != nil {
		args = append(args, *isDM)
		set += fmt.Sprintf(", is_dm = $%d", len(args))
	}
	if isActive != nil {
		args = append(args, *isActive)
		set += fmt.Sprintf(", is_active = $%d", len(args))
	}

	query := `
		UPDATE script_character
		SET ` + set + `
		WHERE script_id = $1 AND character_id = $2
		RETURNING ` + characterColumns

	ch, err := scanCharacter(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return ch, nil
}

// Delete удаляет персонажа сценария; false если не найден
func (r *CharacterRepository) Delete(ctx context.Context, scriptID, characterID int64) (bool, error) {
	query := `DELETE FROM script_character WHERE script_id = $1 AND character_id = $2`

	tag, err := r.db.Exec(ctx, query, scriptID, characterID)
	if err != nil {
		return false, fmt.Errorf("delete character: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteByScript удаляет всех персонажей сценария
func (r *CharacterRepository) DeleteByScript(ctx context.Context, scriptID int64) error {
	query := `DELETE FROM script_character WHERE script_id = $1`

	if _, err := r.db.Exec(ctx, query, scriptID); err != nil {
		return fmt.Errorf("delete characters by script: %w", err)
	}

	return nil
}

// ActiveNonDMIDs получает id активных не-DM персонажей сценария по возрастанию
func (r *CharacterRepository) ActiveNonDMIDs(ctx context.Context, scriptID int64) ([]int64, error) {
	query := `
		SELECT character_id
		FROM script_character
		WHERE script_id = $1 AND is_active AND NOT is_dm
		ORDER BY character_id
	`

	rows, err := r.db.Query(ctx, query, scriptID)
	if err != nil {
		return nil, fmt.Errorf("list active non-dm characters: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan character id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active non-dm characters: %w", err)
	}

	return ids, nil
}
