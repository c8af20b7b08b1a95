package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CharacterClientMatchRepository struct {
	db base.DB
}

func NewCharacterClientMatchRepository(pool *pgxpool.Pool) *CharacterClientMatchRepository {
	return &CharacterClientMatchRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *CharacterClientMatchRepository) WithTx(tx pgx.Tx) *CharacterClientMatchRepository {
	return &CharacterClientMatchRepository{db: tx}
}

const clientMatchColumns = `character_client_match_id, booking_id, character_id, client_id, created_at, updated_at`

func scanClientMatch(row pgx.Row) (*model.CharacterClientMatch, error) {
	var m model.CharacterClientMatch
	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.CharacterID,
		&m.ClientID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create создаёт назначение клиента на роль; нарушение уникальности
// отдаётся вызывающему
func (r *CharacterClientMatchRepository) Create(ctx context.Context, bookingID, characterID, clientID int64) (*model.CharacterClientMatch, error) {
	query := `
		INSERT INTO character_client_match (booking_id, character_id, client_id)
		VALUES ($1, $2, $3)
		RETURNING ` + clientMatchColumns

	return scanClientMatch(r.db.QueryRow(ctx, query, bookingID, characterID, clientID))
}

// Get получает назначение в рамках брони; nil если не найдено
func (r *CharacterClientMatchRepository) Get(ctx context.Context, bookingID, matchID int64) (*model.CharacterClientMatch, error) {
	query := `
		SELECT ` + clientMatchColumns + `
		FROM character_client_match
		WHERE booking_id = $1 AND character_client_match_id = $2
	`

	m, err := scanClientMatch(r.db.QueryRow(ctx, query, bookingID, matchID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get character client match: %w", err)
	}

	return m, nil
}

// Update частично обновляет назначение; nil если пары (booking, match) нет
func (r *CharacterClientMatchRepository) Update(ctx context.Context, bookingID, matchID int64, characterID, clientID *int64) (*model.CharacterClientMatch, error) {
	set := "updated_at = now()"
	args := []any{bookingID, matchID}
	if characterID != nil {
		args = append(args, *characterID)
		set += fmt.Sprintf(", character_id = $%d", len(args))
	}
	if clientID != nil {
		args = append(args, *clientID)
		set += fmt.Sprintf(", client_id = $%d", len(args))
	}

	query := `
		UPDATE character_client_match
		SET ` + set + `
		WHERE booking_id = $1 AND character_client_match_id = $2
		RETURNING ` + clientMatchColumns

	m, err := scanClientMatch(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return m, nil
}

// Delete удаляет назначение; false если не найдено
func (r *CharacterClientMatchRepository) Delete(ctx context.Context, bookingID, matchID int64) (bool, error) {
	query := `DELETE FROM character_client_match WHERE booking_id = $1 AND character_client_match_id = $2`

	tag, err := r.db.Exec(ctx, query, bookingID, matchID)
	if err != nil {
		return false, fmt.Errorf("delete character client match: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByBooking получает все назначения клиентов брони
func (r *CharacterClientMatchRepository) ListByBooking(ctx context.Context, bookingID int64) ([]model.CharacterClientMatch, error) {
	query := `
		SELECT ` + clientMatchColumns + `
		FROM character_client_match
		WHERE booking_id = $1
		ORDER BY character_client_match_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list character client matches: %w", err)
	}
	defer rows.Close()

	var matches []model.CharacterClientMatch
	for rows.Next() {
		m, err := scanClientMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character client match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list character client matches: %w", err)
	}

	return matches, nil
}

type CharacterDmMatchRepository struct {
	db base.DB
}

func NewCharacterDmMatchRepository(pool *pgxpool.Pool) *CharacterDmMatchRepository {
	return &CharacterDmMatchRepository{db: pool}
}

// WithTx возвращает копию репозитория, привязанную к транзакции
func (r *CharacterDmMatchRepository) WithTx(tx pgx.Tx) *CharacterDmMatchRepository {
	return &CharacterDmMatchRepository{db: tx}
}

const dmMatchColumns = `character_dm_match_id, booking_id, dm_id, character_id, created_at, updated_at`

func scanDmMatch(row pgx.Row) (*model.CharacterDmMatch, error) {
	var m model.CharacterDmMatch
	var characterID *int64
	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.DmID,
		&characterID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if characterID != nil {
		m.Assignment = model.AssignedCharacter(*characterID)
	} else {
		m.Assignment = model.UnassignedHold()
	}
	return &m, nil
}

func dmMatchCharacterArg(a model.DmAssignment) *int64 {
	if id, ok := a.CharacterID(); ok {
		return &id
	}
	return nil
}

// Create создаёт назначение ведущего; нарушение частичных уникальных
// индексов отдаётся вызывающему
func (r *CharacterDmMatchRepository) Create(ctx context.Context, bookingID, dmID int64, assignment model.DmAssignment) (*model.CharacterDmMatch, error) {
	query := `
		INSERT INTO character_dm_match (booking_id, dm_id, character_id)
		VALUES ($1, $2, $3)
		RETURNING ` + dmMatchColumns

	return scanDmMatch(r.db.QueryRow(ctx, query, bookingID, dmID, dmMatchCharacterArg(assignment)))
}

// Get получает назначение ведущего в рамках брони; nil если не найдено
func (r *CharacterDmMatchRepository) Get(ctx context.Context, bookingID, matchID int64) (*model.CharacterDmMatch, error) {
	query := `
		SELECT ` + dmMatchColumns + `
		FROM character_dm_match
		WHERE booking_id = $1 AND character_dm_match_id = $2
	`

	m, err := scanDmMatch(r.db.QueryRow(ctx, query, bookingID, matchID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get character dm match: %w", err)
	}

	return m, nil
}

// DmMatchUpdate изменяемые поля назначения ведущего
type DmMatchUpdate struct {
	DmID       *int64
	Assignment *model.DmAssignment
}

// Update частично обновляет назначение; nil если пары (booking, match) нет
func (r *CharacterDmMatchRepository) Update(ctx context.Context, bookingID, matchID int64, upd DmMatchUpdate) (*model.CharacterDmMatch, error) {
	set := "updated_at = now()"
	args := []any{bookingID, matchID}
	if upd.DmID != nil {
		args = append(args, *upd.DmID)
		set += fmt.Sprintf(", dm_id = $%d", len(args))
	}
	if upd.Assignment != nil {
		args = append(args, dmMatchCharacterArg(*upd.Assignment))
		set += fmt.Sprintf(", character_id = $%d", len(args))
	}

	query := `
		UPDATE character_dm_match
		SET ` + set + `
		WHERE booking_id = $1 AND character_dm_match_id = $2
		RETURNING ` + dmMatchColumns

	m, err := scanDmMatch(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return m, nil
}

// Delete удаляет назначение ведущего; false если не найдено
func (r *CharacterDmMatchRepository) Delete(ctx context.Context, bookingID, matchID int64) (bool, error) {
	query := `DELETE FROM character_dm_match WHERE booking_id = $1 AND character_dm_match_id = $2`

	tag, err := r.db.Exec(ctx, query, bookingID, matchID)
	if err != nil {
		return false, fmt.Errorf("delete character dm match: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByBooking получает все назначения ведущих брони
func (r *CharacterDmMatchRepository) ListByBooking(ctx context.Context, bookingID int64) ([]model.CharacterDmMatch, error) {
	query := `
		SELECT ` + dmMatchColumns + `
		FROM character_dm_match
		WHERE booking_id = $1
		ORDER BY character_dm_match_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list character dm matches: %w", err)
	}
	defer rows.Close()

	var matches []model.CharacterDmMatch
	for rows.Next() {
		m, err := scanDmMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character dm match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list character dm matches: %w", err)
	}

	return matches, nil
}
