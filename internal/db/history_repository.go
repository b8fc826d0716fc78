package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Flarenzy/subnetcalc/internal/domain"
)

type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Insert(ctx context.Context, sessionID domain.SessionID, input domain.RecordInput) (domain.HistoryEntry, error) {
	sid, err := parseSessionID(sessionID)
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	id := uuid.New()
	var createdAt time.Time
	err = r.pool.QueryRow(ctx,
		`INSERT INTO calculation_history (id, session_id, kind, input, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		id.String(), sid.String(), input.Kind, input.Input, []byte(input.Result),
	).Scan(&createdAt)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("insert history entry: %w", err)
	}

	return domain.HistoryEntry{
		ID:        domain.HistoryEntryID(id.String()),
		SessionID: sessionID,
		Kind:      input.Kind,
		Input:     input.Input,
		Result:    input.Result,
		CreatedAt: createdAt,
	}, nil
}

func (r *HistoryRepository) ListBySession(ctx context.Context, sessionID domain.SessionID, limit int) ([]domain.HistoryEntry, error) {
	sid, err := parseSessionID(sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, kind, input, result, created_at
		 FROM calculation_history
		 WHERE session_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2`,
		sid.String(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			id        string
			kind      string
			input     string
			result    []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &kind, &input, &result, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, domain.HistoryEntry{
			ID:        domain.HistoryEntryID(id),
			SessionID: sessionID,
			Kind:      kind,
			Input:     input,
			Result:    json.RawMessage(result),
			CreatedAt: createdAt,
		})
	}

	return out, rows.Err()
}

func (r *HistoryRepository) CountBySession(ctx context.Context, sessionID domain.SessionID) (int64, error) {
	sid, err := parseSessionID(sessionID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.pool.QueryRow(ctx,
		`SELECT count(*) FROM calculation_history WHERE session_id = $1`,
		sid.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}

	return count, nil
}

func (r *HistoryRepository) DeleteBySession(ctx context.Context, sessionID domain.SessionID) (int64, error) {
	sid, err := parseSessionID(sessionID)
	if err != nil {
		return 0, err
	}

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM calculation_history WHERE session_id = $1`,
		sid.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}

	return tag.RowsAffected(), nil
}

func parseSessionID(id domain.SessionID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: invalid session id", domain.ErrInvalidInput)
	}
	return parsed, nil
}
