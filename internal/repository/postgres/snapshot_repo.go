// Package postgres persists the AppState as a jsonb document and uses
// LISTEN/NOTIFY to push writes from other processes back into the store,
// giving the remote variant last-write-wins sync across devices.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	snapshotID      = "appstate"
	notifyChannel   = "moneta_snapshot"
	schemaStatement = `CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		document   JSONB NOT NULL,
		origin     TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
)

// SnapshotRepository stores the AppState document in a single-row table.
// Each process tags its writes with an origin id so the subscription can
// ignore notifications for its own saves.
type SnapshotRepository struct {
	pool   *pgxpool.Pool
	origin string
}

// NewSnapshotRepository ensures the snapshots table exists.
func NewSnapshotRepository(ctx context.Context, pool *pgxpool.Pool) (*SnapshotRepository, error) {
	if _, err := pool.Exec(ctx, schemaStatement); err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &SnapshotRepository{
		pool:   pool,
		origin: uuid.New().String(),
	}, nil
}

// Load reads and decodes the stored document.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.AppState, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM snapshots WHERE id = $1`, snapshotID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Save upserts the document and notifies other listening processes.
func (r *SnapshotRepository) Save(ctx context.Context, state *domain.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO snapshots (id, document, origin, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET document = excluded.document, origin = excluded.origin, updated_at = now()`,
		snapshotID, data, r.origin); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, r.origin); err != nil {
		return fmt.Errorf("notify snapshot change: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Subscribe listens for snapshot writes from other processes and invokes
// the callback with the reloaded state. The returned function cancels the
// subscription.
func (r *SnapshotRepository) Subscribe(ctx context.Context, onExternalUpdate func(*domain.AppState)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	conn, err := r.pool.Acquire(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(subCtx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("listen on %s: %w", notifyChannel, err)
	}

	go func() {
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				if subCtx.Err() == nil {
					log.Error().Err(err).Msg("Snapshot subscription ended")
				}
				return
			}

			if notification.Payload == r.origin {
				// Our own write echoed back.
				continue
			}

			state, err := r.Load(subCtx)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to load externally updated snapshot")
				continue
			}

			log.Debug().Str("origin", notification.Payload).Msg("Received external snapshot update")
			onExternalUpdate(state)
		}
	}()

	return cancel, nil
}
