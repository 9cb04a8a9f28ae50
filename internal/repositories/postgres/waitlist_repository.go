package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/pkg/postgres"
)

var _ repositories.WaitlistRepository = (*WaitlistRepository)(nil)

// WaitlistRepository stores waitlists as rows keyed by (event_id, entrant_id).
type WaitlistRepository struct {
	db *postgres.DB
}

func NewWaitlistRepository(db *postgres.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

// AddToWaitlist locks the event row so the capacity check and the insert see the same count.
func (r *WaitlistRepository) AddToWaitlist(ctx context.Context, eventID, entrantID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	if err := tx.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity); err != nil {
		return translateError(err)
	}
	if capacity > 0 {
		var (
			size    int
			present bool
		)
		err := tx.QueryRow(ctx, `
			SELECT count(*), coalesce(bool_or(entrant_id = $2), false)
			  FROM waitlist_entries WHERE event_id = $1`, eventID, entrantID).Scan(&size, &present)
		if err != nil {
			return translateError(err)
		}
		if !present && size >= capacity {
			return repositories.ErrWaitlistFull
		}
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO waitlist_entries (event_id, entrant_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, eventID, entrantID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() > 0 {
		if _, err := tx.Exec(ctx, `UPDATE events SET updated_at = now() WHERE id = $1`, eventID); err != nil {
			return translateError(err)
		}
	}
	return translateError(tx.Commit(ctx))
}

func (r *WaitlistRepository) RemoveFromWaitlist(ctx context.Context, eventID, entrantID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM waitlist_entries WHERE event_id = $1 AND entrant_id = $2`, eventID, entrantID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return r.ensureEvent(ctx, eventID)
}

func (r *WaitlistRepository) GetWaitlist(ctx context.Context, eventID string) ([]string, error) {
	if err := r.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT entrant_id FROM waitlist_entries
		 WHERE event_id = $1 ORDER BY joined_at, entrant_id`, eventID)
	if err != nil {
		return nil, translateError(err)
	}
	waitlist, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError(err)
	}
	if waitlist == nil {
		waitlist = []string{}
	}
	return waitlist, nil
}

func (r *WaitlistRepository) ensureEvent(ctx context.Context, eventID string) error {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
		return translateError(err)
	}
	if !exists {
		return repositories.ErrNotFound
	}
	return nil
}
