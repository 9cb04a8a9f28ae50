package postgres

import (
	"context"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
	"github.com/ArowuTest/eventlottery-backend/pkg/postgres"
)

var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

const ledgerColumns = `event_id, invited, waiting, cancelled, all_entrants, created_at, updated_at`

// unionInvitedSQL appends new IDs to invited and all_entrants in one statement, keeping
// first-seen order and dropping duplicates.
const unionInvitedSQL = `
INSERT INTO notification_lists AS nl (event_id, invited, all_entrants)
VALUES ($1, $2::text[], $2::text[])
ON CONFLICT (event_id) DO UPDATE SET
    invited = ARRAY(
        SELECT x FROM unnest(nl.invited || EXCLUDED.invited) WITH ORDINALITY AS t(x, n)
         GROUP BY x ORDER BY min(n)),
    all_entrants = ARRAY(
        SELECT x FROM unnest(nl.all_entrants || EXCLUDED.all_entrants) WITH ORDINALITY AS t(x, n)
         GROUP BY x ORDER BY min(n)),
    updated_at = now()
RETURNING ` + ledgerColumns

type LedgerRepository struct {
	db *postgres.DB
}

func NewLedgerRepository(db *postgres.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) FindByEventID(ctx context.Context, eventID string) (*models.NotificationList, error) {
	var l models.NotificationList
	err := r.db.Pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM notification_lists WHERE event_id = $1`, eventID).
		Scan(&l.EventID, &l.Invited, &l.Waiting, &l.Cancelled, &l.All, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

func (r *LedgerRepository) UnionInvited(ctx context.Context, eventID string, entrantIDs []string) (*models.NotificationList, error) {
	ids := utils.UniqueStrings(entrantIDs)
	if ids == nil {
		ids = []string{}
	}
	var l models.NotificationList
	err := r.db.Pool.QueryRow(ctx, unionInvitedSQL, eventID, ids).
		Scan(&l.EventID, &l.Invited, &l.Waiting, &l.Cancelled, &l.All, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}
