package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/pkg/postgres"
)

var _ repositories.EventRepository = (*EventRepository)(nil)

const selectEvent = `
SELECT e.id, e.organizer_id, e.name, e.capacity, e.entrants_to_draw, e.selection_date,
       e.created_at, e.updated_at,
       coalesce(array_agg(w.entrant_id ORDER BY w.joined_at, w.entrant_id)
                FILTER (WHERE w.entrant_id IS NOT NULL), '{}') AS waitlist
  FROM events e
  LEFT JOIN waitlist_entries w ON w.event_id = e.id`

type EventRepository struct {
	db *postgres.DB
}

func NewEventRepository(db *postgres.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	if event.Waitlist == nil {
		event.Waitlist = []string{}
	}
	var selectionDate *time.Time
	if !event.SelectionDate.IsZero() {
		selectionDate = &event.SelectionDate
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, organizer_id, name, capacity, entrants_to_draw, selection_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.OrganizerID, event.Name, event.Capacity, event.EntrantsToDraw, selectionDate,
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	for _, entrantID := range event.Waitlist {
		if _, err := tx.Exec(ctx, `
			INSERT INTO waitlist_entries (event_id, entrant_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, event.ID, entrantID); err != nil {
			return translateError(err)
		}
	}
	return translateError(tx.Commit(ctx))
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	row := r.db.Pool.QueryRow(ctx, selectEvent+` WHERE e.id = $1 GROUP BY e.id`, id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, translateError(err)
	}
	return event, nil
}

func (r *EventRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Event, error) {
	rows, err := r.db.Pool.Query(ctx, selectEvent+`
		GROUP BY e.id ORDER BY e.created_at DESC, e.id LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, translateError(err)
		}
		events = append(events, event)
	}
	return events, translateError(rows.Err())
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		event         models.Event
		selectionDate *time.Time
	)
	err := row.Scan(&event.ID, &event.OrganizerID, &event.Name, &event.Capacity, &event.EntrantsToDraw,
		&selectionDate, &event.CreatedAt, &event.UpdatedAt, &event.Waitlist)
	if err != nil {
		return nil, err
	}
	if selectionDate != nil {
		event.SelectionDate = *selectionDate
	}
	return &event, nil
}
