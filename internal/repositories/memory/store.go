// Package memory keeps events, waitlists, ledgers and notifications in process memory.
// Every mutation runs under one lock, which gives the same atomic set-union semantics
// the durable backends provide. Used by tests and by the "memory" storage driver.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

var (
	_ repositories.EventRepository        = (*EventRepository)(nil)
	_ repositories.WaitlistRepository     = (*WaitlistRepository)(nil)
	_ repositories.LedgerRepository       = (*LedgerRepository)(nil)
	_ repositories.NotificationRepository = (*NotificationRepository)(nil)
)

// Store holds all in-memory state.
type Store struct {
	mu            sync.RWMutex
	events        map[string]*models.Event
	ledgers       map[string]*models.NotificationList
	notifications []*models.Notification
	nextID        int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		events:  make(map[string]*models.Event),
		ledgers: make(map[string]*models.NotificationList),
	}
}

// Events returns the event repository view of the store.
func (s *Store) Events() *EventRepository { return &EventRepository{s} }

// Waitlists returns the waitlist repository view of the store.
func (s *Store) Waitlists() *WaitlistRepository { return &WaitlistRepository{s} }

// Ledgers returns the ledger repository view of the store.
func (s *Store) Ledgers() *LedgerRepository { return &LedgerRepository{s} }

// Notifications returns the notification repository view of the store.
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s} }

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	c.Waitlist = append([]string{}, e.Waitlist...)
	return &c
}

func cloneLedger(l *models.NotificationList) *models.NotificationList {
	c := *l
	c.Invited = append([]string{}, l.Invited...)
	c.Waiting = append([]string{}, l.Waiting...)
	c.Cancelled = append([]string{}, l.Cancelled...)
	c.All = append([]string{}, l.All...)
	return &c
}

func cloneNotification(n *models.Notification) *models.Notification {
	c := *n
	c.Recipients = append([]string{}, n.Recipients...)
	return &c
}

// EventRepository implements repositories.EventRepository.
type EventRepository struct{ s *Store }

// Create stores a new event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	if event.Waitlist == nil {
		event.Waitlist = []string{}
	}
	r.s.events[event.ID] = cloneEvent(event)
	return nil
}

// FindByID finds an event by ID
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneEvent(e), nil
}

// FindAll lists events newest first.
func (r *EventRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	all := make([]*models.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		all = append(all, cloneEvent(e))
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page, limit), nil
}

// WaitlistRepository implements repositories.WaitlistRepository.
type WaitlistRepository struct{ s *Store }

// AddToWaitlist adds entrantID to the event's waitlist set.
func (r *WaitlistRepository) AddToWaitlist(ctx context.Context, eventID, entrantID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, id := range e.Waitlist {
		if id == entrantID {
			return nil
		}
	}
	if e.Capacity > 0 && len(e.Waitlist) >= e.Capacity {
		return repositories.ErrWaitlistFull
	}
	e.Waitlist = append(e.Waitlist, entrantID)
	e.UpdatedAt = time.Now()
	return nil
}

// RemoveFromWaitlist removes entrantID if present.
func (r *WaitlistRepository) RemoveFromWaitlist(ctx context.Context, eventID, entrantID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	e.Waitlist = utils.Difference(e.Waitlist, []string{entrantID})
	e.UpdatedAt = time.Now()
	return nil
}

// GetWaitlist returns a snapshot of the event's waitlist.
func (r *WaitlistRepository) GetWaitlist(ctx context.Context, eventID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[eventID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return append([]string{}, e.Waitlist...), nil
}

// LedgerRepository implements repositories.LedgerRepository.
type LedgerRepository struct{ s *Store }

// FindByEventID returns the ledger entry for eventID.
func (r *LedgerRepository) FindByEventID(ctx context.Context, eventID string) (*models.NotificationList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.ledgers[eventID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneLedger(l), nil
}

// UnionInvited upserts the ledger entry, adding entrantIDs to invited and all.
func (r *LedgerRepository) UnionInvited(ctx context.Context, eventID string, entrantIDs []string) (*models.NotificationList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.ledgers[eventID]
	if !ok {
		l = models.NewNotificationList(eventID)
		l.CreatedAt = time.Now()
		r.s.ledgers[eventID] = l
	}
	l.Invited = utils.Union(l.Invited, entrantIDs)
	l.All = utils.Union(l.All, entrantIDs)
	l.UpdatedAt = time.Now()
	return cloneLedger(l), nil
}

// NotificationRepository implements repositories.NotificationRepository.
type NotificationRepository struct{ s *Store }

// Create appends a notification record.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextID++
	notification.ID = strconv.Itoa(r.s.nextID)
	r.s.notifications = append(r.s.notifications, cloneNotification(notification))
	return nil
}

// FindByEntrant lists notifications addressed to entrantID, newest first.
func (r *NotificationRepository) FindByEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	var out []*models.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		for _, id := range n.Recipients {
			if id == entrantID {
				out = append(out, cloneNotification(n))
				break
			}
		}
	}
	r.s.mu.RUnlock()
	return paginate(out, page, limit), nil
}

// FindByEventID lists the notifications written for eventID in creation order.
func (r *NotificationRepository) FindByEventID(ctx context.Context, eventID string) ([]*models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.Notification{}
	for _, n := range r.s.notifications {
		if n.EventID == eventID {
			out = append(out, cloneNotification(n))
		}
	}
	return out, nil
}

func paginate[T any](items []T, page, limit int) []T {
	page, limit = utils.NormalizePage(page, limit, 1000)
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
