package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

type EventService struct {
	eventRepo repositories.EventRepository
	timeout   time.Duration
}

func NewEventService(eventRepo repositories.EventRepository, timeout time.Duration) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		timeout:   timeout,
	}
}

// CreateEvent creates an event owned by organizer with an empty waitlist.
func (s *EventService) CreateEvent(ctx context.Context, organizer models.Identity, req *models.CreateEventRequest) (*models.Event, error) {
	const op = "event.CreateEvent"
	if !organizer.IsOrganizer() {
		return nil, invalidArgument(op, "only organizers can create events")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidArgument(op, "name is required")
	}
	if req.Capacity < 0 || req.EntrantsToDraw < 0 {
		return nil, invalidArgument(op, "capacity and entrantsToDraw must not be negative")
	}

	event := &models.Event{
		ID:             primitive.NewObjectID().Hex(),
		OrganizerID:    organizer.UserID,
		Name:           name,
		Capacity:       req.Capacity,
		EntrantsToDraw: req.EntrantsToDraw,
		SelectionDate:  req.SelectionDate,
		Waitlist:       []string{},
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		slog.Error("Failed to create event", "organizerId", organizer.UserID, "error", err)
		return nil, storageError(op, err)
	}
	slog.Info("Event created", "eventId", event.ID, "organizerId", utils.MaskID(organizer.UserID))
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "event.GetEvent"
	if err := validateEventID(op, id); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(op, err)
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, page, limit int) ([]*models.Event, error) {
	page, limit = utils.NormalizePage(page, limit, 100)
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	events, err := s.eventRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, storageError("event.ListEvents", err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}
