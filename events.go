package veracity

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/tyulyukov/veracity-go/cache"
	"github.com/tyulyukov/veracity-go/models"
	"github.com/tyulyukov/veracity-go/pagination"
	"github.com/tyulyukov/veracity-go/transport"
	"github.com/tyulyukov/veracity-go/validation"
)

// EventService defines the events module: browsing, speaker-owned event
// management and registration
type EventService interface {
	// List fetches one page of events, optionally narrowed to the ones the
	// caller registered for
	List(ctx context.Context, filter models.EventsFilter, params pagination.Params) (*models.PaginatedEventsResponse, error)
	// Pager walks an events listing one page at a time
	Pager(filter models.EventsFilter, limit int) *pagination.Pager[models.EventListItem]
	// GetByID fetches the full event view
	GetByID(ctx context.Context, eventID string) (*models.Event, error)
	// ListMine fetches one page of the caller's own events
	ListMine(ctx context.Context, params pagination.Params) (*models.PaginatedEventsResponse, error)
	// GetMine fetches one of the caller's own events
	GetMine(ctx context.Context, eventID string) (*models.Event, error)
	// Create creates an event (speaker role required server-side)
	Create(ctx context.Context, payload models.CreateEventPayload) (*models.Event, error)
	// Update edits an owned event. A participant limit below the current
	// participant count is rejected client-side and no request is sent.
	Update(ctx context.Context, eventID string, payload models.UpdateEventPayload) (*models.Event, error)
	// Delete removes an owned event
	Delete(ctx context.Context, eventID string) error
	// Register registers the caller for an event, with an optional comment
	Register(ctx context.Context, eventID, comment string) error
	// Unregister removes the caller's registration
	Unregister(ctx context.Context, eventID string) error
	// Participants fetches one page of an event's participants
	Participants(ctx context.Context, eventID string, params pagination.Params) (*models.PaginatedParticipantsResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	transport *transport.Client
	cache     *cache.Store
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(tc *transport.Client, cacheStore *cache.Store, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		transport: tc,
		cache:     cacheStore,
		logger:    logger,
	}
}

// List fetches one page of events
func (s *eventServiceImpl) List(ctx context.Context, filter models.EventsFilter, params pagination.Params) (*models.PaginatedEventsResponse, error) {
	if filter == "" {
		filter = models.EventsFilterAll
	}

	key := keyEvents(string(filter))
	version := s.cache.Version(key)

	query := url.Values{}
	query.Set("filter", string(filter))
	params.Apply(query)

	var page models.PaginatedEventsResponse
	if err := s.transport.Get(ctx, "/events", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// Pager walks an events listing
func (s *eventServiceImpl) Pager(filter models.EventsFilter, limit int) *pagination.Pager[models.EventListItem] {
	return pagination.NewPager(limit, func(ctx context.Context, params pagination.Params) (pagination.Page[models.EventListItem], error) {
		page, err := s.List(ctx, filter, params)
		if err != nil {
			return pagination.Page[models.EventListItem]{}, err
		}
		return pagination.Page[models.EventListItem]{Items: page.Events, NextCursor: page.NextCursor}, nil
	})
}

// GetByID fetches the full event view and caches it
func (s *eventServiceImpl) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	key := keyEventDetail(eventID)
	version := s.cache.Version(key)

	var event models.Event
	if err := s.transport.Get(ctx, "/events/"+eventID, nil, &event); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, &event)
	return &event, nil
}

// ListMine fetches one page of the caller's own events
func (s *eventServiceImpl) ListMine(ctx context.Context, params pagination.Params) (*models.PaginatedEventsResponse, error) {
	key := keyMyEvents()
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedEventsResponse
	if err := s.transport.Get(ctx, "/events/my", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// GetMine fetches one of the caller's own events and caches it
func (s *eventServiceImpl) GetMine(ctx context.Context, eventID string) (*models.Event, error) {
	key := keyMyEventDetail(eventID)
	version := s.cache.Version(key)

	var event models.Event
	if err := s.transport.Get(ctx, "/events/my/"+eventID, nil, &event); err != nil {
		return nil, err
	}

	cacheItem(s.cache, key, version, &event)
	return &event, nil
}

// Create creates a new event
func (s *eventServiceImpl) Create(ctx context.Context, payload models.CreateEventPayload) (*models.Event, error) {
	if err := validation.ValidateCreateEvent(payload); err != nil {
		return nil, err
	}

	var event models.Event
	if err := s.transport.Post(ctx, "/events", payload, &event); err != nil {
		return nil, err
	}

	s.invalidateListings()
	s.logger.Info().Str("eventId", event.ID).Msg("Event created")
	return &event, nil
}

// Update edits an owned event. The participant limit is validated against
// the cached participant count; a rejected limit never reaches the
// network. Without a cached view only the lower bound is checked and the
// server enforces the count.
func (s *eventServiceImpl) Update(ctx context.Context, eventID string, payload models.UpdateEventPayload) (*models.Event, error) {
	if payload.LimitParticipants != nil {
		count, _ := s.cachedParticipantCount(eventID)
		if err := validation.ValidateEventLimit(payload.LimitParticipants, count); err != nil {
			return nil, err
		}
	}

	var event models.Event
	if err := s.transport.Patch(ctx, "/events/"+eventID, payload, &event); err != nil {
		return nil, err
	}

	s.invalidateListings()
	s.cache.Invalidate(keyEventDetail(eventID), keyMyEventDetail(eventID))
	return &event, nil
}

// Delete removes an owned event
func (s *eventServiceImpl) Delete(ctx context.Context, eventID string) error {
	if err := s.transport.Delete(ctx, "/events/"+eventID); err != nil {
		return err
	}

	s.invalidateListings()
	s.cache.Remove(keyEventDetail(eventID), keyMyEventDetail(eventID), keyEventParticipants(eventID))
	return nil
}

// Register registers the caller for an event
func (s *eventServiceImpl) Register(ctx context.Context, eventID, comment string) error {
	var body any
	if comment != "" {
		body = models.RegisterEventPayload{Comment: comment}
	}

	if err := s.transport.Post(ctx, "/events/"+eventID+"/register", body, nil); err != nil {
		return err
	}

	s.invalidateListings()
	s.cache.Invalidate(keyEventDetail(eventID), keyEventParticipants(eventID))
	return nil
}

// Unregister removes the caller's registration
func (s *eventServiceImpl) Unregister(ctx context.Context, eventID string) error {
	if err := s.transport.Delete(ctx, "/events/"+eventID+"/register"); err != nil {
		return err
	}

	s.invalidateListings()
	s.cache.Invalidate(keyEventDetail(eventID), keyEventParticipants(eventID))
	return nil
}

// Participants fetches one page of an event's participants
func (s *eventServiceImpl) Participants(ctx context.Context, eventID string, params pagination.Params) (*models.PaginatedParticipantsResponse, error) {
	key := keyEventParticipants(eventID)
	version := s.cache.Version(key)

	query := url.Values{}
	params.Apply(query)

	var page models.PaginatedParticipantsResponse
	if err := s.transport.Get(ctx, "/events/"+eventID+"/participants", query, &page); err != nil {
		return nil, err
	}

	cachePages(s.cache, key, version, params.Cursor == "", page)
	return &page, nil
}

// cachedParticipantCount returns the event's participant count from the
// cached detail views, 0 when neither is held
func (s *eventServiceImpl) cachedParticipantCount(eventID string) (int, bool) {
	for _, key := range []cache.Key{keyMyEventDetail(eventID), keyEventDetail(eventID)} {
		if value, ok := s.cache.Get(key); ok {
			if event, valid := value.(*models.Event); valid {
				return event.ParticipantCount, true
			}
		}
	}
	return 0, false
}

// invalidateListings marks every events listing stale
func (s *eventServiceImpl) invalidateListings() {
	s.cache.Invalidate(
		keyEvents(string(models.EventsFilterAll)),
		keyEvents(string(models.EventsFilterRegistered)),
		keyMyEvents(),
	)
}
