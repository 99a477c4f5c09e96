package models

// EventSpeaker is the speaker summary embedded in event views
type EventSpeaker struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	AvatarURL *string  `json:"avatarUrl"`
	Role      UserRole `json:"role"`
}

// EventListItem is an event as it appears in listings
type EventListItem struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	IsOnline          bool          `json:"isOnline"`
	EventDate         string        `json:"eventDate"`
	Location          *string       `json:"location"`
	Link              *string       `json:"link"`
	ImageURLs         []string      `json:"imageUrls"`
	LimitParticipants *int          `json:"limitParticipants"`
	ParticipantCount  int           `json:"participantCount"`
	Speaker           *EventSpeaker `json:"speaker,omitempty"`
	IsRegistered      *bool         `json:"isRegistered,omitempty"`
}

// FeaturedImage returns the event's listing thumbnail: the first entry of
// its image list, or empty when the event has no images
func (e *EventListItem) FeaturedImage() string {
	if len(e.ImageURLs) == 0 {
		return ""
	}
	return e.ImageURLs[0]
}

// Event is the full event view
type Event struct {
	EventListItem
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt"`
}

// EventParticipant is a registration record joined with the participant's
// profile summary
type EventParticipant struct {
	ID                    string   `json:"id"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	AvatarURL             *string  `json:"avatarUrl"`
	Role                  UserRole `json:"role"`
	Comment               *string  `json:"comment"`
	RegistrationCreatedAt string   `json:"registrationCreatedAt"`
}

// CreateEventPayload is the request body for POST /events
type CreateEventPayload struct {
	Name              string   `json:"name" validate:"required,min=2,max=200"`
	IsOnline          bool     `json:"isOnline"`
	EventDate         string   `json:"eventDate" validate:"required"`
	Location          string   `json:"location,omitempty"`
	Link              string   `json:"link,omitempty"`
	Description       string   `json:"description,omitempty"`
	ImageURLs         []string `json:"imageUrls,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	LimitParticipants *int     `json:"limitParticipants,omitempty" validate:"omitempty,min=1"`
}

// UpdateEventPayload is the request body for PATCH /events/:id. Nil fields
// are omitted and left unchanged by the server.
type UpdateEventPayload struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	IsOnline          *bool    `json:"isOnline,omitempty"`
	EventDate         *string  `json:"eventDate,omitempty"`
	Location          *string  `json:"location,omitempty"`
	Link              *string  `json:"link,omitempty"`
	Description       *string  `json:"description,omitempty"`
	ImageURLs         []string `json:"imageUrls,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	LimitParticipants *int     `json:"limitParticipants,omitempty"`
}

// RegisterEventPayload is the optional request body for
// POST /events/:id/register
type RegisterEventPayload struct {
	Comment string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// EventsFilter selects which events a listing returns
type EventsFilter string

const (
	EventsFilterAll        EventsFilter = "all"
	EventsFilterRegistered EventsFilter = "registered"
)

// PaginatedEventsResponse is one page of an events listing
type PaginatedEventsResponse struct {
	Events     []EventListItem `json:"events"`
	NextCursor *string         `json:"nextCursor"`
}

// PaginatedParticipantsResponse is one page of an event's participants
type PaginatedParticipantsResponse struct {
	Participants []EventParticipant `json:"participants"`
	NextCursor   *string            `json:"nextCursor"`
}
