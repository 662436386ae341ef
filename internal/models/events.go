package models

import "time"

const (
	EventVenueCreated  = "venue.created"
	EventVenueDeleted  = "venue.deleted"
	EventArtistCreated = "artist.created"
	EventShowCreated   = "show.created"
)

// BookingEvent is the payload published after a successful write.
type BookingEvent struct {
	Type       string     `json:"type"`
	ID         int64      `json:"id"`
	Name       string     `json:"name,omitempty"`
	ArtistID   int64      `json:"artist_id,omitempty"`
	VenueID    int64      `json:"venue_id,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewVenueCreatedEvent(v Venue) BookingEvent {
	return BookingEvent{Type: EventVenueCreated, ID: v.ID, Name: v.Name, OccurredAt: time.Now().UTC()}
}

func NewVenueDeletedEvent(id int64) BookingEvent {
	return BookingEvent{Type: EventVenueDeleted, ID: id, OccurredAt: time.Now().UTC()}
}

func NewArtistCreatedEvent(a Artist) BookingEvent {
	return BookingEvent{Type: EventArtistCreated, ID: a.ID, Name: a.Name, OccurredAt: time.Now().UTC()}
}

func NewShowCreatedEvent(s Show) BookingEvent {
	start := s.StartTime.UTC()
	return BookingEvent{
		Type:       EventShowCreated,
		ID:         s.ID,
		ArtistID:   s.ArtistID,
		VenueID:    s.VenueID,
		StartTime:  &start,
		OccurredAt: time.Now().UTC(),
	}
}
