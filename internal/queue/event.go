// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer that move them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types double as routing keys on the directory exchange.
const (
	EventVenueCreated  = "venue.created"
	EventVenueDeleted  = "venue.deleted"
	EventArtistCreated = "artist.created"
	EventArtistDeleted = "artist.deleted"
	EventShowBooked    = "show.booked"
)

// TimeLayout formats every timestamp carried in an event.
const TimeLayout = time.RFC3339

// DirectoryEvent is published after a directory mutation commits.  It
// carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.
type DirectoryEvent struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Entity       string `json:"entity"`
	EntityID     int64  `json:"entity_id"`
	Name         string `json:"name,omitempty"`
	VenueID      int64  `json:"venue_id,omitempty"`
	VenueName    string `json:"venue_name,omitempty"`
	ArtistID     int64  `json:"artist_id,omitempty"`
	ArtistName   string `json:"artist_name,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	ShowsRemoved int64  `json:"shows_removed,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// Stamp fills in the event id and occurrence time if they are unset.
func Stamp(ev DirectoryEvent, at time.Time) DirectoryEvent {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt == "" {
		ev.OccurredAt = at.UTC().Format(TimeLayout)
	}
	return ev
}
