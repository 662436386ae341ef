package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show books one artist at one venue. Whether it is past or upcoming is
// decided at read time, never stored.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ArtistID  int64     `bun:"artist_id,notnull"`
	VenueID   int64     `bun:"venue_id,notnull"`
	StartTime time.Time `bun:"start_time,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id"`
	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id"`
}

// IsUpcoming reports whether the show starts at or after now.
func (s Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}

// PartitionShows splits shows into past (start < now) and upcoming
// (start >= now), keeping the input order within each half.
func PartitionShows(shows []Show, now time.Time) (past, upcoming []Show) {
	past = []Show{}
	upcoming = []Show{}
	for _, s := range shows {
		if s.IsUpcoming(now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return past, upcoming
}
