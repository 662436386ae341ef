package models

import "time"

// The types below are the plain records handed to the presentation layer.

type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type VenueArea struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

type ArtistSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type VenueSearchResult struct {
	SearchTerm string         `json:"search_term"`
	Count      int            `json:"count"`
	Data       []VenueSummary `json:"data"`
}

type ArtistSearchResult struct {
	SearchTerm string          `json:"search_term"`
	Count      int             `json:"count"`
	Data       []ArtistSummary `json:"data"`
}

// VenueShow is a show as seen from a venue page.
type VenueShow struct {
	ShowID          int64     `json:"show_id"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show as seen from an artist page.
type ArtistShow struct {
	ShowID         int64     `json:"show_id"`
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

type VenueDetail struct {
	Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

type ArtistDetail struct {
	Artist
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ShowListing is one row of the all-shows page.
type ShowListing struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

func NewVenueShow(s Show) VenueShow {
	vs := VenueShow{ShowID: s.ID, ArtistID: s.ArtistID, StartTime: s.StartTime}
	if s.Artist != nil {
		vs.ArtistName = s.Artist.Name
		vs.ArtistImageLink = s.Artist.ImageLink
	}
	return vs
}

func NewArtistShow(s Show) ArtistShow {
	as := ArtistShow{ShowID: s.ID, VenueID: s.VenueID, StartTime: s.StartTime}
	if s.Venue != nil {
		as.VenueName = s.Venue.Name
		as.VenueImageLink = s.Venue.ImageLink
	}
	return as
}

func NewShowListing(s Show) ShowListing {
	l := ShowListing{ID: s.ID, VenueID: s.VenueID, ArtistID: s.ArtistID, StartTime: s.StartTime}
	if s.Venue != nil {
		l.VenueName = s.Venue.Name
	}
	if s.Artist != nil {
		l.ArtistName = s.Artist.Name
		l.ArtistImageLink = s.Artist.ImageLink
	}
	return l
}
