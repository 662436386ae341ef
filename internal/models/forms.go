package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const StartTimeLayout = "2006-01-02 15:04:05"

type VenueForm struct {
	Name               string   `validate:"required,max=120"`
	City               string   `validate:"required,max=120"`
	State              string   `validate:"required,us_state"`
	Address            string   `validate:"required,max=120"`
	Phone              string   `validate:"omitempty,max=120"`
	ImageLink          string   `validate:"omitempty,url,max=500"`
	FacebookLink       string   `validate:"omitempty,url,max=500"`
	WebsiteLink        string   `validate:"omitempty,url,max=500"`
	Genres             []string `validate:"required,min=1,dive,genre"`
	SeekingTalent      bool
	SeekingDescription string `validate:"omitempty,max=500"`
}

type ArtistForm struct {
	Name               string   `validate:"required,max=120"`
	City               string   `validate:"required,max=120"`
	State              string   `validate:"required,us_state"`
	Phone              string   `validate:"omitempty,max=120"`
	ImageLink          string   `validate:"omitempty,url,max=500"`
	FacebookLink       string   `validate:"omitempty,url,max=500"`
	WebsiteLink        string   `validate:"omitempty,url,max=500"`
	Genres             []string `validate:"required,min=1,dive,genre"`
	SeekingVenue       bool
	SeekingDescription string `validate:"omitempty,max=500"`
}

type ShowForm struct {
	ArtistID  string `validate:"required,numeric"`
	VenueID   string `validate:"required,numeric"`
	StartTime string `validate:"required"`
}

// checkbox accepts the truthy encodings browsers and form libraries submit.
func checkbox(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func trimmed(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func genresFrom(values url.Values) []string {
	var out []string
	for _, g := range values["genres"] {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func VenueFormFromValues(values url.Values) VenueForm {
	return VenueForm{
		Name:               trimmed(values, "name"),
		City:               trimmed(values, "city"),
		State:              trimmed(values, "state"),
		Address:            trimmed(values, "address"),
		Phone:              trimmed(values, "phone"),
		ImageLink:          trimmed(values, "image_link"),
		FacebookLink:       trimmed(values, "facebook_link"),
		WebsiteLink:        trimmed(values, "website_link"),
		Genres:             genresFrom(values),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: trimmed(values, "seeking_description"),
	}
}

func VenueFormFromVenue(v Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		Genres:             append([]string(nil), v.Genres...),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func (f VenueForm) Validate() error {
	return validateForm(f)
}

// ApplyTo copies every editable field onto v.
func (f VenueForm) ApplyTo(v *Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.WebsiteLink
	v.Genres = append(Genres{}, f.Genres...)
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

func ArtistFormFromValues(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               trimmed(values, "name"),
		City:               trimmed(values, "city"),
		State:              trimmed(values, "state"),
		Phone:              trimmed(values, "phone"),
		ImageLink:          trimmed(values, "image_link"),
		FacebookLink:       trimmed(values, "facebook_link"),
		WebsiteLink:        trimmed(values, "website_link"),
		Genres:             genresFrom(values),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: trimmed(values, "seeking_description"),
	}
}

func ArtistFormFromArtist(a Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		Genres:             append([]string(nil), a.Genres...),
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f ArtistForm) Validate() error {
	return validateForm(f)
}

func (f ArtistForm) ApplyTo(a *Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.WebsiteLink
	a.Genres = append(Genres{}, f.Genres...)
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
}

func ShowFormFromValues(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  trimmed(values, "artist_id"),
		VenueID:   trimmed(values, "venue_id"),
		StartTime: trimmed(values, "start_time"),
	}
}

// startTimeLayouts are tried in order; the last two match what
// datetime-local inputs send.
var startTimeLayouts = []string{
	StartTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func ParseStartTime(raw string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised start time %q", ErrInvalidForm, raw)
}

// ToShow validates the form and converts it into an unsaved Show.
func (f ShowForm) ToShow() (*Show, error) {
	if err := validateForm(f); err != nil {
		return nil, err
	}

	artistID, err := strconv.ParseInt(f.ArtistID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: artist_id: %v", ErrInvalidForm, err)
	}
	venueID, err := strconv.ParseInt(f.VenueID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: venue_id: %v", ErrInvalidForm, err)
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}

	return &Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}
