package models

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrVenueHasShows = errors.New("venue still has shows booked")
	ErrUnknownArtist = errors.New("artist does not exist")
	ErrUnknownVenue  = errors.New("venue does not exist")
	ErrInvalidForm   = errors.New("invalid form")
)
