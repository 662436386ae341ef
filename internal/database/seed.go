package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"fyyur/internal/models"
)

// Seeded holds the rows written by Seed, keyed by name.
type Seeded struct {
	Venues  map[string]*models.Venue
	Artists map[string]*models.Artist
	Shows   []*models.Show
}

func sampleVenues() []*models.Venue {
	return []*models.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             models.Genres{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			Address:            "1015 Folsom Street",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?ixlib=rb-1.2.1&auto=format&fit=crop&w=400&q=60",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       models.Genres{"Classical", "R&B", "Hip-Hop"},
			Address:      "335 Delancey Street",
			City:         "New York",
			State:        "NY",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=750&q=80",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       models.Genres{"Rock n Roll", "Jazz", "Classical", "Folk"},
			Address:      "34 Whiskey Moore Ave",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?ixlib=rb-1.2.1&auto=format&fit=crop&w=747&q=80",
		},
	}
}

func sampleArtists() []*models.Artist {
	return []*models.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             models.Genres{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			ImageLink:          "https://images.unsplash.com/photo-1549213783-8284d0336c4f?ixlib=rb-1.2.1&auto=format&fit=crop&w=300&q=80",
		},
		{
			Name:         "Matt Quevado",
			Genres:       models.Genres{"Jazz"},
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?ixlib=rb-1.2.1&auto=format&fit=crop&w=334&q=80",
		},
		{
			Name:      "The Wild Sax Band",
			Genres:    models.Genres{"Jazz", "Classical"},
			City:      "San Francisco",
			State:     "CA",
			Phone:     "432-325-5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?ixlib=rb-1.2.1&auto=format&fit=crop&w=794&q=80",
		},
	}
}

// Seed writes the sample venues, artists and shows in one transaction.
// Show times are relative to now so the past/upcoming split stays
// meaningful whenever the data is loaded.
func Seed(ctx context.Context, db *bun.DB) (*Seeded, error) {
	out := &Seeded{
		Venues:  map[string]*models.Venue{},
		Artists: map[string]*models.Artist{},
	}
	now := time.Now().Truncate(time.Second)

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, v := range sampleVenues() {
			v.CreatedAt = now
			if _, err := tx.NewInsert().Model(v).Exec(ctx); err != nil {
				return fmt.Errorf("seed venue %s: %w", v.Name, err)
			}
			out.Venues[v.Name] = v
		}
		for _, a := range sampleArtists() {
			a.CreatedAt = now
			if _, err := tx.NewInsert().Model(a).Exec(ctx); err != nil {
				return fmt.Errorf("seed artist %s: %w", a.Name, err)
			}
			out.Artists[a.Name] = a
		}

		shows := []*models.Show{
			{VenueID: out.Venues["The Musical Hop"].ID, ArtistID: out.Artists["Guns N Petals"].ID, StartTime: now.AddDate(0, -2, 0)},
			{VenueID: out.Venues["Park Square Live Music & Coffee"].ID, ArtistID: out.Artists["Matt Quevado"].ID, StartTime: now.AddDate(0, -1, 0)},
			{VenueID: out.Venues["Park Square Live Music & Coffee"].ID, ArtistID: out.Artists["The Wild Sax Band"].ID, StartTime: now.AddDate(0, 1, 0)},
			{VenueID: out.Venues["Park Square Live Music & Coffee"].ID, ArtistID: out.Artists["The Wild Sax Band"].ID, StartTime: now.AddDate(0, 1, 7)},
			{VenueID: out.Venues["Park Square Live Music & Coffee"].ID, ArtistID: out.Artists["The Wild Sax Band"].ID, StartTime: now.AddDate(0, 1, 14)},
		}
		for _, s := range shows {
			s.CreatedAt = now
			if _, err := tx.NewInsert().Model(s).Exec(ctx); err != nil {
				return fmt.Errorf("seed show: %w", err)
			}
		}
		out.Shows = shows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SeedIfEmpty seeds only when no venues exist yet and reports whether it
// wrote anything.
func SeedIfEmpty(ctx context.Context, db *bun.DB) (bool, error) {
	n, err := db.NewSelect().Model((*models.Venue)(nil)).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count venues: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := Seed(ctx, db); err != nil {
		return false, err
	}
	return true, nil
}
