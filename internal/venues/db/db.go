package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"fyyur/internal/database"
	"fyyur/internal/models"
)

type DB struct {
	Bun *bun.DB
}

type upcomingCount struct {
	VenueID  int64 `bun:"venue_id"`
	Upcoming int   `bun:"upcoming"`
}

// CreateVenue inserts the venue in its own transaction and fills in its ID.
func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if venue.CreatedAt.IsZero() {
		venue.CreatedAt = time.Now()
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(venue).Exec(ctx); err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		return nil
	})
}

// UpdateVenue overwrites every editable column of an existing venue.
func (d *DB) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(venue).
			Column("name", "address", "city", "state", "phone", "website",
				"facebook_link", "image_link", "genres", "seeking_talent", "seeking_description").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update venue %d: %w", venue.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("venue %d: %w", venue.ID, models.ErrNotFound)
		}
		return nil
	})
}

func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("v.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venue %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListLocations returns the distinct (city, state) pairs across all venues.
func (d *DB) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Distinct().
		Column("city", "state").
		OrderExpr("v.state ASC, v.city ASC").
		Scan(ctx, &locations)
	return locations, err
}

func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		OrderExpr("v.name ASC, v.id ASC").
		Scan(ctx)
	return venues, err
}

// SearchVenues matches the term, trimmed of surrounding spaces, as a
// case-insensitive substring of the name. PostgreSQL folds case with ILIKE;
// on SQLite the names are folded in Go so non-ASCII letters match too.
func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	q := d.Bun.NewSelect().
		Model(&venues).
		OrderExpr("v.name ASC, v.id ASC")

	if database.FoldsCaseInSQL(d.Bun) {
		err := q.Where("v.name ILIKE ? "+database.LikeEscape, database.LikePattern(term)).Scan(ctx)
		return venues, err
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	matched := venues[:0]
	for _, v := range venues {
		if database.ContainsFold(v.Name, term) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// CountUpcomingShows returns, per venue id, how many shows start at or after
// now. Venues without upcoming shows are absent from the map.
func (d *DB) CountUpcomingShows(ctx context.Context, now time.Time) (map[int64]int, error) {
	var rows []upcomingCount
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("s.venue_id AS venue_id").
		ColumnExpr("COUNT(*) AS upcoming").
		Where("s.start_time >= ?", now).
		GroupExpr("s.venue_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.VenueID] = r.Upcoming
	}
	return counts, nil
}

// GetShowsByVenue returns the venue's shows with their artist loaded,
// earliest first.
func (d *DB) GetShowsByVenue(ctx context.Context, venueID int64) ([]models.Show, error) {
	var shows []models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Artist").
		Where("s.venue_id = ?", venueID).
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}

// DeleteVenue removes a venue that no show references. A referenced venue
// is left untouched and ErrVenueHasShows is returned.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("v.id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("venue %d: %w", id, models.ErrNotFound)
		}

		booked, err := tx.NewSelect().Model((*models.Show)(nil)).Where("s.venue_id = ?", id).Count(ctx)
		if err != nil {
			return err
		}
		if booked > 0 {
			return fmt.Errorf("venue %d has %d shows: %w", id, booked, models.ErrVenueHasShows)
		}

		if _, err := tx.NewDelete().Model((*models.Venue)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete venue %d: %w", id, err)
		}
		return nil
	})
}
