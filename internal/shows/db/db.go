package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"fyyur/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateShow checks that the artist and venue exist and inserts the show,
// all in one transaction. A missing reference leaves nothing behind.
func (d *DB) CreateShow(ctx context.Context, show *models.Show) error {
	if show.CreatedAt.IsZero() {
		show.CreatedAt = time.Now()
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		artistExists, err := tx.NewSelect().Model((*models.Artist)(nil)).Where("a.id = ?", show.ArtistID).Exists(ctx)
		if err != nil {
			return err
		}
		if !artistExists {
			return fmt.Errorf("artist %d: %w", show.ArtistID, models.ErrUnknownArtist)
		}

		venueExists, err := tx.NewSelect().Model((*models.Venue)(nil)).Where("v.id = ?", show.VenueID).Exists(ctx)
		if err != nil {
			return err
		}
		if !venueExists {
			return fmt.Errorf("venue %d: %w", show.VenueID, models.ErrUnknownVenue)
		}

		if _, err := tx.NewInsert().Model(show).Exec(ctx); err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		return nil
	})
}

// ListShows returns every show with its artist and venue, earliest first.
func (d *DB) ListShows(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Artist").
		Relation("Venue").
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}
