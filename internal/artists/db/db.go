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
	ArtistID int64 `bun:"artist_id"`
	Upcoming int   `bun:"upcoming"`
}

func (d *DB) CreateArtist(ctx context.Context, artist *models.Artist) error {
	if artist.CreatedAt.IsZero() {
		artist.CreatedAt = time.Now()
	}
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(artist).Exec(ctx); err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		return nil
	})
}

func (d *DB) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(artist).
			Column("name", "city", "state", "phone", "website", "facebook_link",
				"image_link", "genres", "seeking_venue", "seeking_description").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update artist %d: %w", artist.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("artist %d: %w", artist.ID, models.ErrNotFound)
		}
		return nil
	})
}

func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("a.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
		Column("id", "name").
		OrderExpr("a.name ASC, a.id ASC").
		Scan(ctx)
	return artists, err
}

// SearchArtists matches the term, trimmed of surrounding spaces, as a
// case-insensitive substring of the name. PostgreSQL folds case with ILIKE;
// on SQLite the names are folded in Go so non-ASCII letters match too.
func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	q := d.Bun.NewSelect().
		Model(&artists).
		OrderExpr("a.name ASC, a.id ASC")

	if database.FoldsCaseInSQL(d.Bun) {
		err := q.Where("a.name ILIKE ? "+database.LikeEscape, database.LikePattern(term)).Scan(ctx)
		return artists, err
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	matched := artists[:0]
	for _, a := range artists {
		if database.ContainsFold(a.Name, term) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// CountUpcomingShows returns, per artist id, how many shows start at or
// after now.
func (d *DB) CountUpcomingShows(ctx context.Context, now time.Time) (map[int64]int, error) {
	var rows []upcomingCount
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("s.artist_id AS artist_id").
		ColumnExpr("COUNT(*) AS upcoming").
		Where("s.start_time >= ?", now).
		GroupExpr("s.artist_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.ArtistID] = r.Upcoming
	}
	return counts, nil
}

// GetShowsByArtist returns the artist's shows with their venue loaded,
// earliest first.
func (d *DB) GetShowsByArtist(ctx context.Context, artistID int64) ([]models.Show, error) {
	var shows []models.Show
	err := d.Bun.NewSelect().
		Model(&shows).
		Relation("Venue").
		Where("s.artist_id = ?", artistID).
		OrderExpr("s.start_time ASC, s.id ASC").
		Scan(ctx)
	return shows, err
}
