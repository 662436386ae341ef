package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"fyyur/internal/models"
)

// CreateSchema creates the booking tables from the bun models. PostgreSQL
// deployments use the SQL migrations instead; this path serves SQLite.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*models.Venue)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create venues table: %w", err)
	}
	if _, err := db.NewCreateTable().Model((*models.Artist)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create artists table: %w", err)
	}

	_, err := db.NewCreateTable().
		Model((*models.Show)(nil)).
		IfNotExists().
		ForeignKey(`("artist_id") REFERENCES "artists" ("id") ON DELETE RESTRICT`).
		ForeignKey(`("venue_id") REFERENCES "venues" ("id") ON DELETE RESTRICT`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create shows table: %w", err)
	}

	_, err = db.NewCreateIndex().
		Model((*models.Show)(nil)).
		Index("shows_start_time_idx").
		IfNotExists().
		Column("start_time").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create shows index: %w", err)
	}
	return nil
}

// DropSchema drops the booking tables in reverse dependency order.
func DropSchema(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{(*models.Show)(nil), (*models.Artist)(nil), (*models.Venue)(nil)}
	for _, m := range tables {
		if _, err := db.NewDropTable().Model(m).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table for %T: %w", m, err)
		}
	}
	return nil
}
