package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Artist struct {
	bun.BaseModel `bun:"table:artists,alias:a"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	Name               string    `bun:"name,notnull"`
	City               string    `bun:"city,notnull"`
	State              string    `bun:"state,notnull"`
	Phone              string    `bun:"phone"`
	Website            string    `bun:"website"`
	FacebookLink       string    `bun:"facebook_link"`
	ImageLink          string    `bun:"image_link"`
	Genres             Genres    `bun:"genres,type:text,notnull"`
	SeekingVenue       bool      `bun:"seeking_venue,notnull"`
	SeekingDescription string    `bun:"seeking_description"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
