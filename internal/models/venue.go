package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	Name               string    `bun:"name,notnull"`
	Address            string    `bun:"address,notnull"`
	City               string    `bun:"city,notnull"`
	State              string    `bun:"state,notnull"`
	Phone              string    `bun:"phone"`
	Website            string    `bun:"website"`
	FacebookLink       string    `bun:"facebook_link"`
	ImageLink          string    `bun:"image_link"`
	Genres             Genres    `bun:"genres,type:text,notnull"`
	SeekingTalent      bool      `bun:"seeking_talent,notnull"`
	SeekingDescription string    `bun:"seeking_description"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Location is the (city, state) pair venues are grouped under.
type Location struct {
	City  string `bun:"city"`
	State string `bun:"state"`
}

func (v Venue) Location() Location {
	return Location{City: v.City, State: v.State}
}
