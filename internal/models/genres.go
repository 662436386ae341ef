package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Genres is stored as a comma separated text column so the same model works
// on PostgreSQL and SQLite.
type Genres []string

func (g Genres) Value() (driver.Value, error) {
	return strings.Join(g, ","), nil
}

func (g *Genres) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("genres: unsupported type %T", src)
	}

	if raw == "" {
		*g = Genres{}
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(Genres, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*g = out
	return nil
}

func (g Genres) Contains(genre string) bool {
	for _, x := range g {
		if x == genre {
			return true
		}
	}
	return false
}
