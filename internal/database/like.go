package database

import (
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// LikeEscape is the ESCAPE clause matching LikePattern.
const LikeEscape = `ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a user search term into an escaped "contains" pattern
// for use with ILIKE.
func LikePattern(term string) string {
	return "%" + likeReplacer.Replace(strings.TrimSpace(term)) + "%"
}

// FoldsCaseInSQL reports whether the dialect can match names case
// insensitively for any script. SQLite's LOWER and LIKE only fold ASCII,
// so on SQLite the match runs in Go through ContainsFold.
func FoldsCaseInSQL(db bun.IDB) bool {
	return db.Dialect().Name() == dialect.PG
}

// ContainsFold reports whether the trimmed term is a case-insensitive
// substring of name.
func ContainsFold(name, term string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(term)))
}
