package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"Hop":       "%Hop%",
		"  Music  ": "%Music%",
		"":          "%%",
		"50%":       `%50\%%`,
		"a_b":       `%a\_b%`,
		`back\`:     `%back\\%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, LikePattern(in), "term %q", in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("The Musical Hop", "hop"))
	assert.True(t, ContainsFold("The Musical Hop", " MUSIC "))
	assert.True(t, ContainsFold("ÉCOLE Hall", "école"))
	assert.True(t, ContainsFold("ÉCOLE Hall", "ÉCOLE"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("The Musical Hop", "%"))
	assert.False(t, ContainsFold("Guns N Petals", "_"))
}

func TestFoldsCaseInSQLOnlyForPostgres(t *testing.T) {
	bunDB, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer bunDB.Close()
	assert.False(t, FoldsCaseInSQL(bunDB))
}
