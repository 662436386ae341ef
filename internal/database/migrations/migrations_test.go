package migrations

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/logger"
)

func TestInitializeRejectsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	r := NewRunner("postgres://unused", MigrateOptions{MigrationsDir: dir}, logger.Discard())

	err := r.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory does not exist")

	err = r.RunMigrations()
	assert.Error(t, err)
}

func TestCloseWithoutInitializeIsNoop(t *testing.T) {
	r := NewRunner("postgres://unused", DefaultOptions(), logger.Discard())
	assert.NoError(t, r.Close())
}
