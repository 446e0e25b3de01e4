package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/config"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "helpdesk.db?_foreign_keys=1", withForeignKeys("helpdesk.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=1", withForeignKeys("file::memory:?cache=shared"))
	assert.Equal(t, "x.db?_fk=1", withForeignKeys("x.db?_fk=1"))
}

func TestDialectorFor_UnknownDriver(t *testing.T) {
	_, err := dialectorFor(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitSQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:connection_test?mode=memory&cache=shared",
	}

	require.NoError(t, Init(cfg))
	t.Cleanup(func() { _ = Close() })

	require.NotNil(t, Get())
	assert.NoError(t, Ping(context.Background()))

	var fk int
	require.NoError(t, Get().Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
