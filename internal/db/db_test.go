package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-manager/internal/db"
)

func TestOpenSqlite(t *testing.T) {
	gdb, err := db.Open(":memory:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", gdb.Dialector.Name())

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
