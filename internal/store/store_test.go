package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, SQLite, st.Dialect())
	require.NoError(t, st.Migrate(context.Background()))

	// Migrate is idempotent.
	require.NoError(t, st.Migrate(context.Background()))

	for _, table := range []string{"employees", "devices", "accessories", "assigned_devices", "assigned_accessories"} {
		var n int64
		err := st.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		require.NoError(t, err, "table %s should exist", table)
		assert.Zero(t, n)
	}
}

func TestRebind(t *testing.T) {
	sqlite := &Store{dialect: SQLite}
	pg := &Store{dialect: Postgres}

	q := "INSERT INTO devices (serial_number, manufacturer) VALUES (?, ?)"
	assert.Equal(t, q, sqlite.Rebind(q))
	assert.Equal(t,
		"INSERT INTO devices (serial_number, manufacturer) VALUES ($1, $2)",
		pg.Rebind(q))

	assert.Equal(t, "SELECT 1", pg.Rebind("SELECT 1"))
}

func TestDialectFromDSN(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer st.Close()
	assert.Equal(t, SQLite, st.Dialect())
}
