package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ticketline/api/internal/testutil"
	"github.com/ticketline/api/migrations"
)

func TestApplyIsIdempotent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	require.NoError(t, migrations.Apply(ctx, pool))

	var before int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&before))
	require.Positive(t, before)

	// A second run must not re-execute anything.
	require.NoError(t, migrations.Apply(ctx, pool))

	var after int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&after))
	require.Equal(t, before, after)

	for _, table := range []string{"users", "events", "tickets", "tier_counts", "bookings"} {
		var exists bool
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
			table,
		).Scan(&exists))
		require.True(t, exists, "table %s missing", table)
	}
}
