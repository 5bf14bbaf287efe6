package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ticketline/api/internal/domain"
	"github.com/ticketline/api/internal/storage/postgres"
	"github.com/ticketline/api/internal/testutil"
)

func TestAdminRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)

	repo := postgres.NewAdminRepository(pool)

	t.Run("create and list events", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		first, err := repo.CreateEvent(ctx, "Concert")
		require.NoError(t, err)
		second, err := repo.CreateEvent(ctx, "Festival")
		require.NoError(t, err)

		events, err := repo.ListEvents(ctx)
		require.NoError(t, err)
		require.Equal(t, []domain.Event{first, second}, events)
	})

	t.Run("insert tickets for unknown event", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.InsertAvailableTickets(ctx, 999, domain.TierGA, 2)
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("insert tickets and accumulate the counter", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		event, err := repo.CreateEvent(ctx, "Concert")
		require.NoError(t, err)

		tickets, err := repo.InsertAvailableTickets(ctx, event.ID, domain.TierVIP, 3)
		require.NoError(t, err)
		require.Len(t, tickets, 3)
		for _, ticket := range tickets {
			require.Equal(t, domain.TicketStatusAvailable, ticket.Status)
			require.Nil(t, ticket.OwnerID)
		}

		require.NoError(t, repo.UpsertAvailableCount(ctx, event.ID, domain.TierVIP, 3))
		require.NoError(t, repo.UpsertAvailableCount(ctx, event.ID, domain.TierVIP, 2))
		require.Equal(t, 5, testutil.AvailableCount(t, ctx, pool, event.ID, domain.TierVIP))
	})

	t.Run("list tier counts", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		event, err := repo.CreateEvent(ctx, "Concert")
		require.NoError(t, err)
		testutil.ProvisionTickets(t, ctx, pool, event.ID, domain.TierGA, 4)
		testutil.ProvisionTickets(t, ctx, pool, event.ID, domain.TierVIP, 2)

		counts, err := repo.ListTierCounts(ctx, event.ID)
		require.NoError(t, err)
		require.Equal(t, []domain.TierCount{
			{EventID: event.ID, Tier: domain.TierGA, Available: 4},
			{EventID: event.ID, Tier: domain.TierVIP, Available: 2},
		}, counts)
	})

	t.Run("create user", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		user, err := repo.CreateUser(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Name)
		require.Positive(t, user.ID)
	})
}
