package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ticketline/api/internal/domain"
)

func TestAdminService(t *testing.T) {
	t.Parallel()

	t.Run("create event requires a name", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo())
		_, err := svc.CreateEvent(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrEventNameRequired)
	})

	t.Run("create user requires a name", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo())
		_, err := svc.CreateUser(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrUserNameRequired)
	})

	t.Run("add tickets provisions batch and counter together", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAdminService(repo)

		event, err := svc.CreateEvent(context.Background(), "Concert")
		require.NoError(t, err)

		tickets, err := svc.AddTickets(context.Background(), AddTicketsInput{
			EventID:  event.ID,
			Tier:     domain.TierVIP,
			Quantity: 4,
		})
		require.NoError(t, err)
		require.Len(t, tickets, 4)
		for _, ticket := range tickets {
			require.Equal(t, domain.TicketStatusAvailable, ticket.Status)
			require.Equal(t, domain.TierVIP, ticket.Tier)
		}
		require.Equal(t, 4, repo.counts[countKey{event.ID, domain.TierVIP}])
	})

	t.Run("add tickets validates tier and quantity", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo())

		_, err := svc.AddTickets(context.Background(), AddTicketsInput{EventID: 1, Tier: "balcony", Quantity: 2})
		require.ErrorIs(t, err, domain.ErrInvalidTier)

		_, err = svc.AddTickets(context.Background(), AddTicketsInput{EventID: 1, Tier: domain.TierGA, Quantity: 0})
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("add tickets to unknown event", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo())
		_, err := svc.AddTickets(context.Background(), AddTicketsInput{EventID: 99, Tier: domain.TierGA, Quantity: 1})
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("list events includes per-tier availability", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAdminService(repo)

		event, err := svc.CreateEvent(context.Background(), "Concert")
		require.NoError(t, err)
		_, err = svc.AddTickets(context.Background(), AddTicketsInput{EventID: event.ID, Tier: domain.TierGA, Quantity: 3})
		require.NoError(t, err)

		summaries, err := svc.ListEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		require.Equal(t, event.ID, summaries[0].Event.ID)
		require.Equal(t, []domain.TierCount{{EventID: event.ID, Tier: domain.TierGA, Available: 3}}, summaries[0].TierCounts)
	})
}

type fakeAdminRepo struct {
	users      map[int64]domain.User
	events     map[int64]domain.Event
	eventOrder []int64
	counts     map[countKey]int
	nextID     int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		users:  make(map[int64]domain.User),
		events: make(map[int64]domain.Event),
		counts: make(map[countKey]int),
		nextID: 1,
	}
}

func (f *fakeAdminRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeAdminRepo) CreateEvent(_ context.Context, name string) (domain.Event, error) {
	event := domain.Event{ID: f.nextID, Name: name}
	f.nextID++
	f.events[event.ID] = event
	f.eventOrder = append(f.eventOrder, event.ID)
	return event, nil
}

func (f *fakeAdminRepo) ListEvents(_ context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.eventOrder))
	for _, id := range f.eventOrder {
		events = append(events, f.events[id])
	}
	return events, nil
}

func (f *fakeAdminRepo) ListTierCounts(_ context.Context, eventID int64) ([]domain.TierCount, error) {
	var counts []domain.TierCount
	for _, tier := range domain.Tiers() {
		if available, ok := f.counts[countKey{eventID, tier}]; ok {
			counts = append(counts, domain.TierCount{EventID: eventID, Tier: tier, Available: available})
		}
	}
	return counts, nil
}

func (f *fakeAdminRepo) GetEventForUpdate(_ context.Context, eventID int64) (domain.Event, error) {
	event, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeAdminRepo) CreateUser(_ context.Context, name string) (domain.User, error) {
	user := domain.User{ID: f.nextID, Name: name}
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAdminRepo) InsertAvailableTickets(_ context.Context, eventID int64, tier domain.Tier, quantity int) ([]domain.Ticket, error) {
	if _, ok := f.events[eventID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	tickets := make([]domain.Ticket, 0, quantity)
	for i := 0; i < quantity; i++ {
		tickets = append(tickets, domain.Ticket{
			ID:      f.nextID,
			EventID: eventID,
			Tier:    tier,
			Status:  domain.TicketStatusAvailable,
		})
		f.nextID++
	}
	return tickets, nil
}

func (f *fakeAdminRepo) UpsertAvailableCount(_ context.Context, eventID int64, tier domain.Tier, delta int) error {
	f.counts[countKey{eventID, tier}] += delta
	return nil
}
