package app

import (
	"context"

	"github.com/ticketline/api/internal/domain"
)

type AdminRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, name string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListTierCounts(ctx context.Context, eventID int64) ([]domain.TierCount, error)
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	CreateUser(ctx context.Context, name string) (domain.User, error)
	InsertAvailableTickets(ctx context.Context, eventID int64, tier domain.Tier, quantity int) ([]domain.Ticket, error)
	UpsertAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error
}

type AdminService struct {
	repo AdminRepository
}

func NewAdminService(repo AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

func (s *AdminService) CreateEvent(ctx context.Context, name string) (domain.Event, error) {
	if name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	return s.repo.CreateEvent(ctx, name)
}

// EventSummary pairs an event with its per-tier availability.
type EventSummary struct {
	Event      domain.Event
	TierCounts []domain.TierCount
}

func (s *AdminService) ListEvents(ctx context.Context) ([]EventSummary, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		counts, err := s.repo.ListTierCounts(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, EventSummary{Event: event, TierCounts: counts})
	}
	return summaries, nil
}

func (s *AdminService) CreateUser(ctx context.Context, name string) (domain.User, error) {
	if name == "" {
		return domain.User{}, domain.ErrUserNameRequired
	}
	return s.repo.CreateUser(ctx, name)
}

type AddTicketsInput struct {
	EventID  int64
	Tier     domain.Tier
	Quantity int
}

// AddTickets provisions a batch of available tickets and bumps the tier
// counter in the same transaction, so the counter matches the ticket table
// from the moment the batch exists.
func (s *AdminService) AddTickets(ctx context.Context, in AddTicketsInput) ([]domain.Ticket, error) {
	if !in.Tier.Valid() {
		return nil, domain.ErrInvalidTier
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var created []domain.Ticket
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetEventForUpdate(txCtx, in.EventID); err != nil {
			return err
		}
		tickets, err := s.repo.InsertAvailableTickets(txCtx, in.EventID, in.Tier, in.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.UpsertAvailableCount(txCtx, in.EventID, in.Tier, len(tickets)); err != nil {
			return err
		}
		created = tickets
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
