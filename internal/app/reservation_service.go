package app

import (
	"context"
	"time"

	"github.com/ticketline/api/internal/clock"
	"github.com/ticketline/api/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	GetAvailableCount(ctx context.Context, eventID int64, tier domain.Tier) (int, error)
	LeaseAvailableTickets(ctx context.Context, eventID int64, tier domain.Tier, quantity int, ownerID int64, heldAt time.Time) ([]domain.Ticket, error)
	AdjustAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error
}

type ReservationService struct {
	repo  ReservationRepository
	clock clock.Clock
}

func NewReservationService(repo ReservationRepository, clk clock.Clock) *ReservationService {
	return &ReservationService{
		repo:  repo,
		clock: clk,
	}
}

type ReserveInput struct {
	UserID  int64
	EventID int64
	Lines   []domain.TierQuantity
}

// Reserve moves the requested quantity of tickets per tier from available to
// held in one transaction. The request is all-or-nothing across tiers: any
// shortfall or lease race rolls back every status change and counter move.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) ([]domain.Ticket, error) {
	for _, line := range in.Lines {
		if !line.Tier.Valid() {
			return nil, domain.ErrInvalidTier
		}
		if line.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	now := s.clock.Now()
	var reserved []domain.Ticket

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetUser(txCtx, in.UserID); err != nil {
			return err
		}

		// The event row lease serializes every transaction that moves this
		// event's tier counters: reservations and release rollbacks alike.
		if _, err := s.repo.GetEventForUpdate(txCtx, in.EventID); err != nil {
			return err
		}

		for _, line := range in.Lines {
			available, err := s.repo.GetAvailableCount(txCtx, in.EventID, line.Tier)
			if err != nil {
				return err
			}
			if line.Quantity > available {
				return &domain.InsufficientInventoryError{
					Tier:      line.Tier,
					Available: available,
					Requested: line.Quantity,
				}
			}
		}

		for _, line := range in.Lines {
			if line.Quantity == 0 {
				continue
			}
			tickets, err := s.repo.LeaseAvailableTickets(txCtx, in.EventID, line.Tier, line.Quantity, in.UserID, now)
			if err != nil {
				return err
			}
			if len(tickets) < line.Quantity {
				// Lost a race against a competitor whose decrement has not
				// committed yet. Rare under the event lease, but possible.
				return domain.ErrReservationConflict
			}
			// Decrement by what was actually leased, not what was requested.
			if err := s.repo.AdjustAvailableCount(txCtx, in.EventID, line.Tier, -len(tickets)); err != nil {
				return err
			}
			reserved = append(reserved, tickets...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}
