package app

import (
	"context"
	"slices"
	"time"

	"github.com/ticketline/api/internal/clock"
	"github.com/ticketline/api/internal/domain"
)

type ConfirmationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error)
	GetTicketForUpdate(ctx context.Context, ticketID int64) (domain.Ticket, error)
	FinalizeTickets(ctx context.Context, ticketIDs []int64, finalizedAt time.Time) error
	ReleaseTickets(ctx context.Context, ticketIDs []int64) error
	AdjustAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error
	AppendBookings(ctx context.Context, userID int64, ticketIDs []int64, createdAt time.Time) error
}

type ConfirmationService struct {
	repo  ConfirmationRepository
	clock clock.Clock
}

func NewConfirmationService(repo ConfirmationRepository, clk clock.Clock) *ConfirmationService {
	return &ConfirmationService{
		repo:  repo,
		clock: clk,
	}
}

type ConfirmInput struct {
	UserID           int64
	TicketIDs        []int64
	PaymentSucceeded bool
}

type ConfirmResult struct {
	Finalized []domain.Ticket
	Released  bool
	Message   string
}

const releasedMessage = "payment failed, tickets returned to the pool"

// Confirm resolves a set of held tickets in one transaction: finalizes them
// when payment succeeded, otherwise returns them to the pool and restores the
// tier counters they were reserved against. Any validation failure aborts the
// whole call; a subset is never confirmed.
func (s *ConfirmationService) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	now := s.clock.Now()
	var result ConfirmResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetUser(txCtx, in.UserID); err != nil {
			return err
		}

		seen := make(map[int64]struct{}, len(in.TicketIDs))
		tickets := make([]domain.Ticket, 0, len(in.TicketIDs))
		ids := make([]int64, 0, len(in.TicketIDs))
		for _, id := range in.TicketIDs {
			if _, dup := seen[id]; dup {
				return domain.ErrDuplicateTicket
			}
			seen[id] = struct{}{}

			ticket, err := s.repo.GetTicketForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			if ticket.OwnerID != nil && *ticket.OwnerID != in.UserID {
				return domain.ErrOwnershipMismatch
			}
			if ticket.Status != domain.TicketStatusHeld {
				return &domain.InvalidStateError{TicketID: ticket.ID, Status: ticket.Status}
			}
			tickets = append(tickets, ticket)
			ids = append(ids, ticket.ID)
		}

		if !in.PaymentSucceeded {
			if err := s.releaseHeld(txCtx, tickets, ids); err != nil {
				return err
			}
			result = ConfirmResult{Released: true, Message: releasedMessage}
			return nil
		}

		if err := s.repo.FinalizeTickets(txCtx, ids, now); err != nil {
			return err
		}
		if err := s.repo.AppendBookings(txCtx, in.UserID, ids, now); err != nil {
			return err
		}

		// Counters stay untouched on success: they were decremented when the
		// tickets were reserved and the tickets remain off the market.
		finalized := make([]domain.Ticket, len(tickets))
		for i, ticket := range tickets {
			at := now
			ticket.Status = domain.TicketStatusFinalized
			ticket.FinalizedAt = &at
			finalized[i] = ticket
		}
		result = ConfirmResult{Finalized: finalized}
		return nil
	})
	if err != nil {
		return ConfirmResult{}, err
	}
	return result, nil
}

// releaseHeld returns the tickets to the pool and restores the counters they
// were reserved against. Event rows are leased in ascending id order so two
// concurrent releases can never wait on each other in a cycle.
func (s *ConfirmationService) releaseHeld(ctx context.Context, tickets []domain.Ticket, ids []int64) error {
	type tierKey struct {
		eventID int64
		tier    domain.Tier
	}
	counts := make(map[tierKey]int)
	var eventIDs []int64
	for _, ticket := range tickets {
		counts[tierKey{ticket.EventID, ticket.Tier}]++
		if !slices.Contains(eventIDs, ticket.EventID) {
			eventIDs = append(eventIDs, ticket.EventID)
		}
	}
	slices.Sort(eventIDs)

	for _, eventID := range eventIDs {
		if _, err := s.repo.GetEventForUpdate(ctx, eventID); err != nil {
			return err
		}
	}
	for _, eventID := range eventIDs {
		for _, tier := range domain.Tiers() {
			if n := counts[tierKey{eventID, tier}]; n > 0 {
				if err := s.repo.AdjustAvailableCount(ctx, eventID, tier, n); err != nil {
					return err
				}
			}
		}
	}
	return s.repo.ReleaseTickets(ctx, ids)
}
