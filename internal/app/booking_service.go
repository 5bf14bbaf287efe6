package app

import (
	"context"

	"github.com/ticketline/api/internal/domain"
)

type BookingRepository interface {
	GetUser(ctx context.Context, userID int64) (domain.User, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Ticket, error)
}

// BookingService is the read side of the ownership ledger: the tickets a user
// has finalized, in the order they were booked.
type BookingService struct {
	repo BookingRepository
}

func NewBookingService(repo BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUserBookings(ctx, userID)
}
