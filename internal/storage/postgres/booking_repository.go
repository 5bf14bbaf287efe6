package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketline/api/internal/domain"
)

// BookingRepository reads the ownership ledger; it never writes.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	const query = `SELECT id, name FROM users WHERE id = $1`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUserBookings returns the user's finalized tickets in append order.
func (r *BookingRepository) ListUserBookings(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	const query = `
SELECT t.id, t.event_id, t.tier, t.status, t.owner_id, t.held_at, t.finalized_at
FROM bookings b
JOIN tickets t ON t.id = b.ticket_id
WHERE b.user_id = $1
ORDER BY b.id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectTickets(rows)
}
