package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketline/api/internal/domain"
)

type ConfirmationRepository struct {
	pool *pgxpool.Pool
}

func NewConfirmationRepository(pool *pgxpool.Pool) *ConfirmationRepository {
	return &ConfirmationRepository{pool: pool}
}

func (r *ConfirmationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ConfirmationRepository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	const query = `SELECT id, name FROM users WHERE id = $1`
	var u domain.User
	err := r.queryRow(ctx, query, userID).Scan(&u.ID, &u.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *ConfirmationRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `SELECT id, name FROM events WHERE id = $1 FOR UPDATE`
	var e domain.Event
	err := r.queryRow(ctx, query, eventID).Scan(&e.ID, &e.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *ConfirmationRepository) GetTicketForUpdate(ctx context.Context, ticketID int64) (domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`

	ticket, err := scanTicket(r.queryRow(ctx, query, ticketID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

func (r *ConfirmationRepository) FinalizeTickets(ctx context.Context, ticketIDs []int64, finalizedAt time.Time) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	const stmt = `UPDATE tickets SET status = 'finalized', finalized_at = $2 WHERE id = ANY($1)`
	tag, err := r.exec(ctx, stmt, ticketIDs, finalizedAt)
	if err != nil {
		return fmt.Errorf("finalize tickets: %w", err)
	}
	if int(tag.RowsAffected()) != len(ticketIDs) {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *ConfirmationRepository) ReleaseTickets(ctx context.Context, ticketIDs []int64) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	const stmt = `UPDATE tickets SET status = 'available', owner_id = NULL, held_at = NULL WHERE id = ANY($1)`
	tag, err := r.exec(ctx, stmt, ticketIDs)
	if err != nil {
		return fmt.Errorf("release tickets: %w", err)
	}
	if int(tag.RowsAffected()) != len(ticketIDs) {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *ConfirmationRepository) AdjustAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error {
	return adjustAvailableCount(ctx, r.exec, eventID, tier, delta)
}

// AppendBookings writes one ledger row per ticket, preserving the order the
// ids were presented in.
func (r *ConfirmationRepository) AppendBookings(ctx context.Context, userID int64, ticketIDs []int64, createdAt time.Time) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	const stmt = `
INSERT INTO bookings (user_id, ticket_id, created_at)
SELECT $1, unnest($2::bigint[]), $3`

	_, err := r.exec(ctx, stmt, userID, ticketIDs, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTicket
		}
		return fmt.Errorf("append bookings: %w", err)
	}
	return nil
}

func (r *ConfirmationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ConfirmationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
