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

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ReservationRepository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
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

func (r *ReservationRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
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

func (r *ReservationRepository) GetAvailableCount(ctx context.Context, eventID int64, tier domain.Tier) (int, error) {
	const query = `SELECT available FROM tier_counts WHERE event_id = $1 AND tier = $2`
	var available int
	err := r.queryRow(ctx, query, eventID, tier).Scan(&available)
	if err != nil {
		if err == pgx.ErrNoRows {
			// No counter row means no tickets were ever provisioned here.
			return 0, nil
		}
		return 0, fmt.Errorf("get available count: %w", err)
	}
	return available, nil
}

// LeaseAvailableTickets flips up to quantity available tickets to held in one
// statement. SKIP LOCKED makes the inner select pass over rows already leased
// by a concurrent uncommitted transaction, so competing callers converge on
// disjoint tickets instead of queueing. Fewer rows than requested means the
// caller lost a race and must abort.
func (r *ReservationRepository) LeaseAvailableTickets(ctx context.Context, eventID int64, tier domain.Tier, quantity int, ownerID int64, heldAt time.Time) ([]domain.Ticket, error) {
	const stmt = `
UPDATE tickets
SET status = 'held', owner_id = $4, held_at = $5
WHERE id IN (
	SELECT id
	FROM tickets
	WHERE event_id = $1 AND tier = $2 AND status = 'available'
	ORDER BY id
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
RETURNING ` + ticketColumns

	rows, err := r.query(ctx, stmt, eventID, tier, quantity, ownerID, heldAt)
	if err != nil {
		return nil, fmt.Errorf("lease tickets: %w", err)
	}
	return collectTickets(rows)
}

func (r *ReservationRepository) AdjustAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error {
	return adjustAvailableCount(ctx, r.exec, eventID, tier, delta)
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

type execFunc func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

// adjustAvailableCount moves the denormalized counter. The available >= 0
// check constraint backstops the count validation done under the event lease.
func adjustAvailableCount(ctx context.Context, exec execFunc, eventID int64, tier domain.Tier, delta int) error {
	const stmt = `UPDATE tier_counts SET available = available + $3 WHERE event_id = $1 AND tier = $2`

	tag, err := exec(ctx, stmt, eventID, tier, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrReservationConflict
		}
		return fmt.Errorf("adjust available count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("adjust available count: no counter row for event %d tier %s", eventID, tier)
	}
	return nil
}
