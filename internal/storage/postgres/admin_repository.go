package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ticketline/api/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AdminRepository) CreateEvent(ctx context.Context, name string) (domain.Event, error) {
	const stmt = `INSERT INTO events (name) VALUES ($1) RETURNING id, name`
	var e domain.Event
	if err := r.queryRow(ctx, stmt, name).Scan(&e.ID, &e.Name); err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (r *AdminRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT id, name FROM events ORDER BY id ASC`
	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(&event.ID, &event.Name); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *AdminRepository) ListTierCounts(ctx context.Context, eventID int64) ([]domain.TierCount, error) {
	const query = `
SELECT event_id, tier, available
FROM tier_counts
WHERE event_id = $1
ORDER BY tier ASC`

	rows, err := r.query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tier counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.TierCount
	for rows.Next() {
		var count domain.TierCount
		var tier string
		if err := rows.Scan(&count.EventID, &tier, &count.Available); err != nil {
			return nil, fmt.Errorf("scan tier count: %w", err)
		}
		count.Tier = domain.Tier(tier)
		counts = append(counts, count)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tier counts: %w", rows.Err())
	}
	return counts, nil
}

func (r *AdminRepository) GetEventForUpdate(ctx context.Context, eventID int64) (domain.Event, error) {
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

func (r *AdminRepository) CreateUser(ctx context.Context, name string) (domain.User, error) {
	const stmt = `INSERT INTO users (name) VALUES ($1) RETURNING id, name`
	var u domain.User
	if err := r.queryRow(ctx, stmt, name).Scan(&u.ID, &u.Name); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// InsertAvailableTickets is the bulk provisioning loop: an unconditional
// insert of quantity rows in status available.
func (r *AdminRepository) InsertAvailableTickets(ctx context.Context, eventID int64, tier domain.Tier, quantity int) ([]domain.Ticket, error) {
	const stmt = `
INSERT INTO tickets (event_id, tier, status)
SELECT $1, $2, 'available'
FROM generate_series(1, $3)
RETURNING ` + ticketColumns

	rows, err := r.query(ctx, stmt, eventID, tier, quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("insert tickets: %w", err)
	}
	return collectTickets(rows)
}

func (r *AdminRepository) UpsertAvailableCount(ctx context.Context, eventID int64, tier domain.Tier, delta int) error {
	const stmt = `
INSERT INTO tier_counts (event_id, tier, available)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, tier) DO UPDATE
SET available = tier_counts.available + EXCLUDED.available`

	_, err := r.exec(ctx, stmt, eventID, tier, delta)
	if err != nil {
		return fmt.Errorf("upsert available count: %w", err)
	}
	return nil
}

func (r *AdminRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AdminRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *AdminRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
