package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ticketline/api/internal/domain"
)

const ticketColumns = `id, event_id, tier, status, owner_id, held_at, finalized_at`

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	var tier, status string
	err := row.Scan(&t.ID, &t.EventID, &tier, &status, &t.OwnerID, &t.HeldAt, &t.FinalizedAt)
	if err != nil {
		return domain.Ticket{}, err
	}
	t.Tier = domain.Tier(tier)
	t.Status = domain.TicketStatus(status)
	return t, nil
}

func collectTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}
