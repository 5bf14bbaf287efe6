package domain

import "time"

// Booking is one row of the append-only ownership ledger tying a user to a
// finalized ticket. Written only by the confirmation path on success.
type Booking struct {
	ID        int64
	UserID    int64
	TicketID  int64
	CreatedAt time.Time
}
