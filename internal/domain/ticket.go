package domain

import "time"

type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "available"
	TicketStatusHeld      TicketStatus = "held"
	TicketStatusFinalized TicketStatus = "finalized"
)

// Ticket is one sellable inventory unit. OwnerID is set exactly while the
// ticket is held or finalized; FinalizedAt is set exactly once it is
// finalized. Status moves available -> held -> finalized, with held -> available
// on a failed confirmation; finalized is terminal.
type Ticket struct {
	ID          int64
	EventID     int64
	Tier        Tier
	Status      TicketStatus
	OwnerID     *int64
	HeldAt      *time.Time
	FinalizedAt *time.Time
}

// TierQuantity is one line of a reservation demand.
type TierQuantity struct {
	Tier     Tier
	Quantity int
}

// TierCount is the denormalized available-ticket counter for one
// (event, tier) pair. Outside an in-flight transaction it must equal the
// number of available tickets for that pair.
type TierCount struct {
	EventID   int64
	Tier      Tier
	Available int
}
