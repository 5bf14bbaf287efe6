package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrReservationConflict = errors.New("reservation conflict")
	ErrOwnershipMismatch   = errors.New("ticket belongs to another user")
	ErrDuplicateTicket     = errors.New("duplicate ticket id")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidTier         = errors.New("invalid tier")
	ErrEventNameRequired   = errors.New("event name required")
	ErrUserNameRequired    = errors.New("user name required")
)

// InsufficientInventoryError reports a demand line exceeding the tier's
// available count. The whole reservation aborts; no partial effect remains.
type InsufficientInventoryError struct {
	Tier      Tier
	Available int
	Requested int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for tier %s: %d available, %d requested", e.Tier, e.Available, e.Requested)
}

// InvalidStateError reports a ticket that is not in the status the requested
// transition needs, e.g. confirming an already finalized ticket.
type InvalidStateError struct {
	TicketID int64
	Status   TicketStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("ticket %d is %s, expected %s", e.TicketID, e.Status, TicketStatusHeld)
}
