package domain

// Event is the lock domain for counter consistency: every transaction that
// moves an event's tier counters first takes an exclusive lease on the event
// row, so counter mutations for one event are serialized while unrelated
// events proceed in parallel.
type Event struct {
	ID   int64
	Name string
}
