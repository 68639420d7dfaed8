package tandem

// Pair is a single key-value attribute of an Event.
type Pair struct {
	Key   string
	Value string
}

// Event is an entry of the append-only log produced while delivering a
// transaction. Events are collected on the DeliverResult and handed to the
// host for indexing; emission is fire-and-forget from the handler's point of
// view.
type Event struct {
	Type       string
	Attributes []Pair
}

// NewEvent builds an event of the given type from key-value pairs.
func NewEvent(typ string, pairs ...Pair) Event {
	return Event{
		Type:       typ,
		Attributes: pairs,
	}
}

// CheckResult captures any non-error result of a check,
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform.
	GasAllocated int64
}

// DeliverResult captures any non-error result of a delivery,
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Events are indexed by the host and consumed by external observers.
	Events []Event
	// GasUsed is the amount of gas actually consumed.
	GasUsed int64
}
