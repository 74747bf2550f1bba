package yard

// Status is a vehicle's position in the receiving-yard lifecycle.
// Persisted and serialized as its display string.
type Status string

const (
	StatusStaging   Status = "Staging"
	StatusCalledIn  Status = "Called In"
	StatusUnloading Status = "Unloading"
	StatusCompleted Status = "Completed"
	StatusDeparted  Status = "Departed"
)

// canonicalOrder is the only path a vehicle may take through the yard.
var canonicalOrder = []Status{
	StatusStaging,
	StatusCalledIn,
	StatusUnloading,
	StatusCompleted,
	StatusDeparted,
}

// forwardTransition maps each status to the single status that may follow it.
// Terminal state Departed has no entry.
var forwardTransition = map[Status]Status{
	StatusStaging:   StatusCalledIn,
	StatusCalledIn:  StatusUnloading,
	StatusUnloading: StatusCompleted,
	StatusCompleted: StatusDeparted,
}

// AllStatuses returns the lifecycle states in canonical order.
func AllStatuses() []Status {
	out := make([]Status, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	_, ok := rank(s)
	return ok
}

// CanTransition reports whether from -> to is a legal forward step.
// There is no skipping and no going backward.
func CanTransition(from, to Status) bool {
	next, ok := forwardTransition[from]
	return ok && next == to
}

func rank(s Status) (int, bool) {
	for i, c := range canonicalOrder {
		if c == s {
			return i, true
		}
	}
	return 0, false
}

// DefaultStatusTexts returns the built-in display label for every status.
func DefaultStatusTexts() map[Status]string {
	return map[Status]string{
		StatusStaging:   "In Staging Area",
		StatusCalledIn:  "Called In",
		StatusUnloading: "Unloading",
		StatusCompleted: "Unloading Completed",
		StatusDeparted:  "Departed",
	}
}
