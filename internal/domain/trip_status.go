package domain

// TripStatus is the lifecycle of a trip. A trip is created pending, a driver
// takes it active, and it ends completed or cancelled. completed and
// cancelled are terminal.
type TripStatus string

const (
	TripPending   TripStatus = "pending"
	TripActive    TripStatus = "active"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripPending, TripActive, TripCompleted, TripCancelled:
		return TripStatus(s), true
	}
	return "", false
}

func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

// tripSources lists, per target status, the statuses a trip may come from.
// pending has no sources: trips are only ever created pending.
var tripSources = map[TripStatus][]TripStatus{
	TripActive:    {TripPending},
	TripCompleted: {TripActive},
	TripCancelled: {TripPending, TripActive},
}

// AllowedSources returns the statuses from which `target` may be reached,
// nil when nothing transitions into it.
func AllowedSources(target TripStatus) []TripStatus {
	return tripSources[target]
}

func CanTransition(from, to TripStatus) bool {
	for _, s := range tripSources[to] {
		if s == from {
			return true
		}
	}
	return false
}
