// README: Assignment status definitions and double-booking detection.
package schedule

import "crewmatch/internal/types"

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDeclined   Status = "declined"
)

// blockingStatuses are the commitments that keep a worker from being
// double-booked. Terminal and negative statuses never block.
var blockingStatuses = map[Status]bool{
	StatusAccepted:   true,
	StatusConfirmed:  true,
	StatusInProgress: true,
}

// Blocking reports whether an assignment in this status occupies the worker.
func (s Status) Blocking() bool { return blockingStatuses[s] }

// Assignment is one existing commitment of a worker, as seen by conflict
// detection. The window carries its own date, so an overnight shift started
// the previous evening still collides with a same-day morning request.
type Assignment struct {
	WorkerID types.ID
	Window   TimeWindow
	Status   Status
}

// HasConflict reports whether the requested window collides with any blocking
// assignment. Returns on the first collision found.
func HasConflict(requested TimeWindow, existing []Assignment) bool {
	for _, a := range existing {
		if !a.Status.Blocking() {
			continue
		}
		if requested.Overlaps(a.Window) {
			return true
		}
	}
	return false
}
