package models

type UserStatus string
type UserRole string
type JobStatus string
type JobPhase string
type ApplicationStatus string
type BookingStatus string
type MilestoneStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleClient UserRole = "client"
	UserRoleWorker UserRole = "worker"
	UserRoleAdmin  UserRole = "admin"

	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"

	// JobPhase is the finer-grained job state tracked alongside JobStatus.
	JobPhaseOpen       JobPhase = "open"
	JobPhaseProposed   JobPhase = "proposed"
	JobPhaseAccepted   JobPhase = "accepted"
	JobPhaseBooked     JobPhase = "booked"
	JobPhaseInProgress JobPhase = "in_progress"
	JobPhaseCompleted  JobPhase = "completed"
	JobPhaseCancelled  JobPhase = "cancelled"
	JobPhaseDisputed   JobPhase = "disputed"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusDisputed  BookingStatus = "disputed"

	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
)

// RejectionReasonSelected is stored on sibling applications rejected by the
// accept cascade.
const RejectionReasonSelected = "Another applicant was selected"

// jobTransitions is the single authoritative job state table. Each legal
// coarse transition names the fine phase it lands on, so JobStatus and
// JobPhase cannot drift apart at a transition site.
var jobTransitions = map[JobStatus]map[JobStatus]JobPhase{
	JobStatusOpen: {
		JobStatusInProgress: JobPhaseInProgress,
		JobStatusCancelled:  JobPhaseCancelled,
	},
	JobStatusInProgress: {
		JobStatusCompleted: JobPhaseCompleted,
		JobStatusCancelled: JobPhaseCancelled,
	},
	JobStatusCompleted: {},
	JobStatusCancelled: {
		JobStatusOpen: JobPhaseOpen,
	},
}

// JobTransitionPhase reports whether from → to is a legal job transition and
// returns the fine phase the job lands on.
func JobTransitionPhase(from, to JobStatus) (JobPhase, bool) {
	targets, ok := jobTransitions[from]
	if !ok {
		return "", false
	}
	phase, ok := targets[to]
	return phase, ok
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled, BookingStatusDisputed},
	BookingStatusCompleted: {BookingStatusDisputed},
	BookingStatusDisputed:  {BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
}

// CanBookingTransition reports whether from → to is permitted by the booking
// state table.
func CanBookingTransition(from, to BookingStatus) bool {
	for _, t := range bookingTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
