package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTransitionPhase(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		phase    JobPhase
		allowed  bool
	}{
		{JobStatusOpen, JobStatusInProgress, JobPhaseInProgress, true},
		{JobStatusOpen, JobStatusCancelled, JobPhaseCancelled, true},
		{JobStatusOpen, JobStatusCompleted, "", false},
		{JobStatusInProgress, JobStatusCompleted, JobPhaseCompleted, true},
		{JobStatusInProgress, JobStatusCancelled, JobPhaseCancelled, true},
		{JobStatusInProgress, JobStatusOpen, "", false},
		{JobStatusCompleted, JobStatusOpen, "", false},
		{JobStatusCompleted, JobStatusInProgress, "", false},
		{JobStatusCancelled, JobStatusOpen, JobPhaseOpen, true},
		{JobStatusCancelled, JobStatusInProgress, "", false},
	}

	for _, tc := range cases {
		phase, ok := JobTransitionPhase(tc.from, tc.to)
		assert.Equal(t, tc.allowed, ok, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.phase, phase, "%s -> %s", tc.from, tc.to)
	}
}

func TestCanBookingTransition(t *testing.T) {
	assert.True(t, CanBookingTransition(BookingStatusActive, BookingStatusCompleted))
	assert.True(t, CanBookingTransition(BookingStatusActive, BookingStatusCancelled))
	assert.True(t, CanBookingTransition(BookingStatusActive, BookingStatusDisputed))
	assert.True(t, CanBookingTransition(BookingStatusCompleted, BookingStatusDisputed))
	assert.True(t, CanBookingTransition(BookingStatusDisputed, BookingStatusActive))

	assert.False(t, CanBookingTransition(BookingStatusCompleted, BookingStatusActive))
	assert.False(t, CanBookingTransition(BookingStatusCancelled, BookingStatusActive))
	assert.False(t, CanBookingTransition(BookingStatusCancelled, BookingStatusDisputed))
	assert.False(t, CanBookingTransition(BookingStatusActive, BookingStatusActive))
}
