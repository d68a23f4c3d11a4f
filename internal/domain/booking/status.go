package booking

import (
	"errors"
	"strings"
)

// RequestStatus is the coarse approval status stored on the `requests` table.
// It evolves in parallel with the finer-grained TripStatus.
type RequestStatus string

const (
	StatusPending     RequestStatus = "PENDING"
	StatusUnderReview RequestStatus = "UNDER_REVIEW"
	StatusApproved    RequestStatus = "APPROVED"
	StatusRejected    RequestStatus = "REJECTED"
	StatusCompleted   RequestStatus = "COMPLETED"
)

var ErrInvalidRequestStatus = errors.New("invalid request status")

// ParseRequestStatus normalizes (uppercases+trims) and validates a status string.
func ParseRequestStatus(in string) (RequestStatus, error) {
	status := RequestStatus(strings.ToUpper(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidRequestStatus
}

// Valid reports whether status is one of the allowed request status constants.
func (status RequestStatus) Valid() bool {
	switch status {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the RequestStatus.
func (status RequestStatus) String() string {
	return string(status)
}

// CanTransitionTo specifies if the status can transition to the next status.
func (status RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch status {
	case StatusPending:
		return next == StatusUnderReview || next == StatusApproved || next == StatusRejected
	case StatusUnderReview:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted || next == StatusRejected
	case StatusRejected, StatusCompleted:
		return false
	default:
		return false
	}
}

// Terminal indicates if the status is in a terminal state.
func (status RequestStatus) Terminal() bool {
	return status == StatusRejected || status == StatusCompleted
}
