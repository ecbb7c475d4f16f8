package models

// Role defines the actor role type. A role is assigned once at signup and
// never changes; routing and permitted actions derive from it.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RolePC      Role = "pc"
	RoleAdmin   Role = "admin"
)

// ParseRole returns the closed role value for a stored string.
// The second return value is false for unknown or empty input.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleStaff, RolePC, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Stream is an academic department grouping used to scope reviewer
// visibility and assignment.
type Stream string

const (
	StreamCSE   Stream = "CSE"
	StreamECE   Stream = "ECE"
	StreamEEE   Stream = "EEE"
	StreamMECH  Stream = "MECH"
	StreamCIVIL Stream = "CIVIL"
)

// Streams lists all known streams in display order.
var Streams = []Stream{StreamCSE, StreamECE, StreamEEE, StreamMECH, StreamCIVIL}

// ParseStream returns the stream value for a stored string.
func ParseStream(s string) (Stream, bool) {
	for _, st := range Streams {
		if Stream(s) == st {
			return st, true
		}
	}
	return "", false
}

// LeaveStatus is the approval workflow state of a leave request.
type LeaveStatus string

const (
	StatusPendingPC    LeaveStatus = "pending_pc"
	StatusPendingAdmin LeaveStatus = "pending_admin"
	StatusApproved     LeaveStatus = "approved"
	StatusDeclined     LeaveStatus = "declined"
)

// ParseStatus returns the status value for a stored string, strictly.
func ParseStatus(s string) (LeaveStatus, bool) {
	switch LeaveStatus(s) {
	case StatusPendingPC, StatusPendingAdmin, StatusApproved, StatusDeclined:
		return LeaveStatus(s), true
	}
	return "", false
}

// NormalizeStatus maps an unrecognized stored status to pending_pc for
// display purposes, so rows written out of band still render on the
// dashboards. Transitions always match the stored value strictly, which
// keeps such rows non-actionable.
func NormalizeStatus(s string) LeaveStatus {
	if status, ok := ParseStatus(s); ok {
		return status
	}
	return StatusPendingPC
}

// Terminal reports whether no further transition is defined from the status.
func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}
