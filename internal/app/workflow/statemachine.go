// Package workflow holds the approval state machine for leave requests.
// It is pure logic: given the current status, the acting user and the
// requested action it decides the next status and which audit columns the
// store must write. Persistence stays in the repositories; the service layer
// applies a decision with a conditional update so a stale caller can never
// advance a request twice.
package workflow

import (
	"errors"
	"time"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// Action is a reviewer decision on a pending request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

// ParseAction returns the action for a route segment.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionApprove, ActionDecline:
		return Action(s), true
	}
	return "", false
}

var (
	// ErrNotActionable means the request's current status defines no
	// transition for the attempted action. Terminal and unknown statuses
	// land here.
	ErrNotActionable = errors.New("request is not actionable in its current status")

	// ErrWrongActor means the actor's role may not act at this stage.
	ErrWrongActor = errors.New("actor role cannot act at this stage")

	// ErrStreamScope means the request belongs to a stream outside the
	// actor's review scope.
	ErrStreamScope = errors.New("request is outside the actor's stream")

	// ErrUnknownAction is returned for actions outside the closed set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrCannotSubmit means the submitter role has no entry point in the
	// approval chain.
	ErrCannotSubmit = errors.New("role cannot submit leave requests")
)

// Actor is the authenticated user attempting a submission or transition.
type Actor struct {
	ID     string
	Role   models.Role
	Stream models.Stream
}

// Decision describes one legal transition and the audit columns it writes.
// From doubles as the guard for the conditional update: the store must only
// apply the decision to a row still in that status.
type Decision struct {
	From models.LeaveStatus
	To   models.LeaveStatus

	// SetPCReview marks pc_reviewed_by/pc_reviewed_at for the acting PC.
	SetPCReview bool
	// SetAdminReview marks reviewed_by/reviewed_at for the acting admin.
	SetAdminReview bool
	// SetDeclinedBy marks declined_by for the acting admin.
	SetDeclinedBy bool
}

// InitialStatus selects the entry point of the approval chain for a
// submitter role. Students and staff enter PC review; a PC self-filing
// implicitly satisfies PC review and enters admin review directly.
func InitialStatus(role models.Role) (models.LeaveStatus, error) {
	switch role {
	case models.RoleStudent, models.RoleStaff:
		return models.StatusPendingPC, nil
	case models.RolePC:
		return models.StatusPendingAdmin, nil
	case models.RoleAdmin:
		return "", ErrCannotSubmit
	}
	return "", ErrCannotSubmit
}

// Decide validates a transition attempt against the transition table:
//
//	pending_pc    --approve (pc)----> pending_admin
//	pending_pc    --decline (pc)----> declined
//	pending_admin --approve (admin)-> approved
//	pending_admin --decline (admin)-> declined
//
// approved and declined are terminal. PCs are scoped to their own stream;
// admin review is global.
func Decide(current models.LeaveStatus, actor Actor, action Action, requestStream models.Stream) (Decision, error) {
	if action != ActionApprove && action != ActionDecline {
		return Decision{}, ErrUnknownAction
	}

	switch current {
	case models.StatusPendingPC:
		if actor.Role != models.RolePC {
			return Decision{}, ErrWrongActor
		}
		if actor.Stream != requestStream {
			return Decision{}, ErrStreamScope
		}
		d := Decision{From: models.StatusPendingPC, SetPCReview: true}
		if action == ActionApprove {
			d.To = models.StatusPendingAdmin
		} else {
			d.To = models.StatusDeclined
		}
		return d, nil

	case models.StatusPendingAdmin:
		if actor.Role != models.RoleAdmin {
			return Decision{}, ErrWrongActor
		}
		d := Decision{From: models.StatusPendingAdmin, SetAdminReview: true}
		if action == ActionApprove {
			d.To = models.StatusApproved
		} else {
			d.To = models.StatusDeclined
			d.SetDeclinedBy = true
		}
		return d, nil

	case models.StatusApproved, models.StatusDeclined:
		return Decision{}, ErrNotActionable
	}

	// Unrecognized stored status: render as pending but never actionable.
	return Decision{}, ErrNotActionable
}

// Apply mutates an in-memory request with the decision's status and audit
// fields. The authoritative write is the repository's conditional update;
// Apply keeps the caller's copy consistent with it.
func Apply(req *models.LeaveRequest, d Decision, actor Actor, now time.Time) {
	req.Status = d.To
	if d.SetPCReview {
		id := actor.ID
		t := now
		req.PCReviewedBy = &id
		req.PCReviewedAt = &t
	}
	if d.SetAdminReview {
		id := actor.ID
		t := now
		req.ReviewedBy = &id
		req.ReviewedAt = &t
	}
	if d.SetDeclinedBy {
		id := actor.ID
		req.DeclinedBy = &id
	}
}
