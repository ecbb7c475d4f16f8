// Package auth holds the role router and the scope rules that gate what an
// authenticated actor may see and do. The HTTP middleware enforces the same
// rules again at the route level; both checks are intentional (the original
// system also paired UI gates with row-level policies).
package auth

import (
	"errors"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// Common errors specific to authorization
var (
	ErrPermissionDenied = errors.New("you don't have permission for this action")
)

// Home destinations, one per role. These mirror the route groups the
// frontends mount their dashboards under.
const (
	HomeStudent = "/student"
	HomeStaff   = "/staff"
	HomePC      = "/pc"
	HomeAdmin   = "/admin"
)

// ResolveHome returns the single home destination for a role. An unknown or
// empty role resolves to the student home: the stored data may predate the
// role column and the dashboards expect somewhere to land. Callers should
// log the fallback so bad rows surface in operations instead of hiding.
func ResolveHome(role models.Role) (string, bool) {
	switch role {
	case models.RoleStudent:
		return HomeStudent, true
	case models.RoleStaff:
		return HomeStaff, true
	case models.RolePC:
		return HomePC, true
	case models.RoleAdmin:
		return HomeAdmin, true
	}
	return HomeStudent, false
}

// CanView reports whether the actor may read a leave request.
// Submitters see their own requests; PCs additionally see requests of their
// stream; staff see their own stream's requests; admin visibility is global.
func CanView(actorID string, role models.Role, stream models.Stream, req *models.LeaveRequest) bool {
	if req.RequestedBy == actorID {
		return true
	}
	switch role {
	case models.RoleAdmin:
		return true
	case models.RolePC, models.RoleStaff:
		return req.Stream == stream
	case models.RoleStudent:
		return false
	}
	return false
}

// CanDelete reports whether the actor may hard-delete a leave request.
// The owner may always delete; a PC may delete requests within their stream;
// admin deletion is global. There is no soft delete.
func CanDelete(actorID string, role models.Role, stream models.Stream, req *models.LeaveRequest) bool {
	if req.RequestedBy == actorID {
		return true
	}
	switch role {
	case models.RoleAdmin:
		return true
	case models.RolePC:
		return req.Stream == stream
	}
	return false
}
