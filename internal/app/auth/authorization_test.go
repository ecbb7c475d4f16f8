package auth

import (
	"testing"

	"github.com/SaSee1722/leavex/internal/app/models"
)

func TestResolveHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role  models.Role
		home  string
		known bool
	}{
		{models.RoleStudent, HomeStudent, true},
		{models.RoleStaff, HomeStaff, true},
		{models.RolePC, HomePC, true},
		{models.RoleAdmin, HomeAdmin, true},
		{models.Role(""), HomeStudent, false},
		{models.Role("superuser"), HomeStudent, false},
	}

	for _, tc := range tests {
		home, known := ResolveHome(tc.role)
		if home != tc.home || known != tc.known {
			t.Fatalf("ResolveHome(%q) = (%s, %v), expected (%s, %v)", tc.role, home, known, tc.home, tc.known)
		}
	}
}

func TestCanView(t *testing.T) {
	t.Parallel()

	req := &models.LeaveRequest{RequestedBy: "owner-1", Stream: models.StreamCSE}

	t.Run("owner always sees own request", func(t *testing.T) {
		t.Parallel()
		if !CanView("owner-1", models.RoleStudent, models.StreamECE, req) {
			t.Fatal("owner should see own request regardless of stream")
		}
	})

	t.Run("admin visibility is global", func(t *testing.T) {
		t.Parallel()
		if !CanView("admin-1", models.RoleAdmin, "", req) {
			t.Fatal("admin should see every request")
		}
	})

	t.Run("pc and staff are stream scoped", func(t *testing.T) {
		t.Parallel()
		for _, role := range []models.Role{models.RolePC, models.RoleStaff} {
			if !CanView("rev-1", role, models.StreamCSE, req) {
				t.Fatalf("%s of matching stream should see the request", role)
			}
			if CanView("rev-1", role, models.StreamMECH, req) {
				t.Fatalf("%s of another stream must not see the request", role)
			}
		}
	})

	t.Run("students never see others' requests", func(t *testing.T) {
		t.Parallel()
		if CanView("student-2", models.RoleStudent, models.StreamCSE, req) {
			t.Fatal("student must not see another submitter's request")
		}
	})
}

func TestCanDelete(t *testing.T) {
	t.Parallel()

	req := &models.LeaveRequest{RequestedBy: "owner-1", Stream: models.StreamCSE}

	if !CanDelete("owner-1", models.RoleStudent, models.StreamCSE, req) {
		t.Fatal("owner should be able to delete")
	}
	if !CanDelete("admin-1", models.RoleAdmin, "", req) {
		t.Fatal("admin should be able to delete")
	}
	if !CanDelete("pc-1", models.RolePC, models.StreamCSE, req) {
		t.Fatal("stream pc should be able to delete")
	}
	if CanDelete("pc-2", models.RolePC, models.StreamEEE, req) {
		t.Fatal("out-of-stream pc must not delete")
	}
	if CanDelete("staff-1", models.RoleStaff, models.StreamCSE, req) {
		t.Fatal("staff may not delete others' requests")
	}
}
