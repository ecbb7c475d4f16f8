package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/SaSee1722/leavex/internal/app/models"
)

func TestInitialStatus(t *testing.T) {
	t.Parallel()

	t.Run("students and staff enter pc review", func(t *testing.T) {
		t.Parallel()
		for _, role := range []models.Role{models.RoleStudent, models.RoleStaff} {
			status, err := InitialStatus(role)
			if err != nil {
				t.Fatalf("InitialStatus(%s) failed: %v", role, err)
			}
			if status != models.StatusPendingPC {
				t.Fatalf("expected pending_pc for %s, got %s", role, status)
			}
		}
	})

	t.Run("pc self-filing skips pc review", func(t *testing.T) {
		t.Parallel()
		status, err := InitialStatus(models.RolePC)
		if err != nil {
			t.Fatalf("InitialStatus(pc) failed: %v", err)
		}
		if status != models.StatusPendingAdmin {
			t.Fatalf("expected pending_admin, got %s", status)
		}
	})

	t.Run("admin has no entry point", func(t *testing.T) {
		t.Parallel()
		if _, err := InitialStatus(models.RoleAdmin); !errors.Is(err, ErrCannotSubmit) {
			t.Fatalf("expected ErrCannotSubmit, got %v", err)
		}
	})
}

func TestDecide_TransitionTable(t *testing.T) {
	t.Parallel()

	pc := Actor{ID: "pc-1", Role: models.RolePC, Stream: models.StreamCSE}
	admin := Actor{ID: "admin-1", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		from   models.LeaveStatus
		actor  Actor
		action Action
		to     models.LeaveStatus
	}{
		{"pc approve forwards to admin", models.StatusPendingPC, pc, ActionApprove, models.StatusPendingAdmin},
		{"pc decline terminates", models.StatusPendingPC, pc, ActionDecline, models.StatusDeclined},
		{"admin approve terminates", models.StatusPendingAdmin, admin, ActionApprove, models.StatusApproved},
		{"admin decline terminates", models.StatusPendingAdmin, admin, ActionDecline, models.StatusDeclined},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := Decide(tc.from, tc.actor, tc.action, models.StreamCSE)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if d.From != tc.from || d.To != tc.to {
				t.Fatalf("expected %s -> %s, got %s -> %s", tc.from, tc.to, d.From, d.To)
			}
		})
	}

	t.Run("pc stage stamps pc review only", func(t *testing.T) {
		t.Parallel()
		d, err := Decide(models.StatusPendingPC, pc, ActionApprove, models.StreamCSE)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		if !d.SetPCReview || d.SetAdminReview || d.SetDeclinedBy {
			t.Fatalf("unexpected audit flags: %+v", d)
		}
	})

	t.Run("admin decline stamps declined_by", func(t *testing.T) {
		t.Parallel()
		d, err := Decide(models.StatusPendingAdmin, admin, ActionDecline, models.StreamCSE)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		if !d.SetAdminReview || !d.SetDeclinedBy || d.SetPCReview {
			t.Fatalf("unexpected audit flags: %+v", d)
		}
	})

	t.Run("admin approve leaves declined_by unset", func(t *testing.T) {
		t.Parallel()
		d, err := Decide(models.StatusPendingAdmin, admin, ActionApprove, models.StreamCSE)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		if d.SetDeclinedBy {
			t.Fatal("approve must not stamp declined_by")
		}
	})
}

func TestDecide_Guards(t *testing.T) {
	t.Parallel()

	t.Run("only pc acts on pending_pc", func(t *testing.T) {
		t.Parallel()
		for _, role := range []models.Role{models.RoleStudent, models.RoleStaff, models.RoleAdmin} {
			actor := Actor{ID: "u", Role: role, Stream: models.StreamCSE}
			if _, err := Decide(models.StatusPendingPC, actor, ActionApprove, models.StreamCSE); !errors.Is(err, ErrWrongActor) {
				t.Fatalf("expected ErrWrongActor for %s, got %v", role, err)
			}
		}
	})

	t.Run("only admin acts on pending_admin", func(t *testing.T) {
		t.Parallel()
		for _, role := range []models.Role{models.RoleStudent, models.RoleStaff, models.RolePC} {
			actor := Actor{ID: "u", Role: role, Stream: models.StreamCSE}
			if _, err := Decide(models.StatusPendingAdmin, actor, ActionApprove, models.StreamCSE); !errors.Is(err, ErrWrongActor) {
				t.Fatalf("expected ErrWrongActor for %s, got %v", role, err)
			}
		}
	})

	t.Run("pc cannot cross streams", func(t *testing.T) {
		t.Parallel()
		actor := Actor{ID: "pc-1", Role: models.RolePC, Stream: models.StreamECE}
		if _, err := Decide(models.StatusPendingPC, actor, ActionDecline, models.StreamCSE); !errors.Is(err, ErrStreamScope) {
			t.Fatalf("expected ErrStreamScope, got %v", err)
		}
	})

	t.Run("terminal states accept no action", func(t *testing.T) {
		t.Parallel()
		pc := Actor{ID: "pc-1", Role: models.RolePC, Stream: models.StreamCSE}
		admin := Actor{ID: "admin-1", Role: models.RoleAdmin}
		for _, status := range []models.LeaveStatus{models.StatusApproved, models.StatusDeclined} {
			for _, actor := range []Actor{pc, admin} {
				for _, action := range []Action{ActionApprove, ActionDecline} {
					if _, err := Decide(status, actor, action, models.StreamCSE); !errors.Is(err, ErrNotActionable) {
						t.Fatalf("expected ErrNotActionable from %s, got %v", status, err)
					}
				}
			}
		}
	})

	t.Run("unrecognized stored status is never actionable", func(t *testing.T) {
		t.Parallel()
		admin := Actor{ID: "admin-1", Role: models.RoleAdmin}
		if _, err := Decide(models.LeaveStatus("processing"), admin, ActionApprove, models.StreamCSE); !errors.Is(err, ErrNotActionable) {
			t.Fatalf("expected ErrNotActionable, got %v", err)
		}
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		t.Parallel()
		pc := Actor{ID: "pc-1", Role: models.RolePC, Stream: models.StreamCSE}
		if _, err := Decide(models.StatusPendingPC, pc, Action("escalate"), models.StreamCSE); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction, got %v", err)
		}
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 18, 9, 30, 0, 0, time.UTC)

	t.Run("pc approval stamps pc audit trail", func(t *testing.T) {
		t.Parallel()
		req := &models.LeaveRequest{Status: models.StatusPendingPC, Stream: models.StreamCSE}
		actor := Actor{ID: "pc-1", Role: models.RolePC, Stream: models.StreamCSE}

		d, err := Decide(req.Status, actor, ActionApprove, req.Stream)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		Apply(req, d, actor, now)

		if req.Status != models.StatusPendingAdmin {
			t.Fatalf("expected pending_admin, got %s", req.Status)
		}
		if req.PCReviewedBy == nil || *req.PCReviewedBy != "pc-1" {
			t.Fatalf("expected pc_reviewed_by to be pc-1, got %v", req.PCReviewedBy)
		}
		if req.PCReviewedAt == nil || !req.PCReviewedAt.Equal(now) {
			t.Fatalf("expected pc_reviewed_at %v, got %v", now, req.PCReviewedAt)
		}
		if req.ReviewedBy != nil || req.DeclinedBy != nil {
			t.Fatal("pc stage must not touch admin audit columns")
		}
	})

	t.Run("admin decline stamps declined_by", func(t *testing.T) {
		t.Parallel()
		req := &models.LeaveRequest{Status: models.StatusPendingAdmin, Stream: models.StreamCSE}
		actor := Actor{ID: "admin-1", Role: models.RoleAdmin}

		d, err := Decide(req.Status, actor, ActionDecline, req.Stream)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		Apply(req, d, actor, now)

		if req.Status != models.StatusDeclined {
			t.Fatalf("expected declined, got %s", req.Status)
		}
		if req.ReviewedBy == nil || *req.ReviewedBy != "admin-1" {
			t.Fatalf("expected reviewed_by admin-1, got %v", req.ReviewedBy)
		}
		if req.DeclinedBy == nil || *req.DeclinedBy != "admin-1" {
			t.Fatalf("expected declined_by admin-1, got %v", req.DeclinedBy)
		}
	})

	t.Run("admin approve leaves declined_by null", func(t *testing.T) {
		t.Parallel()
		req := &models.LeaveRequest{Status: models.StatusPendingAdmin, Stream: models.StreamCSE}
		actor := Actor{ID: "admin-1", Role: models.RoleAdmin}

		d, err := Decide(req.Status, actor, ActionApprove, req.Stream)
		if err != nil {
			t.Fatalf("Decide failed: %v", err)
		}
		Apply(req, d, actor, now)

		if req.Status != models.StatusApproved {
			t.Fatalf("expected approved, got %s", req.Status)
		}
		if req.DeclinedBy != nil {
			t.Fatalf("declined_by must stay null on approval, got %v", *req.DeclinedBy)
		}
	})
}
