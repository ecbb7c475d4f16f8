package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/workflow"
	"github.com/SaSee1722/leavex/internal/pkg/apperrors"
	"github.com/SaSee1722/leavex/internal/pkg/dberrors"
	"github.com/SaSee1722/leavex/internal/pkg/logger"
)

// leaveColumns are selected with the lr alias so list queries can join
// profiles for the submitter name.
const leaveColumns = `lr.id, lr.requested_by, lr.student_name, lr.student_class, lr.reg_no, lr.stream,
	lr.cgpa, lr.attendance_percentage, lr.from_date, lr.to_date, lr.reason, lr.attachment_url,
	lr.status, lr.created_at, lr.pc_reviewed_by, lr.pc_reviewed_at, lr.reviewed_by, lr.reviewed_at, lr.declined_by,
	p.full_name`

// LeaveFilter narrows leave request listings. Zero values mean no filter.
// OldestFirst flips the default newest-first order; review queues are worked
// in arrival order.
type LeaveFilter struct {
	RequestedBy string
	Stream      models.Stream
	Status      models.LeaveStatus
	OldestFirst bool
	Page        int
	PageSize    int
}

// LeaveRepository handles leave request database operations
type LeaveRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanLeaveRequest(row pgx.Row) (*models.LeaveRequest, error) {
	lr := &models.LeaveRequest{}
	err := row.Scan(
		&lr.ID, &lr.RequestedBy, &lr.StudentName, &lr.StudentClass, &lr.RegNo, &lr.Stream,
		&lr.CGPA, &lr.AttendancePercentage, &lr.FromDate, &lr.ToDate, &lr.Reason, &lr.AttachmentURL,
		&lr.Status, &lr.CreatedAt, &lr.PCReviewedBy, &lr.PCReviewedAt, &lr.ReviewedBy, &lr.ReviewedAt, &lr.DeclinedBy,
		&lr.SubmitterName)
	if err != nil {
		return nil, err
	}
	return lr, nil
}

// Create inserts a new leave request
func (r *LeaveRepository) Create(ctx context.Context, lr *models.LeaveRequest) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leave_requests (
			id, requested_by, student_name, student_class, reg_no, stream,
			cgpa, attendance_percentage, from_date, to_date, reason, attachment_url,
			status, created_at, pc_reviewed_by, pc_reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		lr.ID, lr.RequestedBy, lr.StudentName, lr.StudentClass, lr.RegNo, lr.Stream,
		lr.CGPA, lr.AttendancePercentage, lr.FromDate, lr.ToDate, lr.Reason, lr.AttachmentURL,
		lr.Status, lr.CreatedAt, lr.PCReviewedBy, lr.PCReviewedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("requestedBy", lr.RequestedBy).Msg("Error creating leave request")
		return fmt.Errorf("error creating leave request: %w", err)
	}

	return nil
}

// GetByID retrieves a leave request with the submitter's name joined in
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	lr, err := scanLeaveRequest(r.db.QueryRow(ctx, `
		SELECT `+leaveColumns+`
		FROM leave_requests lr
		JOIN profiles p ON p.id = lr.requested_by
		WHERE lr.id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving leave request: %w", err)
	}

	return lr, nil
}

// List returns leave requests matching the filter, newest first, with the
// total match count for pagination.
func (r *LeaveRepository) List(ctx context.Context, filter LeaveFilter) ([]*models.LeaveRequest, int, error) {
	conditions := squirrel.And{}
	if filter.RequestedBy != "" {
		conditions = append(conditions, squirrel.Eq{"lr.requested_by": filter.RequestedBy})
	}
	if filter.Stream != "" {
		conditions = append(conditions, squirrel.Eq{"lr.stream": filter.Stream})
	}
	if filter.Status != "" {
		conditions = append(conditions, squirrel.Eq{"lr.status": filter.Status})
	}

	countBuilder := r.sb.Select("COUNT(*)").
		From("leave_requests lr")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting leave requests: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	order := "lr.created_at DESC"
	if filter.OldestFirst {
		order = "lr.created_at ASC"
	}

	listBuilder := r.sb.Select(leaveColumns).
		From("leave_requests lr").
		Join("profiles p ON p.id = lr.requested_by").
		OrderBy(order).
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))
	if len(conditions) > 0 {
		listBuilder = listBuilder.Where(conditions)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing leave requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return requests, total, nil
}

// TotalPages computes the page count for a filter result
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// ApplyDecision advances a request per the decision with a conditional
// update. The status guard makes the write race-safe: two reviewers acting
// on the same request cannot both succeed, and the loser learns the request
// was already processed.
func (r *LeaveRepository) ApplyDecision(ctx context.Context, id string, d workflow.Decision, actorID string, now time.Time) error {
	builder := r.sb.Update("leave_requests").
		Set("status", d.To).
		Where(squirrel.Eq{"id": id, "status": d.From})

	if d.SetPCReview {
		builder = builder.Set("pc_reviewed_by", actorID).Set("pc_reviewed_at", now)
	}
	if d.SetAdminReview {
		builder = builder.Set("reviewed_by", actorID).Set("reviewed_at", now)
	}
	if d.SetDeclinedBy {
		builder = builder.Set("declined_by", actorID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building apply decision SQL")
		return fmt.Errorf("failed to build apply decision query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("requestID", id).Msg("Error executing apply decision query")
		return fmt.Errorf("error applying decision: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the row is gone or its status moved under us
		var exists bool
		if err := r.db.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking leave request existence: %w", err)
		}
		if !exists {
			return apperrors.ErrLeaveRequestNotFound
		}
		return apperrors.ErrAlreadyProcessed
	}

	return nil
}

// Delete removes a leave request
func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM leave_requests WHERE id = $1`, id)

	if err != nil {
		return fmt.Errorf("error deleting leave request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLeaveRequestNotFound
	}

	return nil
}
