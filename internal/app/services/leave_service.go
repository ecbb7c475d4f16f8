package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	authz "github.com/SaSee1722/leavex/internal/app/auth"
	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/models/dto"
	"github.com/SaSee1722/leavex/internal/app/repositories"
	"github.com/SaSee1722/leavex/internal/app/workflow"
	"github.com/SaSee1722/leavex/internal/pkg/apperrors"
	"github.com/SaSee1722/leavex/internal/pkg/filestorage"
	"github.com/SaSee1722/leavex/internal/pkg/validation"
)

// LeaveStore persists leave requests
type LeaveStore interface {
	Create(ctx context.Context, lr *models.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	List(ctx context.Context, filter repositories.LeaveFilter) ([]*models.LeaveRequest, int, error)
	ApplyDecision(ctx context.Context, id string, d workflow.Decision, actorID string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

// LeaveNotifier fans out workflow events. Notification failures must never
// fail the workflow itself, so the methods return nothing.
type LeaveNotifier interface {
	NotifySubmitted(ctx context.Context, req *models.LeaveRequest)
	NotifyDecided(ctx context.Context, req *models.LeaveRequest, action workflow.Action, actor workflow.Actor)
}

// LeaveService handles leave request submission, listing and review
type LeaveService struct {
	store    LeaveStore
	storage  filestorage.FileStorage
	notifier LeaveNotifier
	logger   zerolog.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(
	store LeaveStore,
	storage filestorage.FileStorage,
	notifier LeaveNotifier,
	logger zerolog.Logger,
) *LeaveService {
	return &LeaveService{
		store:    store,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit validates and stores a new leave request. The submitter role picks
// the entry point of the approval chain; a PC self-filing starts in admin
// review with its own PC review prefilled.
func (s *LeaveService) Submit(ctx context.Context, actor workflow.Actor, req *dto.CreateLeaveRequestRequest, attachment *multipart.FileHeader) (*models.LeaveRequest, error) {
	status, err := workflow.InitialStatus(actor.Role)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, "this role cannot submit leave requests")
	}

	stream, ok := models.ParseStream(req.Stream)
	if !ok {
		return nil, apperrors.NewBadRequestError("unknown stream")
	}
	if actor.Stream != "" && stream != actor.Stream {
		return nil, apperrors.NewBadRequestError("stream must match your profile")
	}

	fromDate, err := validation.ParseDate(req.FromDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("fromDate must be a calendar date (YYYY-MM-DD)")
	}
	toDate, err := validation.ParseDate(req.ToDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("toDate must be a calendar date (YYYY-MM-DD)")
	}
	if !validation.ValidDateRange(fromDate, toDate) {
		return nil, apperrors.NewBadRequestError("toDate must not be before fromDate")
	}
	if !validation.ValidCGPA(req.CGPA) {
		return nil, apperrors.NewBadRequestError("cgpa must not be negative")
	}
	if !validation.ValidAttendance(req.AttendancePercentage) {
		return nil, apperrors.NewBadRequestError("attendancePercentage must be between 0 and 100")
	}

	now := time.Now()
	lr := &models.LeaveRequest{
		ID:                   uuid.New().String(),
		RequestedBy:          actor.ID,
		StudentName:          req.StudentName,
		StudentClass:         req.StudentClass,
		Stream:               stream,
		CGPA:                 req.CGPA,
		AttendancePercentage: req.AttendancePercentage,
		FromDate:             fromDate,
		ToDate:               toDate,
		Reason:               req.Reason,
		Status:               status,
		CreatedAt:            now,
	}
	if req.RegNo != "" {
		rn := req.RegNo
		lr.RegNo = &rn
	}

	// A PC filing for itself has implicitly passed PC review
	if status == models.StatusPendingAdmin {
		id := actor.ID
		t := now
		lr.PCReviewedBy = &id
		lr.PCReviewedAt = &t
	}

	if attachment != nil {
		url, err := s.storage.SaveFile(attachment, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
		}
		if url != "" {
			lr.AttachmentURL = &url
		}
	}

	if err := s.store.Create(ctx, lr); err != nil {
		// Submission failed after the attachment landed; clean it up
		if lr.AttachmentURL != nil {
			if delErr := s.storage.DeleteFile(*lr.AttachmentURL); delErr != nil {
				s.logger.Warn().Err(delErr).Str("url", *lr.AttachmentURL).Msg("Failed to remove orphaned attachment")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("requestID", lr.ID).Str("status", string(lr.Status)).
		Str("requestedBy", lr.RequestedBy).Msg("Leave request submitted")

	s.notifier.NotifySubmitted(ctx, lr)

	return lr, nil
}

// Get returns one leave request if the actor may see it
func (s *LeaveService) Get(ctx context.Context, actor workflow.Actor, id string) (*models.LeaveRequest, error) {
	lr, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanView(actor.ID, actor.Role, actor.Stream, lr) {
		return nil, apperrors.NewForbiddenError("you cannot view this leave request")
	}

	return lr, nil
}

// List returns leave requests visible to the actor. With mine set the result
// is scoped to the actor's own submissions; otherwise the actor's role
// decides the review scope: admins see everything, PCs and staff see their
// stream, students fall back to their own submissions.
func (s *LeaveService) List(ctx context.Context, actor workflow.Actor, q dto.ListLeaveRequestsQuery, mine bool) ([]*models.LeaveRequest, dto.PaginationInfo, error) {
	filter := repositories.LeaveFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Status != "" {
		filter.Status = models.LeaveStatus(q.Status)
	}

	switch {
	case mine || actor.Role == models.RoleStudent:
		filter.RequestedBy = actor.ID
	case actor.Role == models.RoleAdmin:
		if q.Stream != "" {
			filter.Stream = models.Stream(q.Stream)
		}
	case actor.Role == models.RolePC, actor.Role == models.RoleStaff:
		filter.Stream = actor.Stream
		// Coordinators work their pending queue in arrival order
		if actor.Role == models.RolePC && filter.Status == models.StatusPendingPC {
			filter.OldestFirst = true
		}
	default:
		filter.RequestedBy = actor.ID
	}

	items, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	return items, dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  repositories.TotalPages(total, pageSize),
		PageSize:    pageSize,
		TotalItems:  total,
	}, nil
}

// Decide runs one review action through the state machine and applies it
// with a conditional update, so concurrent reviewers cannot both win.
func (s *LeaveService) Decide(ctx context.Context, actor workflow.Actor, id string, action workflow.Action) (*models.LeaveRequest, error) {
	lr, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := workflow.Decide(lr.Status, actor, action, lr.Stream)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrWrongActor), errors.Is(err, workflow.ErrStreamScope):
			return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, err.Error())
		case errors.Is(err, workflow.ErrNotActionable):
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyProcessed, "request is no longer actionable")
		default:
			return nil, apperrors.NewBadRequestError(err.Error())
		}
	}

	now := time.Now()
	if err := s.store.ApplyDecision(ctx, id, decision, actor.ID, now); err != nil {
		return nil, err
	}

	workflow.Apply(lr, decision, actor, now)

	s.logger.Info().Str("requestID", lr.ID).Str("action", string(action)).
		Str("actorID", actor.ID).Str("newStatus", string(lr.Status)).Msg("Leave request reviewed")

	s.notifier.NotifyDecided(ctx, lr, action, actor)

	return lr, nil
}

// Delete removes a leave request and its stored attachment
func (s *LeaveService) Delete(ctx context.Context, actor workflow.Actor, id string) error {
	lr, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDelete(actor.ID, actor.Role, actor.Stream, lr) {
		return apperrors.NewForbiddenError("you cannot delete this leave request")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if lr.AttachmentURL != nil {
		if err := s.storage.DeleteFile(*lr.AttachmentURL); err != nil {
			s.logger.Warn().Err(err).Str("url", *lr.AttachmentURL).Msg("Failed to remove attachment of deleted request")
		}
	}

	return nil
}
