package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/SaSee1722/leavex/internal/app/models/dto"
	"github.com/SaSee1722/leavex/internal/app/services"
	"github.com/SaSee1722/leavex/internal/app/workflow"
	"github.com/SaSee1722/leavex/internal/middleware"
)

// LeaveController handles leave request operations
type LeaveController struct {
	leaveService *services.LeaveService
	logger       zerolog.Logger
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService *services.LeaveService, logger zerolog.Logger) *LeaveController {
	return &LeaveController{
		leaveService: leaveService,
		logger:       logger,
	}
}

// Create submits a new leave request
// @Summary Submit a leave request
// @Description Submits a leave request as multipart form data with an optional attachment. Students and staff enter coordinator review; a coordinator's own request goes straight to admin review.
// @Tags leave-requests
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param studentName formData string true "Applicant name"
// @Param studentClass formData string true "Class or designation"
// @Param regNo formData string false "Register number"
// @Param stream formData string true "Stream" Enums(CSE, ECE, EEE, MECH, CIVIL)
// @Param cgpa formData number false "CGPA"
// @Param attendancePercentage formData number false "Attendance percentage"
// @Param fromDate formData string true "First day of leave (YYYY-MM-DD)"
// @Param toDate formData string true "Last day of leave (YYYY-MM-DD)"
// @Param reason formData string true "Reason for leave"
// @Param attachment formData file false "Supporting document"
// @Success 201 {object} dto.LeaveRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid form data"
// @Failure 403 {object} dto.ErrorResponse "Role cannot submit leave requests"
// @Failure 500 {object} dto.ErrorResponse "Attachment upload failed"
// @Router /leave-requests [post]
func (c *LeaveController) Create(ctx *gin.Context) {
	var req dto.CreateLeaveRequestRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	// Attachment is optional; only a present file is saved
	attachment, err := ctx.FormFile("attachment")
	if err != nil && err != http.ErrMissingFile {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lr, err := c.leaveService.Submit(ctx.Request.Context(), actorFromContext(ctx), &req, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FromLeaveRequest(lr))
}

// List returns leave requests visible to the caller
// @Summary List leave requests
// @Description Lists leave requests in the caller's scope. With mine=true only the caller's own submissions are returned; otherwise coordinators and staff see their stream and admins see everything.
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param mine query bool false "Only the caller's own submissions"
// @Param status query string false "Status filter" Enums(pending_pc, pending_admin, approved, declined)
// @Param stream query string false "Stream filter (admin only)" Enums(CSE, ECE, EEE, MECH, CIVIL)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.LeaveRequestListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Router /leave-requests [get]
func (c *LeaveController) List(ctx *gin.Context) {
	var q dto.ListLeaveRequestsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	mine := ctx.Query("mine") == "true"

	items, pagination, err := c.leaveService.List(ctx.Request.Context(), actorFromContext(ctx), q, mine)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LeaveRequestListResponse{
		Requests:   dto.MapLeaveRequests(items),
		Pagination: pagination,
	})
}

// Get returns one leave request
// @Summary Get a leave request
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's scope"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Router /leave-requests/{id} [get]
func (c *LeaveController) Get(ctx *gin.Context) {
	lr, err := c.leaveService.Get(ctx.Request.Context(), actorFromContext(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromLeaveRequest(lr))
}

// Approve advances a pending request
// @Summary Approve a leave request
// @Description A coordinator's approval forwards the request to admin review; an admin's approval finalizes it.
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Caller may not act at this stage"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Router /leave-requests/{id}/approve [post]
func (c *LeaveController) Approve(ctx *gin.Context) {
	c.decide(ctx, workflow.ActionApprove)
}

// Decline terminates a pending request
// @Summary Decline a leave request
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Caller may not act at this stage"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Router /leave-requests/{id}/decline [post]
func (c *LeaveController) Decline(ctx *gin.Context) {
	c.decide(ctx, workflow.ActionDecline)
}

func (c *LeaveController) decide(ctx *gin.Context, action workflow.Action) {
	actor := actorFromContext(ctx)
	lr, err := c.leaveService.Decide(ctx.Request.Context(), actor, ctx.Param("id"), action)
	if err != nil {
		c.logger.Debug().Err(err).Str("requestID", ctx.Param("id")).
			Str("action", string(action)).Str("actorID", actor.ID).Msg("Review action rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FromLeaveRequest(lr))
}

// Delete removes a leave request
// @Summary Delete a leave request
// @Description Hard-deletes a leave request. Owners may delete their own; coordinators may delete within their stream; admins anywhere.
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's scope"
// @Failure 404 {object} dto.ErrorResponse "Leave request not found"
// @Router /leave-requests/{id} [delete]
func (c *LeaveController) Delete(ctx *gin.Context) {
	if err := c.leaveService.Delete(ctx.Request.Context(), actorFromContext(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Leave request deleted"})
}
