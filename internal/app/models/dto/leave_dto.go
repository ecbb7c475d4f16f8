package dto

import (
	"time"

	"github.com/SaSee1722/leavex/internal/app/models"
)

// CreateLeaveRequestRequest represents a leave submission. It arrives as
// multipart form data so an attachment can ride along; the file itself is
// read from the multipart form by the controller.
type CreateLeaveRequestRequest struct {
	StudentName          string   `form:"studentName" binding:"required,min=2,max=100"`
	StudentClass         string   `form:"studentClass" binding:"required,max=50"`
	RegNo                string   `form:"regNo" binding:"omitempty,alphanum,min=6,max=16"`
	Stream               string   `form:"stream" binding:"required,oneof=CSE ECE EEE MECH CIVIL"`
	CGPA                 *float64 `form:"cgpa" binding:"omitempty,min=0,max=10"`
	AttendancePercentage *float64 `form:"attendancePercentage" binding:"omitempty,min=0,max=100"`
	FromDate             string   `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate               string   `form:"toDate" binding:"required,datetime=2006-01-02"`
	Reason               string   `form:"reason" binding:"required,min=3,max=2000"`
}

// ListLeaveRequestsQuery represents list filters for leave requests
type ListLeaveRequestsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending_pc pending_admin approved declined"`
	Stream   string `form:"stream" binding:"omitempty,oneof=CSE ECE EEE MECH CIVIL"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// LeaveRequestResponse represents a leave request as returned by the API.
// Status carries the raw stored value; DisplayStatus is the normalized form
// clients should render.
type LeaveRequestResponse struct {
	ID                   string     `json:"id"`
	RequestedBy          string     `json:"requestedBy"`
	SubmitterName        string     `json:"submitterName,omitempty"`
	StudentName          string     `json:"studentName"`
	StudentClass         string     `json:"studentClass"`
	RegNo                *string    `json:"regNo,omitempty"`
	Stream               string     `json:"stream"`
	CGPA                 *float64   `json:"cgpa,omitempty"`
	AttendancePercentage *float64   `json:"attendancePercentage,omitempty"`
	FromDate             string     `json:"fromDate"`
	ToDate               string     `json:"toDate"`
	Reason               string     `json:"reason"`
	AttachmentURL        *string    `json:"attachmentUrl,omitempty"`
	Status               string     `json:"status"`
	DisplayStatus        string     `json:"displayStatus"`
	CreatedAt            time.Time  `json:"createdAt"`
	PCReviewedBy         *string    `json:"pcReviewedBy,omitempty"`
	PCReviewedAt         *time.Time `json:"pcReviewedAt,omitempty"`
	ReviewedBy           *string    `json:"reviewedBy,omitempty"`
	ReviewedAt           *time.Time `json:"reviewedAt,omitempty"`
	DeclinedBy           *string    `json:"declinedBy,omitempty"`
}

// LeaveRequestListResponse represents a paginated list of leave requests
type LeaveRequestListResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	Pagination PaginationInfo         `json:"pagination"`
}

// FromLeaveRequest converts a leave request model to its API representation
func FromLeaveRequest(lr *models.LeaveRequest) LeaveRequestResponse {
	if lr == nil {
		return LeaveRequestResponse{}
	}
	return LeaveRequestResponse{
		ID:                   lr.ID,
		RequestedBy:          lr.RequestedBy,
		SubmitterName:        lr.SubmitterName,
		StudentName:          lr.StudentName,
		StudentClass:         lr.StudentClass,
		RegNo:                lr.RegNo,
		Stream:               string(lr.Stream),
		CGPA:                 lr.CGPA,
		AttendancePercentage: lr.AttendancePercentage,
		FromDate:             lr.FromDate.Format("2006-01-02"),
		ToDate:               lr.ToDate.Format("2006-01-02"),
		Reason:               lr.Reason,
		AttachmentURL:        lr.AttachmentURL,
		Status:               string(lr.Status),
		DisplayStatus:        string(models.NormalizeStatus(string(lr.Status))),
		CreatedAt:            lr.CreatedAt,
		PCReviewedBy:         lr.PCReviewedBy,
		PCReviewedAt:         lr.PCReviewedAt,
		ReviewedBy:           lr.ReviewedBy,
		ReviewedAt:           lr.ReviewedAt,
		DeclinedBy:           lr.DeclinedBy,
	}
}

// MapLeaveRequests converts a slice of models to API representations
func MapLeaveRequests(items []*models.LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(items))
	for _, lr := range items {
		out = append(out, FromLeaveRequest(lr))
	}
	return out
}
