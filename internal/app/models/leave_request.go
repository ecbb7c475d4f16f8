package models

import (
	"time"
)

// LeaveRequest defines one applicant's leave submission based on the
// 'leave_requests' table. Audit columns are written once by the reviewer
// action that advances or terminates the status.
type LeaveRequest struct {
	ID                   string      `json:"id" db:"id"`
	RequestedBy          string      `json:"requestedBy" db:"requested_by"`
	StudentName          string      `json:"studentName" db:"student_name"`
	StudentClass         string      `json:"studentClass" db:"student_class"`
	RegNo                *string     `json:"regNo,omitempty" db:"reg_no"`
	Stream               Stream      `json:"stream" db:"stream"`
	CGPA                 *float64    `json:"cgpa,omitempty" db:"cgpa"`                                 // >= 0 when present
	AttendancePercentage *float64    `json:"attendancePercentage,omitempty" db:"attendance_percentage"` // 0..100 when present
	FromDate             time.Time   `json:"fromDate" db:"from_date"`
	ToDate               time.Time   `json:"toDate" db:"to_date"`
	Reason               string      `json:"reason" db:"reason"`
	AttachmentURL        *string     `json:"attachmentUrl,omitempty" db:"attachment_url"`
	Status               LeaveStatus `json:"status" db:"status"`
	CreatedAt            time.Time   `json:"createdAt" db:"created_at"`
	PCReviewedBy         *string     `json:"pcReviewedBy,omitempty" db:"pc_reviewed_by"`
	PCReviewedAt         *time.Time  `json:"pcReviewedAt,omitempty" db:"pc_reviewed_at"`
	ReviewedBy           *string     `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt           *time.Time  `json:"reviewedAt,omitempty" db:"reviewed_at"`
	DeclinedBy           *string     `json:"declinedBy,omitempty" db:"declined_by"`

	// SubmitterName is joined from profiles for reviewer dashboards.
	SubmitterName string `json:"submitterName,omitempty" db:"-"`
}
