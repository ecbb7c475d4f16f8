package models

import (
	"time"
)

// Profile defines the user model based on the 'profiles' table.
// The ID matches the auth identity carried in the JWT subject.
type Profile struct {
	ID           string    `json:"id" db:"id" example:"7d4a4c9e-72f1-4a3b-9a41-0f1f6f4c1a11"` // Opaque user identifier
	Email        string    `json:"email" db:"email" example:"user@college.edu"`               // Login email
	Password     string    `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	FullName     string    `json:"fullName" db:"full_name" example:"John Doe"`
	Role         Role      `json:"role" db:"role" example:"student"` // student, staff, pc or admin
	Stream       Stream    `json:"stream" db:"stream" example:"CSE"`
	Department   *string   `json:"department,omitempty" db:"department"`     // Optional department label
	RegNo        *string   `json:"regNo,omitempty" db:"reg_no"`              // Students only
	StudentClass *string   `json:"studentClass,omitempty" db:"student_class"` // Students only
	FCMToken     *string   `json:"-" db:"fcm_token"`                         // Push delivery token (nullable)
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
}
