package dto

import "github.com/SaSee1722/leavex/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a new account registration request.
// Stream is required for every role except admin; regNo and studentClass
// apply to students only.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	FullName        string `json:"fullName" binding:"required,min=2,max=100"`
	Role            string `json:"role" binding:"required,oneof=student staff pc admin"`
	Stream          string `json:"stream" binding:"omitempty,oneof=CSE ECE EEE MECH CIVIL"`
	Department      string `json:"department" binding:"omitempty,max=100"`
	RegNo           string `json:"regNo" binding:"omitempty,alphanum,min=6,max=16"`
	StudentClass    string `json:"studentClass" binding:"omitempty,max=50"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateFCMTokenRequest carries a device token for push delivery.
// An empty token clears the stored one.
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

// UserResponse represents basic profile information
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"fullName"`
	Role         string  `json:"role"`
	Stream       string  `json:"stream,omitempty"`
	Department   *string `json:"department,omitempty"`
	RegNo        *string `json:"regNo,omitempty"`
	StudentClass *string `json:"studentClass,omitempty"`
	Home         string  `json:"home"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromProfile converts a profile model to a UserResponse. The home route is
// resolved separately since it depends on the role router.
func FromProfile(p *models.Profile, home string) UserResponse {
	if p == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		Role:         string(p.Role),
		Stream:       string(p.Stream),
		Department:   p.Department,
		RegNo:        p.RegNo,
		StudentClass: p.StudentClass,
		Home:         home,
	}
}
