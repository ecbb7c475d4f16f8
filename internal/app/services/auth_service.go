package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	authz "github.com/SaSee1722/leavex/internal/app/auth"
	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/app/models/dto"
	"github.com/SaSee1722/leavex/internal/app/repositories"
	"github.com/SaSee1722/leavex/internal/pkg/apperrors"
	"github.com/SaSee1722/leavex/internal/pkg/auth"
	"github.com/SaSee1722/leavex/internal/pkg/validation"
)

// Auth service validation errors. They wrap the shared sentinels so the
// central error handler maps them without knowing this package.
var (
	ErrInvalidRole    = apperrors.NewBadRequestError("invalid role")
	ErrInvalidStream  = apperrors.NewBadRequestError("invalid stream")
	ErrStreamRequired = apperrors.NewBadRequestError("stream is required for this role")
	ErrAuthValidation = apperrors.ErrValidationFailed
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrAuthValidation)
	}

	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(email)) {
		return apperrors.ErrInvalidEmail
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrAuthValidation)
	}

	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	hasLetter := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}

	hasDigit := false
	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// Register creates a new account and signs the caller in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	var stream models.Stream
	if req.Stream != "" {
		stream, ok = models.ParseStream(req.Stream)
		if !ok {
			return nil, ErrInvalidStream
		}
	}
	// Admin review is global; everyone else belongs to a stream
	if role != models.RoleAdmin && stream == "" {
		return nil, ErrStreamRequired
	}

	if req.RegNo != "" && !validation.CompiledPatterns.RegNo.MatchString(req.RegNo) {
		return nil, fmt.Errorf("%w: register number must be 6-16 alphanumeric characters", ErrAuthValidation)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	profile := &models.Profile{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashed,
		FullName:  strings.TrimSpace(req.FullName),
		Role:      role,
		Stream:    stream,
		CreatedAt: time.Now(),
	}
	if req.Department != "" {
		d := req.Department
		profile.Department = &d
	}
	if req.RegNo != "" {
		rn := req.RegNo
		profile.RegNo = &rn
	}
	if req.StudentClass != "" {
		sc := req.StudentClass
		profile.StudentClass = &sc
	}

	if err := s.userRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", profile.ID).Str("role", string(role)).Msg("New account registered")

	return s.issueTokens(ctx, profile)
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(profile.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, profile)
}

// issueTokens generates and persists a token pair for the profile
func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, profile.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	home, known := authz.ResolveHome(profile.Role)
	if !known {
		s.logger.Warn().Str("userID", profile.ID).Str("role", string(profile.Role)).
			Msg("Unknown role on profile, routing to student home")
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.FromProfile(profile, home),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The old
// token is revoked so every refresh token is single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// GetProfile returns the caller's profile with its resolved home route
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	home, known := authz.ResolveHome(profile.Role)
	if !known {
		s.logger.Warn().Str("userID", profile.ID).Str("role", string(profile.Role)).
			Msg("Unknown role on profile, routing to student home")
	}

	resp := dto.FromProfile(profile, home)
	return &resp, nil
}

// UpdateFCMToken stores or clears the caller's push delivery token
func (s *AuthService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	var value *string
	if strings.TrimSpace(token) != "" {
		value = &token
	}
	return s.userRepo.UpdateFCMToken(ctx, userID, value)
}
