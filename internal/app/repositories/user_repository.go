package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/pkg/apperrors"
	"github.com/SaSee1722/leavex/internal/pkg/dberrors"
	"github.com/SaSee1722/leavex/internal/pkg/logger"
)

const profileColumns = `id, email, password, full_name, role, stream, department, reg_no, student_class, fcm_token, created_at`

// UserRepository handles profile database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.Email, &p.Password, &p.FullName, &p.Role, &p.Stream,
		&p.Department, &p.RegNo, &p.StudentClass, &p.FCMToken, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new profile
func (r *UserRepository) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, email, password, full_name, role, stream, department, reg_no, student_class, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Email, p.Password, p.FullName, p.Role, p.Stream,
		p.Department, p.RegNo, p.StudentClass, p.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", p.Email).Msg("Error creating profile")
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return p, nil
}

// GetByEmail retrieves a profile by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE email = $1`, email))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return p, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UpdateFCMToken stores or clears a profile's push delivery token
func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID string, token *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET fcm_token = $1
		WHERE id = $2`,
		token, userID)

	if err != nil {
		return fmt.Errorf("error updating fcm token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListIDsByRole returns the IDs of all profiles with the given role
func (r *UserRepository) ListIDsByRole(ctx context.Context, role models.Role) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM profiles WHERE role = $1`, role)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles by role: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning profile id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListPCIDsByStream returns the IDs of program coordinators for one stream
func (r *UserRepository) ListPCIDsByStream(ctx context.Context, stream models.Stream) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM profiles WHERE role = $1 AND stream = $2`,
		models.RolePC, stream)
	if err != nil {
		return nil, fmt.Errorf("error listing coordinators: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning coordinator id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
