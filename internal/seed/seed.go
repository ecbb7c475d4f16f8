package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/SaSee1722/leavex/internal/app/models"
	appRepos "github.com/SaSee1722/leavex/internal/app/repositories"
	"github.com/SaSee1722/leavex/internal/pkg/auth"
)

// Default credentials for the bootstrap accounts. Deployments are expected
// to rotate these on first login.
const (
	defaultAdminEmail    = "admin@leavex.app"
	defaultAdminPassword = "Admin123!"
	defaultPCPassword    = "Coordinator123!"
)

// CreateDefaultData creates the default admin account and one program
// coordinator per stream if they don't exist. Without at least one admin
// and one PC per stream, submitted requests would have no reviewers.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default reviewer accounts...")
	var finalErr error // To collect potential errors without stopping the process

	if err := createUserIfMissing(ctx, userRepo, &appModels.Profile{
		Email:    defaultAdminEmail,
		FullName: "Default Admin",
		Role:     appModels.RoleAdmin,
	}, defaultAdminPassword, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	for _, stream := range appModels.Streams {
		pc := &appModels.Profile{
			Email:    fmt.Sprintf("pc.%s@leavex.app", strings.ToLower(string(stream))),
			FullName: fmt.Sprintf("%s Coordinator", stream),
			Role:     appModels.RolePC,
			Stream:   stream,
		}
		if err := createUserIfMissing(ctx, userRepo, pc, defaultPCPassword, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func createUserIfMissing(ctx context.Context, userRepo *appRepos.UserRepository, profile *appModels.Profile, password string, lgr zerolog.Logger) error {
	exists, err := userRepo.EmailExists(ctx, profile.Email)
	if err != nil {
		lgr.Error().Err(err).Str("email", profile.Email).Msg("Error checking if default user exists")
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Str("email", profile.Email).Msg("Error hashing default user password")
		return err
	}

	profile.ID = uuid.New().String()
	profile.Password = hashed
	// Create writes the timestamp explicitly, so the column default never
	// applies here
	profile.CreatedAt = time.Now()

	if err := userRepo.Create(ctx, profile); err != nil {
		lgr.Error().Err(err).Str("email", profile.Email).Msg("Error creating default user")
		return err
	}

	lgr.Info().Str("email", profile.Email).Str("role", string(profile.Role)).Msg("Default user created")
	return nil
}
