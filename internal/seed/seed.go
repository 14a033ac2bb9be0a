package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/learnhub/internal/app/models"
	appRepos "github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account, subscription plans
// and points packages if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, plans, packages)...")
	var finalErr error

	// --- Admin account --- //
	hashed, err := auth.HashPassword("admin1234")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		finalErr = errors.Join(finalErr, err)
	} else {
		admin := &appModels.User{
			Email:     "admin@learnhub.app",
			Password:  hashed,
			FirstName: "Platform",
			LastName:  "Admin",
			RoleType:  appModels.RoleAdmin,
			IsActive:  true,
		}
		err = userRepo.Create(ctx, admin)
		if err != nil && !errors.Is(err, appRepos.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Subscription plans --- //
	plans := []struct {
		name         string
		description  string
		price        int64
		periodMonths int
	}{
		{"Monthly", "Full catalog access billed every month", 1999, 1},
		{"Annual", "Full catalog access billed once a year", 19999, 12},
	}
	for _, p := range plans {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO subscription_plans (name, description, price, period_months, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (name) DO NOTHING`,
			p.name, p.description, p.price, p.periodMonths,
		)
		if err != nil {
			lgr.Error().Err(err).Str("plan", p.name).Msg("Error creating default subscription plan")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Points packages --- //
	packages := []struct {
		name   string
		points int64
		price  int64
	}{
		{"Starter Pack", 500, 499},
		{"Value Pack", 1200, 999},
		{"Mega Pack", 3000, 1999},
	}
	for _, p := range packages {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO points_packages (name, points, price, is_active)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (name) DO NOTHING`,
			p.name, p.points, p.price,
		)
		if err != nil {
			lgr.Error().Err(err).Str("package", p.name).Msg("Error creating default points package")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete.")
	}
	return finalErr
}
