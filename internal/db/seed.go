package db

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nomina/internal/domain/auth"
	"nomina/internal/platform/config"
)

// Seed creates the initial admin user when one is configured. Re-running is
// a no-op thanks to the conflict clause in the user store.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Println("seed: admin credentials not configured, skipping")
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	store := auth.NewStore(pool)
	return store.Create(ctx, auth.User{
		ID:           uuid.NewString(),
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    time.Now().UTC(),
	})
}
