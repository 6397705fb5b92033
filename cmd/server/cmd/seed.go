package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/authz"
	"github.com/alialif/JoinUp-Event-Management/internal/config"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample events and members for local development",
	Long: `Insert a small set of sample events and members so the API has data
to serve during local development. Seeding is additive and skips
members whose email already exists.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return fmt.Errorf("repository init failed: %w", err)
	}

	if err := seedMembers(ctx, repo, cfg); err != nil {
		return err
	}
	if err := seedEvents(ctx, repo); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "seed data inserted")
	return nil
}

func seedMembers(ctx context.Context, repo *postgres.Repository, cfg config.Config) error {
	samples := []struct {
		email string
		name  string
		role  authz.Role
	}{
		{"staff@joinup.local", "Sample Staff", authz.RoleStaff},
		{"participant@joinup.local", "Sample Participant", authz.RoleParticipant},
	}

	hash, err := auth.HashPassword("changeme-seed")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	for _, sample := range samples {
		id, err := ids.NewULID()
		if err != nil {
			return fmt.Errorf("generate member id: %w", err)
		}
		_, err = repo.Members().Create(ctx, members.Member{
			ID:           id,
			Email:        sample.email,
			Name:         sample.name,
			PasswordHash: hash,
			Role:         string(sample.role),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil && !errors.Is(err, members.ErrEmailTaken) {
			return fmt.Errorf("seed member %s: %w", sample.email, err)
		}
	}
	return nil
}

func seedEvents(ctx context.Context, repo *postgres.Repository) error {
	now := time.Now().UTC()
	samples := []events.Event{
		{
			Title:            "Intro to Community Organizing",
			Description:      "A hands-on workshop for first-time volunteers.",
			StartDate:        now.AddDate(0, 0, 14),
			EndDate:          now.AddDate(0, 0, 14).Add(3 * time.Hour),
			MaxRegistrations: 30,
			Categories:       []string{"workshop", "community"},
			Price:            events.PriceFree,
		},
		{
			Title:            "Annual Tech Meetup",
			Description:      "Talks, demos, and networking.",
			StartDate:        now.AddDate(0, 1, 0),
			EndDate:          now.AddDate(0, 1, 1),
			MaxRegistrations: events.DefaultMaxRegistrations,
			Categories:       []string{"tech"},
			Price:            events.PricePaid,
		},
	}

	for _, sample := range samples {
		id, err := ids.NewULID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		sample.ID = id
		sample.CreatedAt = now
		sample.UpdatedAt = now
		if _, err := repo.Events().Create(ctx, sample); err != nil {
			return fmt.Errorf("seed event %q: %w", sample.Title, err)
		}
	}
	return nil
}
