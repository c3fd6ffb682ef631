package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/habitkit/internal/db"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
)

const seedDays = 60

var seedHabits = []struct {
	name        string
	description string
	// every nth day is skipped, every mth failed; 0 disables
	skipEvery int
	failEvery int
}{
	{"Read 20 pages", "Any book counts. **Fiction** included.", 0, 5},
	{"Morning run", "At least 3 km before breakfast.\n\n- rest days are skips", 4, 9},
	{"No sugar", "", 0, 7},
}

func SeedCmd() *cobra.Command {
	var email string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo user with habits and 60 days of logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(strings.ToLower(email))
			if email == "" {
				return errors.New("--email is required")
			}

			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			return seed(cmd.Context(), database, email, time.Now())
		},
	}
	seedCmd.Flags().StringVar(&email, "email", "", "email of the demo user (created if missing)")

	return seedCmd
}

func seed(ctx context.Context, database *sqlx.DB, email string, now time.Time) error {
	users := repository.NewUserRepository(database)
	profiles := repository.NewProfileRepository(database)
	habits := repository.NewHabitRepository(database)
	logs := repository.NewHabitLogRepository(database)

	user, err := users.ByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		verified := now
		user = &model.User{ID: uuid.New().String(), Email: email, EmailVerifiedAt: &verified, CreatedAt: now}
		err = users.Create(user)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		err = profiles.Create(&model.Profile{UserID: user.ID, Name: "Demo", CreatedAt: now})
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	today := model.Today(now)
	for _, h := range seedHabits {
		habit := &model.Habit{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Name:        h.name,
			Description: h.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = habits.Create(ctx, habit)
		if err != nil {
			return fmt.Errorf("failed to create habit %q: %w", h.name, err)
		}

		for i := seedDays - 1; i >= 0; i-- {
			status := model.LogStatusDone
			switch {
			case h.failEvery > 0 && i%h.failEvery == h.failEvery-1:
				status = model.LogStatusFail
			case h.skipEvery > 0 && i%h.skipEvery == h.skipEvery-1:
				status = model.LogStatusSkip
			}

			_, err = logs.Upsert(ctx, &model.HabitLog{HabitID: habit.ID, Date: today.AddDays(-i), Status: status})
			if err != nil {
				return fmt.Errorf("failed to log %q: %w", h.name, err)
			}
		}
	}

	fmt.Printf("seeded %d habits with %d days of logs for %s\n", len(seedHabits), seedDays, email)
	return nil
}
