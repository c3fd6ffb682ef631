package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/habitkit/internal/repository"
)

func TokensCmd() *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain sign-in tokens",
	}

	var olderThan time.Duration
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete used and expired magic link tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			deleted, err := repository.NewTokenRepository(database).CleanupExpired(olderThan)
			if err != nil {
				return fmt.Errorf("failed to clean up tokens: %w", err)
			}
			fmt.Printf("deleted %d tokens\n", deleted)
			return nil
		},
	}
	cleanupCmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "only delete tokens used or expired before this long ago")

	tokensCmd.AddCommand(cleanupCmd)
	return tokensCmd
}
