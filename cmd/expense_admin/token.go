package main

import (
	"fmt"
	"time"

	"github.com/kushalbajje/expense-management/internal/utils"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		subject   string
		ttl       time.Duration
		newSecret bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Long: `token signs an access token with JWT_SECRET for use when AUTH_ENABLED is on.
With --new-secret it prints a fresh random secret instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if newSecret {
				secret, err := utils.GenerateSecret(32)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), secret)
				return nil
			}
			token, err := utils.IssueAccessToken(subject, cfg.JWTSecret, ttl, time.Now())
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "caller recorded in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&newSecret, "new-secret", false, "print a random secret and exit")
	return cmd
}
