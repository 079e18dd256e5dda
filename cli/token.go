package cli

import (
	"fmt"
	"time"

	"tutorly/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	var (
		tutorID string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for a tutor with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tutorID == "" {
				return fmt.Errorf("--tutor is required")
			}
			token, err := utils.GenerateToken(tutorID, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			if ok, err := opts.writeJSON(cmd.OutOrStdout(), map[string]string{"token": token}); ok {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&tutorID, "tutor", "", "tutor ID to place in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
