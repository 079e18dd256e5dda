// Package cli implements tutorctl, the command-line front end for a tutor's
// availability and sessions.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"tutorly/client"
	"tutorly/config"
	"tutorly/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	apiURL     string
	token      string
	jsonOutput bool
	verbose    bool
}

// NewRootCmd builds the tutorctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tutorctl",
		Short: "Manage tutor availability and sessions",
		Long: `tutorctl edits a tutor's weekly availability and shows booked sessions
grouped into Today, Upcoming and Past against the local clock.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			if opts.apiURL == "" {
				opts.apiURL = config.AppConfig.APIBaseURL
			}
			if opts.token == "" {
				opts.token = config.AppConfig.APIToken
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL (defaults to API_BASE_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (defaults to API_TOKEN)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log reconciler activity to stderr")

	root.AddCommand(
		newAvailabilityCmd(opts),
		newSessionsCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

// Execute runs tutorctl and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}

func (o *options) client() (*client.Client, error) {
	return client.New(o.apiURL, o.token, nil)
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	return utils.GetLogger()
}

// writeJSON prints v indented when --json is set and reports whether it did.
func (o *options) writeJSON(w io.Writer, v any) (bool, error) {
	if !o.jsonOutput {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
