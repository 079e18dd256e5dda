package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"tutorly/models"
	"tutorly/services/scheduling"
	"tutorly/services/sessions"

	"github.com/spf13/cobra"
)

// nowFunc is the clock used for classification; tests pin it.
var nowFunc = time.Now

func newSessionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List booked sessions",
	}
	cmd.AddCommand(newSessionsListCmd(opts), newSessionsBoardCmd(opts))
	return cmd
}

func newSessionsListCmd(opts *options) *cobra.Command {
	var q models.SessionQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			page, err := c.ListSessions(cmd.Context(), q)
			if err != nil {
				return err
			}
			if ok, err := opts.writeJSON(cmd.OutOrStdout(), page); ok {
				return err
			}

			out := cmd.OutOrStdout()
			annotated, invalid := scheduling.Annotate(nowFunc(), page.Result)
			for _, s := range annotated {
				printSession(out, s)
			}
			for _, r := range invalid {
				fmt.Fprintf(out, "  ?  %s %s-%s  unreadable  [%s]\n", r.SessionDate, r.StartTime, r.EndTime, r.ID)
			}
			fmt.Fprintf(out, "%d of %d sessions\n", len(page.Result), page.Total)
			return nil
		},
	}
	cmd.Flags().Int64Var(&q.Limit, "limit", sessions.DefaultPageLimit, "page size")
	cmd.Flags().Int64Var(&q.Offset, "offset", 0, "number of sessions to skip")
	cmd.Flags().StringVar(&q.Date, "date", "", "only sessions on this date (YYYY-MM-DD)")
	return cmd
}

func newSessionsBoardCmd(opts *options) *cobra.Command {
	var (
		date     string
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Group sessions into Today, Upcoming and Past",
		Long: `board fetches sessions once and classifies them against the local clock.
With --watch the classification is recomputed every --interval so live
statuses move from Next to Ongoing to Ended without refetching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			records, total, err := fetchAll(cmd.Context(), c, date)
			if err != nil {
				return err
			}

			render := func() error {
				board := scheduling.GroupByBucket(nowFunc(), records)
				board.Total = total
				if ok, err := opts.writeJSON(cmd.OutOrStdout(), board); ok {
					return err
				}
				printBoard(cmd.OutOrStdout(), board)
				return nil
			}
			if err := render(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
					if err := render(); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "only sessions on this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reclassify periodically until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "reclassification interval for --watch")
	return cmd
}

// fetchAll pages through every session so the board is never silently truncated.
func fetchAll(ctx context.Context, f scheduling.SessionFetcher, date string) ([]models.SessionRecord, int64, error) {
	q := models.SessionQuery{Limit: sessions.MaxPageLimit, Date: date}
	var all []models.SessionRecord
	for {
		page, err := f.ListSessions(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, page.Result...)
		if len(page.Result) == 0 || int64(len(all)) >= page.Total {
			return all, page.Total, nil
		}
		q.Offset += int64(len(page.Result))
	}
}

func printBoard(w io.Writer, b models.SessionBoard) {
	fmt.Fprintf(w, "As of %s, %d sessions\n", b.EvaluatedAt, b.Total)
	for _, section := range []struct {
		title string
		items []models.ClassifiedSession
	}{
		{string(models.BucketToday), b.Today},
		{string(models.BucketUpcoming), b.Upcoming},
		{string(models.BucketPast), b.Past},
	} {
		fmt.Fprintf(w, "%s (%d)\n", section.title, len(section.items))
		for _, s := range section.items {
			printSession(w, s)
		}
	}
	if len(b.Invalid) > 0 {
		fmt.Fprintf(w, "Skipped %d unreadable sessions\n", len(b.Invalid))
	}
}

func printSession(w io.Writer, s models.ClassifiedSession) {
	name := s.CounterpartName
	if name == "" {
		name = "-"
	}
	fmt.Fprintf(w, "  %-7s  %s %s-%s  %s  [%s]\n", s.LiveStatus, s.SessionDate, s.StartTime, s.EndTime, name, s.ID)
}
