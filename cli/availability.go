package cli

import (
	"fmt"
	"io"

	"tutorly/models"
	"tutorly/services/scheduling"

	"github.com/spf13/cobra"
)

func newAvailabilityCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "availability",
		Aliases: []string{"av"},
		Short:   "List and edit weekly availability windows",
	}
	cmd.AddCommand(newAvailabilityListCmd(opts), newAvailabilityEditCmd(opts))
	return cmd
}

func newAvailabilityListCmd(opts *options) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show availability windows by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days := models.Weekdays
			if dayFlag != "" {
				day, err := models.ParseDay(dayFlag)
				if err != nil {
					return err
				}
				days = []models.DayOfWeek{day}
			}

			c, err := opts.client()
			if err != nil {
				return err
			}
			windows, err := c.ListAvailability(cmd.Context())
			if err != nil {
				return err
			}

			store := scheduling.NewAvailabilityStore()
			store.Replace(windows, nowFunc())

			if ok, err := opts.writeJSON(cmd.OutOrStdout(), byDay(store, days)); ok {
				return err
			}
			out := cmd.OutOrStdout()
			for _, day := range days {
				printDay(out, day, store.ViewForDay(day))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "only show one day (MONDAY or MON)")
	return cmd
}

func newAvailabilityEditCmd(opts *options) *cobra.Command {
	var dayFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Create or update the first window of a day",
		Long: `edit opens the first window of --day for editing, or a new window when the
day has none, applies --from and --to (12-hour, e.g. "9:00 AM") and saves it.
A bound that is not given keeps its pre-populated value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := models.ParseDay(dayFlag)
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			notifier := scheduling.NotifierFunc(func(kind scheduling.AlertKind, message string) {
				fmt.Fprintf(errOut, "[%s] %s\n", kind, message)
			})
			store := scheduling.NewAvailabilityStore()
			rec, err := scheduling.NewReconciler(store, c, notifier, opts.logger())
			if err != nil {
				return err
			}
			rec.Now = nowFunc

			ctx := cmd.Context()
			if err := rec.Refresh(ctx); err != nil {
				return err
			}
			sess, err := rec.OpenEdit(day)
			if err != nil {
				return err
			}

			for _, b := range []struct {
				bound scheduling.Bound
				value string
			}{{scheduling.BoundFrom, fromFlag}, {scheduling.BoundTo, toFlag}} {
				if b.value == "" {
					continue
				}
				in, err := scheduling.ParseClock12(b.value)
				if err != nil {
					_ = rec.Cancel()
					return fmt.Errorf("--%s: %w", b.bound, err)
				}
				if err := rec.SetTime(b.bound, in); err != nil {
					return err
				}
			}

			saved, err := rec.Save(ctx)
			if saved == nil {
				_ = rec.Cancel()
				return err
			}

			if ok, jerr := opts.writeJSON(cmd.OutOrStdout(), saved); ok {
				if jerr != nil {
					return jerr
				}
				return err
			}
			verb := "Created"
			if sess.IsUpdate() {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s window %s\n", verb, saved.DayOfWeek.Abbrev(), formatWindow(*saved))
			printDay(cmd.OutOrStdout(), day, rec.ViewForDay(day))
			return err
		},
	}
	cmd.Flags().StringVar(&dayFlag, "day", "", "day of week (MONDAY or MON)")
	cmd.Flags().StringVar(&fromFlag, "from", "", `window start, e.g. "9:00 AM"`)
	cmd.Flags().StringVar(&toFlag, "to", "", `window end, e.g. "5:00 PM"`)
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func byDay(store *scheduling.AvailabilityStore, days []models.DayOfWeek) map[models.DayOfWeek][]models.AvailabilityWindow {
	out := make(map[models.DayOfWeek][]models.AvailabilityWindow, len(days))
	for _, day := range days {
		out[day] = store.ViewForDay(day)
	}
	return out
}

func printDay(w io.Writer, day models.DayOfWeek, windows []models.AvailabilityWindow) {
	if len(windows) == 0 {
		fmt.Fprintf(w, "%s  -\n", day.Abbrev())
		return
	}
	for i, win := range windows {
		label := day.Abbrev()
		if i > 0 {
			label = "   "
		}
		fmt.Fprintf(w, "%s  %s  [%s]\n", label, formatWindow(win), win.ID)
	}
}

func formatWindow(w models.AvailabilityWindow) string {
	return fmt.Sprintf("%s - %s", clock12(w.StartTime), clock12(w.EndTime))
}

func clock12(canonical string) string {
	in, err := scheduling.FromCanonical(canonical)
	if err != nil {
		return canonical
	}
	return in.String()
}
