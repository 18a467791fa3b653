package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/checkiday/holiday"
)

var (
	eventsDate     string
	eventsTimezone string
	eventsAdult    bool
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the events for a date",
	Long: `List the holidays and observances for a date. The date defaults to today
and can be "today", "tomorrow", "now", a MM/DD/YYYY date or a Unix timestamp.

The filter applies to single-day and multiday events alike.

Examples:
  checkiday events
  checkiday events --date 12/25/2025 --timezone Europe/Oslo
  checkiday events --filter 'hasWord(Name, "national")'
  checkiday events --preset food`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().StringVar(&eventsDate, "date", "", "date to list events for (default today)")
	eventsCmd.Flags().StringVar(&eventsTimezone, "timezone", "", "IANA timezone, overrides events.timezone")
	eventsCmd.Flags().BoolVar(&eventsAdult, "adult", false, "include adult events, overrides events.adult")
	eventsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	eventsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runEvents(cmd *cobra.Command, args []string) error {
	req := holiday.GetEventsRequest{
		Date:     eventsDate,
		Adult:    cfg.Events.Adult,
		Timezone: cfg.Events.Timezone,
	}
	if cmd.Flags().Changed("adult") {
		req.Adult = eventsAdult
	}
	if cmd.Flags().Changed("timezone") {
		req.Timezone = eventsTimezone
	}

	logger.Info().
		Str("date", req.Date).
		Str("timezone", req.Timezone).
		Bool("adult", req.Adult).
		Msg("Fetching events")

	resp, err := client.GetEvents(cmd.Context(), req)
	if err != nil {
		return err
	}

	filtered := *resp
	for _, list := range []*[]holiday.EventSummary{
		&filtered.Events,
		&filtered.MultidayStarting,
		&filtered.MultidayOngoing,
	} {
		if *list, err = applyFilter(*list); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, eventsOutput{GetEventsResponse: &filtered, RateLimit: resp.RateLimit})
	}

	f := newFormatter(false)
	fmt.Fprint(out, f.FormatEvents(&filtered, filtered.Events))
	fmt.Fprint(out, f.FormatRateLimit(resp.RateLimit))
	return nil
}
