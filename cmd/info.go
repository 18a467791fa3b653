package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/checkiday/holiday"
)

var (
	infoStart   int
	infoEnd     int
	infoDetails bool
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <event-id>...",
	Short: "Show the details of one or more events",
	Long: `Show the details of events by id. Several ids are fetched concurrently,
bounded by events.concurrency.

Examples:
  checkiday info f90b893ea04939d7456f30c54f68d7b4
  checkiday info f90b893ea04939d7456f30c54f68d7b4 --start 2020 --end 2030 --details`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVar(&infoStart, "start", 0, "first year of occurrences to list")
	infoCmd.Flags().IntVar(&infoEnd, "end", 0, "last year of occurrences to list")
	infoCmd.Flags().BoolVar(&infoDetails, "details", false, "show descriptions, sources and analytics")
}

func runInfo(cmd *cobra.Command, args []string) error {
	results := make([]*holiday.GetEventInfoResponse, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Events.Concurrency)

	for i, id := range args {
		i, id := i, id
		g.Go(func() error {
			logger.Debug().Str("id", id).Msg("Fetching event info")

			resp, err := client.GetEventInfo(ctx, holiday.GetEventInfoRequest{
				ID:    id,
				Start: infoStart,
				End:   infoEnd,
			})
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Responses can arrive in any order; report the smallest remaining quota
	lowest := results[0].RateLimit
	for _, r := range results[1:] {
		if r.RateLimit.RemainingMonth < lowest.RemainingMonth {
			lowest = r.RateLimit
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		events := make([]holiday.EventInfo, 0, len(results))
		for _, r := range results {
			events = append(events, r.Event)
		}
		return writeJSON(out, infoOutput{Events: events, RateLimit: lowest})
	}

	f := newFormatter(infoDetails)
	for _, r := range results {
		fmt.Fprint(out, f.FormatEventInfo(r.Event))
	}
	fmt.Fprint(out, "\n"+f.FormatRateLimit(lowest))
	return nil
}
