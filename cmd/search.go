package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/checkiday/holiday"
)

var searchAdult bool

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search events by name",
	Long: `Search the Holiday and Event API for events whose name matches the query.

Examples:
  checkiday search pizza
  checkiday search "ice cream" --filter 'beginsWith(Name, "National")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&searchAdult, "adult", false, "include adult events, overrides events.adult")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	req := holiday.SearchRequest{
		Query: strings.Join(args, " "),
		Adult: cfg.Events.Adult,
	}
	if cmd.Flags().Changed("adult") {
		req.Adult = searchAdult
	}

	logger.Info().Str("query", req.Query).Bool("adult", req.Adult).Msg("Searching events")

	resp, err := client.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	resp.Events, err = applyFilter(resp.Events)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, searchOutput{SearchResponse: resp, RateLimit: resp.RateLimit})
	}

	f := newFormatter(false)
	fmt.Fprint(out, f.FormatSearch(resp))
	fmt.Fprint(out, f.FormatRateLimit(resp.RateLimit))
	return nil
}
