package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/s0up4200/checkiday/config"
	"github.com/s0up4200/checkiday/filter"
	"github.com/s0up4200/checkiday/format"
	"github.com/s0up4200/checkiday/holiday"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  holiday.API

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	jsonOutput bool
	showURLs   bool

	compiler = filter.NewCompiler(filter.WithCache(16))

	// newClient is replaced in tests
	newClient = func(cfg *config.Config, logger zerolog.Logger) (holiday.API, error) {
		return holiday.NewClient(cfg.API.APIKey, logger, clientOptions(cfg)...)
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "checkiday",
	Short: "Look up holidays and observances from the Holiday and Event API",
	Long: `checkiday is a CLI for the Checkiday Holiday and Event API. It lists the
events for a date, shows the details of individual events and searches
events by name.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the build information reported by the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON responses")
	rootCmd.PersistentFlags().BoolVar(&showURLs, "urls", false, "show checkiday.com links")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	client, err = newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create holiday event API client: %w", err)
	}

	logger.Debug().
		Str("timezone", cfg.Events.Timezone).
		Bool("adult", cfg.Events.Adult).
		Float64("requests_per_second", cfg.API.RequestsPerSecond).
		Msg("Client initialized")

	return nil
}

// clientOptions maps the API config onto client options
func clientOptions(cfg *config.Config) []holiday.Option {
	opts := []holiday.Option{
		holiday.WithTimeout(cfg.API.Timeout),
		holiday.WithDebugLogging(cfg.API.Debug),
		holiday.WithUserAgent(fmt.Sprintf("checkiday-cli/%s (+%s)", version, holiday.Version)),
	}
	if cfg.API.BaseURL != "" {
		opts = append(opts, holiday.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.RequestsPerSecond > 0 {
		burst := max(int(cfg.API.RequestsPerSecond), 1)
		opts = append(opts, holiday.WithRateLimit(rate.Limit(cfg.API.RequestsPerSecond), burst))
	}
	return opts
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// No colors when logs are piped
	color := cfg.Color && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// newFormatter builds a console formatter for the current flags
func newFormatter(details bool) *format.ConsoleFormatter {
	var loc *time.Location
	if cfg != nil && cfg.Events.Timezone != "" {
		// validated on load
		loc, _ = time.LoadLocation(cfg.Events.Timezone)
	}
	return format.NewConsoleFormatter(format.Options{
		ShowURLs:    showURLs,
		ShowDetails: details,
		Location:    loc,
	})
}

// The API types keep the quota out of their own encoding, so --json output
// adds it back as rate_limit.
type (
	eventsOutput struct {
		*holiday.GetEventsResponse
		RateLimit holiday.RateLimit `json:"rate_limit"`
	}
	searchOutput struct {
		*holiday.SearchResponse
		RateLimit holiday.RateLimit `json:"rate_limit"`
	}
	infoOutput struct {
		Events    []holiday.EventInfo `json:"events"`
		RateLimit holiday.RateLimit   `json:"rate_limit"`
	}
)

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// getFilterExpression determines the filter expression to use.
// An empty result means no filtering.
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

// applyFilter filters events with the configured expression
func applyFilter(events []holiday.EventSummary) ([]holiday.EventSummary, error) {
	expr, err := getFilterExpression()
	if err != nil || expr == "" {
		return events, err
	}

	f, err := compiler.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	logger.Debug().Str("filter", f.Expression()).Int("events", len(events)).Msg("Filtering events")

	return f.Apply(events)
}
