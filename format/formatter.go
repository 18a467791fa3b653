// Package format renders Holiday and Event API results for the terminal.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/s0up4200/checkiday/holiday"
)

const displayDate = "2006-01-02"

// Options controls what the console formatter prints
type Options struct {
	// ShowURLs prints the checkiday.com link under each event
	ShowURLs bool
	// ShowDetails prints descriptions, sources and analytics for event info
	ShowDetails bool
	// Location is used to display occurrence dates. Nil means UTC.
	Location *time.Location
}

// ConsoleFormatter provides console output formatting for events
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) *ConsoleFormatter {
	return &ConsoleFormatter{options: options}
}

// FormatEvents formats the events for a date. events replaces resp.Events
// so callers can pass a filtered list.
func (f *ConsoleFormatter) FormatEvents(resp *holiday.GetEventsResponse, events []holiday.EventSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nEvents on %s", resp.Date.String())
	if resp.Timezone != "" {
		fmt.Fprintf(&sb, " (%s)", resp.Timezone)
	}
	sb.WriteString("\n\n")

	if len(events) == 0 {
		sb.WriteString("No events found\n")
	} else {
		f.writeList(&sb, events)
	}

	if len(resp.MultidayStarting) > 0 {
		fmt.Fprintf(&sb, "\nMultiday events starting (%d):\n\n", len(resp.MultidayStarting))
		f.writeList(&sb, resp.MultidayStarting)
	}
	if len(resp.MultidayOngoing) > 0 {
		fmt.Fprintf(&sb, "\nMultiday events ongoing (%d):\n\n", len(resp.MultidayOngoing))
		f.writeList(&sb, resp.MultidayOngoing)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatSearch formats search results
func (f *ConsoleFormatter) FormatSearch(resp *holiday.SearchResponse) string {
	if len(resp.Events) == 0 {
		return fmt.Sprintf("No events found matching %q\n", resp.Query)
	}

	var sb strings.Builder
	sb.WriteString("\nEvent")
	if len(resp.Events) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " matching %q (%d):\n\n", resp.Query, len(resp.Events))
	f.writeList(&sb, resp.Events)
	sb.WriteString("\n")
	return sb.String()
}

// FormatEventInfo formats the full description of an event
func (f *ConsoleFormatter) FormatEventInfo(event holiday.EventInfo) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", event.Name)
	if event.Adult {
		sb.WriteString(" [ADULT]")
	}
	sb.WriteString("\n")

	var lines []string
	lines = append(lines, "ID: "+event.ID)
	if f.options.ShowURLs && event.URL != "" {
		lines = append(lines, "URL: "+event.URL)
	}

	if len(event.AlternateNames) > 0 {
		names := make([]string, 0, len(event.AlternateNames))
		for _, alt := range event.AlternateNames {
			names = append(names, alt.Name+yearRange(alt.FirstYear, alt.LastYear))
		}
		lines = append(lines, "Also known as: "+strings.Join(names, ", "))
	}

	for _, p := range event.Patterns {
		observed := "Observed " + p.Observed + yearRange(p.FirstYear, p.LastYear)
		if p.Length > 1 {
			observed += fmt.Sprintf(" for %d days", p.Length)
		}
		lines = append(lines, observed)
	}

	for _, founder := range event.Founders {
		founded := "Founded by " + founder.Name
		if founder.Date != "" {
			founded += " in " + founder.Date
		}
		lines = append(lines, founded)
	}

	if len(event.Hashtags) > 0 {
		tags := make([]string, 0, len(event.Hashtags))
		for _, h := range event.Hashtags {
			tags = append(tags, "#"+h)
		}
		lines = append(lines, "Hashtags: "+strings.Join(tags, " "))
	}

	if len(event.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(event.TagNames(), ", "))
	}

	if len(event.Occurrences) > 0 {
		dates := make([]string, 0, len(event.Occurrences))
		for _, occ := range event.Occurrences {
			dates = append(dates, f.occurrence(occ))
		}
		lines = append(lines, "Occurrences: "+strings.Join(dates, ", "))
	}

	if f.options.ShowDetails {
		if event.Description != nil && event.Description.Text != "" {
			lines = append(lines, "Description: "+event.Description.Text)
		}
		if event.HowToObserve != nil && event.HowToObserve.Text != "" {
			lines = append(lines, "How to observe: "+event.HowToObserve.Text)
		}
		if event.Analytics != nil {
			a := event.Analytics
			lines = append(lines, fmt.Sprintf("Popularity: %s (overall #%d, social #%d, %d shares)",
				a.Popularity, a.OverallRank, a.SocialRank, a.SocialShares))
		}
		if event.Image != nil && event.Image.Medium != "" {
			lines = append(lines, "Image: "+event.Image.Medium)
		}
		if len(event.Sources) > 0 {
			lines = append(lines, "Sources: "+strings.Join(event.Sources, ", "))
		}
	}

	for i, line := range lines {
		prefix := "├"
		if i == len(lines)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %s\n", prefix, line)
	}

	return sb.String()
}

// FormatRateLimit formats the monthly quota
func (f *ConsoleFormatter) FormatRateLimit(rl holiday.RateLimit) string {
	if rl.LimitMonth == 0 && rl.RemainingMonth == 0 {
		return "Rate limit: unknown\n"
	}
	return fmt.Sprintf("Rate limit: %d of %d requests remaining this month (%d used)\n",
		rl.RemainingMonth, rl.LimitMonth, rl.Used())
}

// writeList writes events as a tree
func (f *ConsoleFormatter) writeList(sb *strings.Builder, events []holiday.EventSummary) {
	for i, event := range events {
		isLast := i == len(events)-1
		prefix := "├"
		if isLast {
			prefix = "╰"
		}

		fmt.Fprintf(sb, "%s── %s\n", prefix, event.Name)

		indent := "│   "
		if isLast {
			indent = "    "
		}

		fmt.Fprintf(sb, "%sID: %s\n", indent, event.ID)
		if f.options.ShowURLs && event.URL != "" {
			fmt.Fprintf(sb, "%s%s\n", indent, event.URL)
		}
	}
}

// occurrence renders an occurrence date, falling back to the raw value
func (f *ConsoleFormatter) occurrence(occ holiday.Occurrence) string {
	s := occ.Date.String()
	if t, err := occ.Date.Time(f.options.Location); err == nil {
		s = t.Format(displayDate)
	}
	if occ.Length > 1 {
		s += fmt.Sprintf(" (%d days)", occ.Length)
	}
	return s
}

func yearRange(first, last *int) string {
	switch {
	case first != nil && last != nil:
		return fmt.Sprintf(" (%d-%d)", *first, *last)
	case first != nil:
		return " (since " + strconv.Itoa(*first) + ")"
	case last != nil:
		return " (until " + strconv.Itoa(*last) + ")"
	default:
		return ""
	}
}
