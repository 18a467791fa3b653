package holiday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Server-side defaults applied when a request leaves the field empty.
const (
	DefaultDate     = "today"
	DefaultTimezone = "America/Chicago"
)

// dateLayout is the wire format of string dates, e.g. "08/08/2024".
const dateLayout = "01/02/2006"

// GetEventsRequest holds the parameters for GetEvents.
// Empty Date and Timezone are not sent and the server applies its defaults.
type GetEventsRequest struct {
	// Date is "today", "tomorrow", "now", a "MM/DD/YYYY" date or a Unix timestamp
	Date     string
	Adult    bool
	Timezone string
}

// GetEventInfoRequest holds the parameters for GetEventInfo.
type GetEventInfoRequest struct {
	ID string
	// Start and End bound the inclusive year range used to compute
	// occurrences. Zero means unset.
	Start int
	End   int
}

// SearchRequest holds the parameters for Search.
type SearchRequest struct {
	Query string
	Adult bool
}

// RateLimit is the quota reported by the service for the current month
type RateLimit struct {
	LimitMonth     int `json:"limit_month"`
	RemainingMonth int `json:"remaining_month"`
}

// Used returns how many requests have been consumed this month
func (r RateLimit) Used() int {
	if r.LimitMonth <= r.RemainingMonth {
		return 0
	}
	return r.LimitMonth - r.RemainingMonth
}

// EventSummary is the short form of an event returned in lists
type EventSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GetEventsResponse is returned by GetEvents
type GetEventsResponse struct {
	Adult            bool            `json:"adult"`
	Date             DateOrTimestamp `json:"date"`
	Timezone         string          `json:"timezone"`
	Events           []EventSummary  `json:"events"`
	MultidayStarting []EventSummary  `json:"multiday_starting"`
	MultidayOngoing  []EventSummary  `json:"multiday_ongoing"`
	RateLimit        RateLimit       `json:"-"`
}

// GetEventInfoResponse is returned by GetEventInfo
type GetEventInfoResponse struct {
	Event     EventInfo `json:"event"`
	RateLimit RateLimit `json:"-"`
}

// SearchResponse is returned by Search
type SearchResponse struct {
	Query     string         `json:"query"`
	Adult     bool           `json:"adult"`
	Events    []EventSummary `json:"events"`
	RateLimit RateLimit      `json:"-"`
}

// EventInfo is the full description of a single event. Sections that are
// not part of the caller's plan are left nil.
type EventInfo struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	URL            string          `json:"url"`
	Adult          bool            `json:"adult"`
	AlternateNames []AlternateName `json:"alternate_names"`
	Hashtags       []string        `json:"hashtags,omitempty"`
	Image          *ImageInfo      `json:"image,omitempty"`
	Sources        []string        `json:"sources,omitempty"`
	Description    *RichText       `json:"description,omitempty"`
	HowToObserve   *RichText       `json:"how_to_observe,omitempty"`
	Patterns       []Pattern       `json:"patterns,omitempty"`
	Founders       []FounderInfo   `json:"founders,omitempty"`
	Occurrences    []Occurrence    `json:"occurrences,omitempty"`
	Analytics      *Analytics      `json:"analytics,omitempty"`
	Tags           []Tag           `json:"tags,omitempty"`
}

// Summary returns the list form of the event
func (e *EventInfo) Summary() EventSummary {
	return EventSummary{ID: e.ID, Name: e.Name, URL: e.URL}
}

// TagNames returns the tag names in order
func (e *EventInfo) TagNames() []string {
	names := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		names = append(names, t.Name)
	}
	return names
}

// AlternateName is another name the event has been known by
type AlternateName struct {
	Name      string `json:"name"`
	FirstYear *int   `json:"first_year,omitempty"`
	LastYear  *int   `json:"last_year,omitempty"`
}

// ImageInfo holds image URLs in three sizes
type ImageInfo struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// RichText is a piece of text in plain, HTML and Markdown form
type RichText struct {
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// Pattern describes how an event is observed, e.g. "annually on August 8th"
type Pattern struct {
	FirstYear        *int   `json:"first_year,omitempty"`
	LastYear         *int   `json:"last_year,omitempty"`
	Observed         string `json:"observed"`
	ObservedHTML     string `json:"observed_html"`
	ObservedMarkdown string `json:"observed_markdown"`
	Length           int    `json:"length"`
}

// FounderInfo describes who founded an event
type FounderInfo struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Date string `json:"date,omitempty"`
}

// Occurrence is a date on which the event falls. Length is in days.
type Occurrence struct {
	Date   DateOrTimestamp `json:"date"`
	Length int             `json:"length"`
}

// Analytics holds popularity figures for an event
type Analytics struct {
	OverallRank  int    `json:"overall_rank"`
	SocialRank   int    `json:"social_rank"`
	SocialShares int    `json:"social_shares"`
	Popularity   string `json:"popularity"`
}

// Tag is a category label attached to an event
type Tag struct {
	Name string `json:"name"`
}

// DateOrTimestamp holds a date the API sends either as a "MM/DD/YYYY"
// string or as a Unix timestamp.
type DateOrTimestamp struct {
	Date        string
	Timestamp   int64
	IsTimestamp bool
}

// NewDate returns a DateOrTimestamp holding a string date
func NewDate(date string) DateOrTimestamp {
	return DateOrTimestamp{Date: date}
}

// NewTimestamp returns a DateOrTimestamp holding a Unix timestamp
func NewTimestamp(ts int64) DateOrTimestamp {
	return DateOrTimestamp{Timestamp: ts, IsTimestamp: true}
}

// UnmarshalJSON accepts a JSON string or number. null leaves d unchanged.
func (d *DateOrTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = NewDate(s)
		return nil
	}

	var ts int64
	if err := json.Unmarshal(data, &ts); err != nil {
		return fmt.Errorf("date must be a string or unix timestamp: %w", err)
	}
	*d = NewTimestamp(ts)
	return nil
}

// MarshalJSON writes the value back in the form it was received
func (d DateOrTimestamp) MarshalJSON() ([]byte, error) {
	if d.IsTimestamp {
		return []byte(strconv.FormatInt(d.Timestamp, 10)), nil
	}
	return json.Marshal(d.Date)
}

// String returns the date string or the decimal timestamp
func (d DateOrTimestamp) String() string {
	if d.IsTimestamp {
		return strconv.FormatInt(d.Timestamp, 10)
	}
	return d.Date
}

// Time converts the value to a time.Time. String dates are interpreted as
// midnight in loc; a nil loc means UTC.
func (d DateOrTimestamp) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if d.IsTimestamp {
		return time.Unix(d.Timestamp, 0).In(loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, d.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", d.Date, err)
	}
	return t, nil
}
