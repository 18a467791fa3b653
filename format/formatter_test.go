package format

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/checkiday/holiday"
)

func loadFixture(t *testing.T, name string, out any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "holiday", "testdata", name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestFormatEvents(t *testing.T) {
	var resp holiday.GetEventsResponse
	loadFixture(t, "getEvents-default.json", &resp)

	f := NewConsoleFormatter(Options{})
	out := f.FormatEvents(&resp, resp.Events)

	expected := "\nEvents on 05/05/2025 (America/Chicago)\n\n" +
		"├── Cinco de Mayo\n" +
		"│   ID: b80630ae75c35f34c0526173dd999cfc\n" +
		"╰── Great Lakes Awareness Day\n" +
		"    ID: 50bd02adb1a5fb297657a46a1b6b1082\n" +
		"\nMultiday events starting (1):\n\n" +
		"╰── Teacher Appreciation Week\n" +
		"    ID: b9321bf3ce70e98fb385cb03d2f0cac4\n" +
		"\nMultiday events ongoing (2):\n\n" +
		"├── Be Kind to Animals Week\n" +
		"│   ID: 676cd91e31adcacd0a505117d2c4a842\n" +
		"╰── National Children's Mental Health Awareness Week\n" +
		"    ID: decc6d9d46ac1e40bf345d963fe2a7a2\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestFormatEventsFilteredEmpty(t *testing.T) {
	resp := holiday.GetEventsResponse{Date: holiday.NewTimestamp(1682652947)}

	out := NewConsoleFormatter(Options{}).FormatEvents(&resp, nil)
	assert.Contains(t, out, "Events on 1682652947\n")
	assert.Contains(t, out, "No events found")
	assert.NotContains(t, out, "Multiday")
}

func TestFormatEventsWithURLs(t *testing.T) {
	var resp holiday.GetEventsResponse
	loadFixture(t, "getEvents-default.json", &resp)

	out := NewConsoleFormatter(Options{ShowURLs: true}).FormatEvents(&resp, resp.Events[:1])
	assert.Contains(t, out, "╰── Cinco de Mayo\n    ID: b80630ae75c35f34c0526173dd999cfc\n    https://www.checkiday.com/b80630ae75c35f34c0526173dd999cfc/cinco-de-mayo\n")
	assert.NotContains(t, out, "Great Lakes")
}

func TestFormatSearch(t *testing.T) {
	var resp holiday.SearchResponse
	loadFixture(t, "search-default.json", &resp)

	out := NewConsoleFormatter(Options{}).FormatSearch(&resp)
	assert.Contains(t, out, "Events matching \"zucchini\" (2):")
	assert.Contains(t, out, "├── National Zucchini Bread Day\n")
	assert.Contains(t, out, "╰── National Zucchini Day\n")

	resp.Events = resp.Events[:1]
	out = NewConsoleFormatter(Options{}).FormatSearch(&resp)
	assert.Contains(t, out, "Event matching \"zucchini\" (1):")

	resp.Events = nil
	out = NewConsoleFormatter(Options{}).FormatSearch(&resp)
	assert.Equal(t, "No events found matching \"zucchini\"\n", out)
}

func TestFormatEventInfo(t *testing.T) {
	var resp holiday.GetEventInfoResponse
	loadFixture(t, "getEventInfo-default.json", &resp)

	t.Run("summary", func(t *testing.T) {
		out := NewConsoleFormatter(Options{}).FormatEventInfo(resp.Event)

		assert.Contains(t, out, "\nInternational Cat Day\n")
		assert.Contains(t, out, "├── ID: f90b893ea04939d7456f30c54f68d7b4\n")
		assert.Contains(t, out, "├── Also known as: TEST (since 2005)\n")
		assert.Contains(t, out, "├── Observed annually on August 8th (since 2002)\n")
		assert.Contains(t, out, "├── Founded by International Fund For Animal Welfare in 2002\n")
		assert.Contains(t, out, "├── Hashtags: #InternationalCatDay #CatDay\n")
		assert.Contains(t, out, "├── Tags: A, B\n")
		assert.Contains(t, out, "╰── Occurrences: 2020-08-08, 2021-08-08, 2022-08-08, 2023-08-08, 2024-08-08, 2024-12-21, 1969-12-31 (7 days)\n")
		assert.NotContains(t, out, "Description")
		assert.NotContains(t, out, "URL:")
	})

	t.Run("details", func(t *testing.T) {
		out := NewConsoleFormatter(Options{ShowDetails: true, ShowURLs: true}).FormatEventInfo(resp.Event)

		assert.Contains(t, out, "├── URL: https://www.checkiday.com/f90b893ea04939d7456f30c54f68d7b4/international-cat-day\n")
		assert.Contains(t, out, "├── Description: International Cat Day celebrates love for cats...\n")
		assert.Contains(t, out, "├── How to observe: Spend the day playing with your cat...\n")
		assert.Contains(t, out, "├── Popularity: ★★★☆☆ (overall #12, social #34, 56 shares)\n")
		assert.Contains(t, out, "├── Image: https://static.checkiday.com/img/600/kittens-555822.jpg\n")
		assert.Contains(t, out, "╰── Sources: https://www.source.com/1, https://www.source.org/2\n")
	})

	t.Run("location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		event := holiday.EventInfo{
			ID:          "x",
			Name:        "Timestamp Day",
			Adult:       true,
			Occurrences: []holiday.Occurrence{{Date: holiday.NewTimestamp(1734772794), Length: 1}},
		}
		out := NewConsoleFormatter(Options{Location: tokyo}).FormatEventInfo(event)
		assert.Contains(t, out, "Timestamp Day [ADULT]\n")
		assert.Contains(t, out, "╰── Occurrences: 2024-12-21\n")
	})

	t.Run("unparsable date", func(t *testing.T) {
		event := holiday.EventInfo{
			ID:          "x",
			Name:        "Odd Day",
			Occurrences: []holiday.Occurrence{{Date: holiday.NewDate("sometime"), Length: 2}},
		}
		out := NewConsoleFormatter(Options{}).FormatEventInfo(event)
		assert.Contains(t, out, "╰── Occurrences: sometime (2 days)\n")
	})
}

func TestFormatRateLimit(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	assert.Equal(t, "Rate limit: unknown\n", f.FormatRateLimit(holiday.RateLimit{}))
	assert.Equal(t, "Rate limit: 888 of 1000 requests remaining this month (112 used)\n",
		f.FormatRateLimit(holiday.RateLimit{LimitMonth: 1000, RemainingMonth: 888}))
}

func TestYearRange(t *testing.T) {
	first, last := 2001, 2010

	assert.Equal(t, "", yearRange(nil, nil))
	assert.Equal(t, " (since 2001)", yearRange(&first, nil))
	assert.Equal(t, " (until 2010)", yearRange(nil, &last))
	assert.Equal(t, " (2001-2010)", yearRange(&first, &last))
}
