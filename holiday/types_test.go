package holiday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOrTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DateOrTimestamp
		wantErr  bool
	}{
		{name: "string date", input: `"08/08/2024"`, expected: NewDate("08/08/2024")},
		{name: "timestamp", input: `1734772794`, expected: NewTimestamp(1734772794)},
		{name: "negative timestamp", input: `-12345`, expected: NewTimestamp(-12345)},
		{name: "padded", input: ` 42 `, expected: NewTimestamp(42)},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOrTimestamp
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDateOrTimestampNull(t *testing.T) {
	var occ Occurrence
	require.NoError(t, json.Unmarshal([]byte(`{"date":null,"length":1}`), &occ))
	assert.Equal(t, DateOrTimestamp{}, occ.Date)
	assert.False(t, occ.Date.IsTimestamp)
	assert.Equal(t, 1, occ.Length)

	d := NewDate("08/08/2024")
	require.NoError(t, d.UnmarshalJSON([]byte("null")))
	assert.Equal(t, NewDate("08/08/2024"), d)
}

func TestDateOrTimestampMarshal(t *testing.T) {
	data, err := json.Marshal(Occurrence{Date: NewTimestamp(10), Length: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":10,"length":1}`, string(data))

	data, err = json.Marshal(Occurrence{Date: NewDate("01/02/2025"), Length: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"01/02/2025","length":3}`, string(data))
}

func TestDateOrTimestampTime(t *testing.T) {
	t.Run("string date", func(t *testing.T) {
		got, err := NewDate("08/08/2024").Time(nil)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.August, 8, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("string date in zone", func(t *testing.T) {
		loc := time.FixedZone("test", -5*3600)
		got, err := NewDate("12/25/2023").Time(loc)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, time.December, 25, 0, 0, 0, 0, loc), got)
	})

	t.Run("timestamp", func(t *testing.T) {
		got, err := NewTimestamp(1682652947).Time(nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1682652947), got.Unix())
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewDate("today").Time(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid date "today"`)
	})
}

func TestDateOrTimestampString(t *testing.T) {
	assert.Equal(t, "05/05/2025", NewDate("05/05/2025").String())
	assert.Equal(t, "-12345", NewTimestamp(-12345).String())
}

func TestRateLimitUsed(t *testing.T) {
	assert.Equal(t, 12, RateLimit{LimitMonth: 100, RemainingMonth: 88}.Used())
	assert.Equal(t, 0, RateLimit{}.Used())
	assert.Equal(t, 0, RateLimit{LimitMonth: 5, RemainingMonth: 9}.Used())
}

func TestEventInfoSummary(t *testing.T) {
	info := EventInfo{ID: "1", Name: "Pizza Day", URL: "https://example.com/1", Hashtags: []string{"PizzaDay"}}
	assert.Equal(t, EventSummary{ID: "1", Name: "Pizza Day", URL: "https://example.com/1"}, info.Summary())
	assert.Empty(t, info.TagNames())
}
