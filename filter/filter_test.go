package filter

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/checkiday/holiday"
)

var testEvents = []holiday.EventSummary{
	{ID: "b80630ae75c35f34c0526173dd999cfc", Name: "Cinco de Mayo", URL: "https://www.checkiday.com/b80630ae75c35f34c0526173dd999cfc/cinco-de-mayo"},
	{ID: "f90b893ea04939d7456f30c54f68d7b4", Name: "Nurses Week", URL: "https://www.checkiday.com/f90b893ea04939d7456f30c54f68d7b4/nurses-week"},
	{ID: "25c3a6a1a0c4a1e5e77bb1f2d3a3a2f0", Name: "National Pizza Party Day", URL: "https://www.checkiday.com/25c3a6a1a0c4a1e5e77bb1f2d3a3a2f0/national-pizza-party-day"},
	{ID: "9a2b1f6d8e1c4a3b2c1d0e9f8a7b6c5d", Name: "World Laughter Day", URL: "https://www.checkiday.com/9a2b1f6d8e1c4a3b2c1d0e9f8a7b6c5d/world-laughter-day"},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `includes(Name, "pizza")`,
		},
		{
			name:        "empty expression",
			expression:  "",
			errContains: "empty expression",
		},
		{
			name:        "blank expression",
			expression:  "   ",
			errContains: "empty expression",
		},
		{
			name:        "invalid syntax",
			expression:  `includes(Name, "unclosed`,
			errContains: "failed to compile expression",
		},
		{
			name:        "unknown field",
			expression:  `Year > 2020`,
			errContains: "failed to compile expression",
		},
		{
			name:        "not a boolean",
			expression:  `Name`,
			errContains: "failed to compile expression",
		},
		{
			name:       "complex expression",
			expression: `(hasWord(Name, "day") or endsIn(Name, "week")) and not beginsWith(Slug, "national")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)

				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{
			name:       "contains ignores case",
			expression: `includes(Name, "PIZZA")`,
			want:       []string{"National Pizza Party Day"},
		},
		{
			name:       "starts with",
			expression: `beginsWith(Name, "world")`,
			want:       []string{"World Laughter Day"},
		},
		{
			name:       "ends with",
			expression: `endsIn(Name, "week")`,
			want:       []string{"Nurses Week"},
		},
		{
			name:       "whole word",
			expression: `hasWord(Name, "day")`,
			want:       []string{"National Pizza Party Day", "World Laughter Day"},
		},
		{
			name:       "whole word does not match substrings",
			expression: `hasWord(Name, "may")`,
			want:       []string{},
		},
		{
			name:       "slug regex",
			expression: `Slug matches "^cinco-"`,
			want:       []string{"Cinco de Mayo"},
		},
		{
			name:       "id equality",
			expression: `ID == "f90b893ea04939d7456f30c54f68d7b4"`,
			want:       []string{"Nurses Week"},
		},
		{
			name:       "lower and upper",
			expression: `lower(Name) == "cinco de mayo" or upper(Name) == "NURSES WEEK"`,
			want:       []string{"Cinco de Mayo", "Nurses Week"},
		},
		{
			name:       "url contains",
			expression: `includes(URL, "laughter")`,
			want:       []string{"World Laughter Day"},
		},
		{
			name:       "negation",
			expression: `not hasWord(Name, "day")`,
			want:       []string{"Cinco de Mayo", "Nurses Week"},
		},
		{
			name:       "contains operator",
			expression: `lower(Name) contains "pizza"`,
			want:       []string{"National Pizza Party Day"},
		},
		{
			name:       "starts and ends with operators",
			expression: `Name startsWith "World" or Name endsWith "Week"`,
			want:       []string{"Nurses Week", "World Laughter Day"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Apply(testEvents)
			require.NoError(t, err)

			names := make([]string, 0, len(matched))
			for _, e := range matched {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDocumentedExpressions(t *testing.T) {
	for _, expression := range []string{
		`includes(Name, "pizza") and not beginsWith(Name, "National")`,
		`hasWord(Name, "day") or Slug matches "^world-"`,
		`lower(Name) contains "pizza"`,
		`beginsWith(Name, "National")`,
		`endsIn(Name, "Day")`,
	} {
		t.Run(expression, func(t *testing.T) {
			f, err := Compile(expression)
			require.NoError(t, err)
			_, err = f.Apply(testEvents)
			assert.NoError(t, err)
		})
	}
}

func TestOperatorNamesAreNotFunctions(t *testing.T) {
	for _, expression := range []string{
		`contains(Name, "pizza")`,
		`startsWith(Name, "National")`,
		`endsWith(Name, "Day")`,
	} {
		t.Run(expression, func(t *testing.T) {
			_, err := Compile(expression)
			var compErr *CompilationError
			assert.True(t, errors.As(err, &compErr))
		})
	}
}

func TestApplyEmpty(t *testing.T) {
	f, err := Compile(`includes(Name, "x")`)
	require.NoError(t, err)

	matched, err := f.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestEvaluationError(t *testing.T) {
	f, err := Compile(`int(Name) > 0`)
	require.NoError(t, err)

	_, err = f.Apply(testEvents)
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "Cinco de Mayo", evalErr.EventName)
	assert.Equal(t, `int(Name) > 0`, evalErr.Expression)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.checkiday.com/b80630ae75c35f34c0526173dd999cfc/cinco-de-mayo", "cinco-de-mayo"},
		{"https://www.checkiday.com/", ""},
		{"https://www.checkiday.com", ""},
		{"", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, slug(tt.url))
		})
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler(WithCache(2))

	first, err := c.Compile(`includes(Name, "a")`)
	require.NoError(t, err)
	again, err := c.Compile(`  includes(Name, "a")  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, c.Size())

	_, err = c.Compile(`includes(Name, "b")`)
	require.NoError(t, err)
	_, err = c.Compile(`includes(Name, "c")`)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Size())

	// "a" was least recently used and has been evicted
	evicted, err := c.Compile(`includes(Name, "a")`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCompilerWithoutCache(t *testing.T) {
	c := NewCompiler(WithCache(0))

	a, err := c.Compile(`includes(Name, "a")`)
	require.NoError(t, err)
	b, err := c.Compile(`includes(Name, "a")`)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 0, c.Size())
	c.Clear()
}

func TestConcurrentCompileAndMatch(t *testing.T) {
	c := NewCompiler(WithCache(4))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := c.Compile(fmt.Sprintf(`includes(Name, "%c")`, 'a'+rune(i%6)))
			if !assert.NoError(t, err) {
				return
			}
			_, err = f.Apply(testEvents)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), 4)
}
