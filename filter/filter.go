// Package filter evaluates expr-lang expressions against events.
//
// An expression sees the event fields ID, Name, URL and Slug, plus string
// helpers that ignore case (includes, beginsWith, endsIn, hasWord) and the
// expr operators and builtins:
//
//	includes(Name, "pizza") and not beginsWith(Name, "National")
//	hasWord(Name, "day") or Slug matches "^world-"
//	lower(Name) contains "pizza"
package filter

import (
	"net/url"
	"path"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/checkiday/holiday"
)

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache keeps up to size compiled filters keyed by expression
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newProgramCache(size)
		}
	}
}

// Compiler turns expressions into filters
type Compiler struct {
	cache *programCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression without caching
func Compile(expression string) (*Filter, error) {
	return NewCompiler().Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	// Unknown identifiers are rejected here rather than at evaluation time
	program, err := expr.Compile(expression,
		expr.Env(environment(holiday.EventSummary{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program}
	if c.cache != nil {
		c.cache.put(expression, f)
	}
	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// Expression returns the trimmed expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match reports whether the event satisfies the filter
func (f *Filter) Match(event holiday.EventSummary) (bool, error) {
	result, err := expr.Run(f.program, environment(event))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, EventName: event.Name, Err: err}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Apply returns the events matching the filter, in their original order
func (f *Filter) Apply(events []holiday.EventSummary) ([]holiday.EventSummary, error) {
	matched := make([]holiday.EventSummary, 0, len(events))
	for _, event := range events {
		ok, err := f.Match(event)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

// environment builds the variables and helpers visible to an expression
func environment(event holiday.EventSummary) map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)

	env["ID"] = event.ID
	env["Name"] = event.Name
	env["URL"] = event.URL
	env["Slug"] = slug(event.URL)

	return env
}

// addHelperFunctions adds the string helpers. Comparisons ignore case.
// contains, startsWith and endsWith are expr operators, and lower/upper are
// builtins, so none of those names can be used here.
func addHelperFunctions(env map[string]any) {
	env["includes"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["beginsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsIn"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["hasWord"] = func(str, word string) bool {
		for _, w := range strings.FieldsFunc(str, isSeparator) {
			if strings.EqualFold(w, word) {
				return true
			}
		}
		return false
	}
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '-', '\'', ',', '.', '!', '&', '(', ')':
		return true
	}
	return false
}

// slug returns the last path element of an event URL, e.g. "cinco-de-mayo"
func slug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}
	s := path.Base(u.Path)
	if s == "/" || s == "." {
		return ""
	}
	return s
}
