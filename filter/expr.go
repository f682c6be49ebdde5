package filter

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of programs kept by the package compiler
const DefaultCacheSize = 64

var defaultCompiler = NewExprCompiler(WithCache(DefaultCacheSize))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the records matching f, in their original order
func Apply(f Filter, records []Record) []Record {
	matches := make([]Record, 0, len(records))
	for _, record := range records {
		if f.Evaluate(record) {
			matches = append(matches, record)
		}
	}
	return matches
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.compileEnvironment()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

func (c *exprCompiler) compileEnvironment() map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+2)
	maps.Copy(env, c.helperFuncs)
	env["has"] = func(string) bool { return false }
	env["Record"] = Record{}
	return env
}

// Evaluate evaluates the filter against a record. Records that make the
// program fail do not match.
func (f *exprFilter) Evaluate(record Record) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(f.helpers, record))
	if err != nil {
		return false
	}

	matched, ok := result.(bool)
	return ok && matched
}

// Expression returns the original filter expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(v any) (int, error) {
		t, err := toTime(v)
		if err != nil {
			return 0, err
		}
		return int(time.Since(t).Hours() / 24), nil
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["parseDate"] = func(dateStr string) time.Time {
		t, _ := parseTime(dateStr)
		return t
	}
	funcs["now"] = time.Now

	// String helpers
	funcs["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	return funcs
}

// runtimeEnvironment exposes the record's top-level keys as variables.
// Helpers shadow record keys of the same name.
func runtimeEnvironment(helpers map[string]any, record Record) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+2)
	maps.Copy(env, record)
	maps.Copy(env, helpers)

	env["Record"] = record
	env["has"] = func(key string) bool {
		v, ok := record[key]
		return ok && v != nil
	}

	return env
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return parseTime(t)
	default:
		return time.Time{}, fmt.Errorf("cannot use %T as a date", v)
	}
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
