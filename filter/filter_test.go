package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `status == "running"`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:        "invalid syntax",
			expression:  `name == "unclosed`,
			wantErr:     true,
			errContains: "failed to compile expression",
		},
		{
			name:       "complex expression",
			expression: `has("email") and containsFold(email, "@example.com") and id > 10`,
		},
		{
			name:       "non boolean result",
			expression: `1 + 2`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, filter)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	created := time.Now().AddDate(0, 0, -40).UTC().Format(time.RFC3339)
	record := Record{
		"id":         float64(42),
		"username":   "Steve",
		"email":      "steve@Example.com",
		"root_admin": true,
		"created_at": created,
		"limits":     map[string]any{"memory": float64(2048)},
		"deleted_at": nil,
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"equality", `username == "Steve"`, true},
		{"numeric comparison", `id > 40 and id < 50`, true},
		{"numeric equality with int literal", `id == 42`, true},
		{"boolean field", `root_admin`, true},
		{"negation", `not root_admin`, false},
		{"lower helper", `lower(username) == "steve"`, true},
		{"upper helper", `upper(username) == "STEVE"`, true},
		{"containsFold helper", `containsFold(email, "EXAMPLE")`, true},
		{"contains operator is case sensitive", `email contains "example"`, false},
		{"startsWith operator", `username startsWith "St"`, true},
		{"has present key", `has("email")`, true},
		{"has nil key", `has("deleted_at")`, false},
		{"has missing key", `has("nickname")`, false},
		{"nested field", `limits.memory >= 1024`, true},
		{"record binding", `Record.username == username`, true},
		{"days since", `daysSince(created_at) >= 39`, true},
		{"parse date", `parseDate(created_at) < now()`, true},
		{"missing field", `nickname == "x"`, false},
		{"runtime error does not match", `lower(id) == "42"`, false},
		{"invalid date does not match", `daysSince(username) > 1`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter.Evaluate(record))
		})
	}
}

func TestApply(t *testing.T) {
	records := []Record{
		{"id": float64(1), "name": "alpha", "suspended": false},
		{"id": float64(2), "name": "beta", "suspended": true},
		{"id": float64(3), "name": "gamma", "suspended": false},
	}

	filter, err := CompileFilter(`not suspended`)
	require.NoError(t, err)

	matches := Apply(filter, records)
	require.Len(t, matches, 2)
	assert.Equal(t, "alpha", matches[0]["name"])
	assert.Equal(t, "gamma", matches[1]["name"])

	assert.Empty(t, Apply(filter, nil))
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`id == 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(` id == 1 `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`id == 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`id == 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	// id == 1 was evicted
	evicted, err := compiler.Compile(`id == 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestCompilerWithoutCache(t *testing.T) {
	compiler := NewExprCompiler()

	_, err := compiler.Compile(`id == 1`)
	require.NoError(t, err)
	assert.Equal(t, 0, compiler.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isStaff": func(email string) bool { return email == "ops@panel.test" },
	}))

	filter, err := compiler.Compile(`isStaff(email)`)
	require.NoError(t, err)

	assert.True(t, filter.Evaluate(Record{"email": "ops@panel.test"}))
	assert.False(t, filter.Evaluate(Record{"email": "player@panel.test"}))
}

func TestLRUCache(t *testing.T) {
	cache := newLRUCache[int](2)

	cache.Put("a", 1)
	cache.Put("b", 2)

	// touch a so b becomes the oldest
	v, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	cache.Put("c", 3)
	_, ok = cache.Get("b")
	assert.False(t, ok)

	cache.Put("a", 10)
	v, ok = cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, cache.Size())
}
