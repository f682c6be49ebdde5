package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr string
	}{
		{
			name: "object",
			raw:  `{"name":"survival","port":25565}`,
			want: map[string]any{"name": "survival", "port": json.Number("25565")},
		},
		{
			name: "large id keeps precision",
			raw:  ` {"owner_id": 9007199254740993} `,
			want: map[string]any{"owner_id": json.Number("9007199254740993")},
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: map[string]any{},
		},
		{name: "empty", raw: "  ", wantErr: "request attributes are empty"},
		{name: "array", raw: `[1]`, wantErr: "must be a JSON object"},
		{name: "null", raw: `null`, wantErr: "not null"},
		{name: "malformed", raw: `{"a":`, wantErr: "must be a JSON object"},
		{name: "trailing value", raw: `{"a":1} {"b":2}`, wantErr: "single JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams([]byte(tt.raw))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamsFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"from-file"}`), 0o600))

	tests := []struct {
		name    string
		flags   paramsFlags
		stdin   string
		want    map[string]any
		wantErr string
	}{
		{name: "none", flags: paramsFlags{}, want: nil},
		{name: "data", flags: paramsFlags{data: `{"name":"inline"}`}, want: map[string]any{"name": "inline"}},
		{name: "file", flags: paramsFlags{dataFile: path}, want: map[string]any{"name": "from-file"}},
		{name: "stdin", flags: paramsFlags{dataFile: "-"}, stdin: `{"name":"piped"}`, want: map[string]any{"name": "piped"}},
		{name: "both", flags: paramsFlags{data: "{}", dataFile: path}, wantErr: "cannot be used together"},
		{name: "missing file", flags: paramsFlags{dataFile: path + ".missing"}, wantErr: "failed to read data file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.parse(strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("user", []string{"1", " 42 ", "9007199254740993", "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "42", "9007199254740993", "a/b c"}, ids)

	for _, bad := range []string{"", "   ", "\t"} {
		_, err := parseIDs("server", []string{"1", bad})
		assert.Error(t, err, bad)
	}
}
