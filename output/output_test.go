package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"id": float64(1), "name": "survival"}, Options{})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"name":"survival"}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "\n  \"id\": 1")
}

func TestWrite_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, Options{Format: FormatJSON}))
	assert.Equal(t, "null\n", buf.String())
}

func TestWrite_Query(t *testing.T) {
	records := []map[string]any{
		{"id": float64(1), "name": "alpha", "suspended": false},
		{"id": float64(2), "name": "beta", "suspended": true},
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single field", `.[0].name`, `"alpha"`},
		{"collect", `[.[] | .id]`, `[1,2]`},
		{"multiple results", `.[] | .name`, `["alpha","beta"]`},
		{"select with shell escape", `[.[] | select(.name \!= "alpha") | .id]`, `[2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, records, Options{Query: tt.query}))
			assert.JSONEq(t, tt.want, buf.String())
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	_, err := Query(map[string]any{"id": float64(1)}, `.[`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query expression")

	_, err = Query(map[string]any{"id": float64(1)}, `.id | keys`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query error")
}

func TestQuery_Struct(t *testing.T) {
	info := struct {
		Subject   string    `json:"subject"`
		ExpiresAt time.Time `json:"expires_at"`
	}{Subject: "42", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}

	got, err := Query(info, `.subject`)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestWrite_LargeIntegers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"id": 9007199254740993}, Options{Query: ".id"}))
	assert.Equal(t, "9007199254740993\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, struct {
		ID int64 `json:"id"`
	}{ID: 9007199254740993}, Options{Format: FormatTable}))
	assert.Contains(t, buf.String(), "9007199254740993")
}

func TestWrite_TableObject(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{
		"name":   "survival",
		"id":     float64(7),
		"limits": map[string]any{"memory": float64(2048)},
		"owner":  nil,
	}, Options{Format: FormatTable})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "survival")
	assert.Contains(t, out, `{"memory":2048}`)
	assert.Less(t, strings.Index(out, "id"), strings.Index(out, "limits"))
	assert.Less(t, strings.Index(out, "limits"), strings.Index(out, "survival"))
}

func TestWrite_TableList(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []any{
		map[string]any{"id": float64(1), "username": "alex"},
		map[string]any{"id": float64(2), "email": "sam@panel.test"},
	}, Options{Format: FormatTable})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "alex")
	assert.Contains(t, out, "sam@panel.test")
	assert.Less(t, strings.Index(out, "alex"), strings.Index(out, "sam@panel.test"))
}

func TestWrite_TableScalar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"count": float64(3)}, Options{Format: FormatTable, Query: ".count"}))
	assert.Equal(t, "3\n", buf.String())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, map[string]any{}, Options{Format: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestTableRows(t *testing.T) {
	headers, rows := tableRows([]any{
		map[string]any{"name": "b", "id": float64(2)},
		map[string]any{"id": float64(1), "active": true},
	})
	assert.Equal(t, []string{"id", "active", "name"}, headers)
	assert.Equal(t, [][]string{{"2", "", "b"}, {"1", "true", ""}}, rows)

	headers, rows = tableRows([]any{"a", float64(1.5)})
	assert.Equal(t, []string{"value"}, headers)
	assert.Equal(t, [][]string{{"a"}, {"1.5"}}, rows)

	headers, _ = tableRows("plain")
	assert.Nil(t, headers)
}

func TestFormatCell(t *testing.T) {
	raw, err := json.Marshal([]any{"a"})
	require.NoError(t, err)

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "12", formatCell(float64(12)))
	assert.Equal(t, "9007199254740993", formatCell(9007199254740993))
	assert.Equal(t, "9007199254740993", formatCell(json.Number("9007199254740993")))
	assert.Equal(t, "false", formatCell(false))
	assert.Equal(t, string(raw), formatCell([]any{"a"}))
}
