package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruviz/internal/cli/styles"
	"github.com/bnema/lruviz/internal/config"
)

func newTestViz(t *testing.T) VizModel {
	t.Helper()

	cfg := config.DefaultConfig()
	m, err := NewViz(cfg, styles.NewTheme(cfg))
	require.NoError(t, err)
	return m
}

func cacheKeys(m *VizModel) []string {
	entries := m.cache.Entries()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		want    command
		wantErr bool
	}{
		{name: "get", line: "get a", want: command{op: opGet, key: "a"}},
		{name: "get alias", line: "g a", want: command{op: opGet, key: "a"}},
		{name: "get missing key", line: "get", wantErr: true},
		{name: "set", line: "set a 1", want: command{op: opSet, key: "a", value: "1"}},
		{name: "set spaced value", line: "set a hello world", want: command{op: opSet, key: "a", value: "hello world"}},
		{name: "set missing value", line: "set a", wantErr: true},
		{name: "del", line: "del a", want: command{op: opDelete, key: "a"}},
		{name: "clear", line: "clear", want: command{op: opClear}},
		{name: "reset", line: "reset", want: command{op: opReset}},
		{name: "quit", line: "q", want: command{op: opQuit}},
		{name: "case insensitive verb", line: "GET a", want: command{op: opGet, key: "a"}},
		{name: "unknown verb", line: "flush", wantErr: true},
		{name: "empty", line: "   ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCommand(tc.line)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestViz_SeededFromConfig(t *testing.T) {
	m := newTestViz(t)

	// Defaults seed 1,2,3 in order; 3 is newest.
	assert.Equal(t, []string{"3", "2", "1"}, cacheKeys(&m))
	assert.Equal(t, 0, m.hits)
	assert.Equal(t, 0, m.misses)
}

func TestViz_GetCountsHitsAndMisses(t *testing.T) {
	m := newTestViz(t)

	m.execute("get 1")
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, []string{"1", "3", "2"}, cacheKeys(&m), "hit moves the entry to the front")

	m.execute("get nope")
	assert.Equal(t, 1, m.misses)
	assert.Equal(t, []string{"1", "3", "2"}, cacheKeys(&m), "miss leaves order untouched")
}

func TestViz_SetReportsEviction(t *testing.T) {
	m := newTestViz(t)

	m.execute("get 1") // order now 1,3,2 — LRU is 2
	m.execute("set 4 d")

	assert.Equal(t, 1, m.evictions)
	assert.Equal(t, statusEvict, m.statusKind)
	assert.Contains(t, m.status, `evicted "2"`)
	assert.Equal(t, []string{"4", "1", "3"}, cacheKeys(&m))
}

func TestViz_SetExistingKeyDoesNotEvict(t *testing.T) {
	m := newTestViz(t)

	m.execute("set 2 updated")

	assert.Equal(t, 0, m.evictions)
	assert.Equal(t, []string{"2", "3", "1"}, cacheKeys(&m))
}

func TestViz_DeleteIsIdempotent(t *testing.T) {
	m := newTestViz(t)

	m.execute("del 2")
	assert.Equal(t, []string{"3", "1"}, cacheKeys(&m))

	m.execute("del 2")
	assert.Equal(t, []string{"3", "1"}, cacheKeys(&m))
	assert.Contains(t, m.status, "no-op")
}

func TestViz_ClearEmptiesCache(t *testing.T) {
	m := newTestViz(t)

	m.execute("clear")
	assert.Empty(t, cacheKeys(&m))
}

func TestViz_ResetRebuildsFromInitialAndZeroesCounters(t *testing.T) {
	m := newTestViz(t)

	m.execute("get 1")
	m.execute("get nope")
	m.execute("set 4 d")
	m.execute("clear")

	m.execute("reset")

	assert.Equal(t, []string{"3", "2", "1"}, cacheKeys(&m))
	assert.Zero(t, m.hits)
	assert.Zero(t, m.misses)
	assert.Zero(t, m.evictions)
}

func TestViz_UnknownCommandSetsErrorStatus(t *testing.T) {
	m := newTestViz(t)

	m.execute("frobnicate")
	assert.Equal(t, statusError, m.statusKind)
}

func TestViz_QuitCommand(t *testing.T) {
	m := newTestViz(t)

	assert.True(t, m.execute("quit"))
	assert.False(t, m.execute("get 1"))
}

func TestViz_ViewRendersCounters(t *testing.T) {
	m := newTestViz(t)
	m.execute("get 1")
	m.execute("get nope")

	view := m.View()
	assert.Contains(t, view, "1 hits")
	assert.Contains(t, view, "1 misses")
	assert.Contains(t, view, "LRU Cache")
}
