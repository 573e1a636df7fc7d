// Package model contains the Bubble Tea models for the lruviz TUI.
package model

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lruviz/internal/cache"
	"github.com/bnema/lruviz/internal/cli/styles"
	"github.com/bnema/lruviz/internal/config"
)

// statusKind selects the style of the status line.
type statusKind int

const (
	statusNeutral statusKind = iota
	statusHit
	statusMiss
	statusEvict
	statusError
)

// VizModel is the interactive LRU cache visualization.
//
// The model owns a single cache instance and drives it synchronously from
// the Bubble Tea update loop, so the cache's single-owner contract holds by
// construction. Hit/miss counters live here, not in the cache: the model
// observes Get's presence bool, exactly as any other consumer would.
type VizModel struct {
	cache   *cache.Cache[string, string]
	initial []cache.Entry[string, string]

	input textinput.Model
	table table.Model
	theme *styles.Theme

	hits      int
	misses    int
	evictions int

	status     string
	statusKind statusKind

	width  int
	height int
}

// NewViz builds the visualization from configuration: a cache with the
// configured capacity, seeded with the configured initial entries.
func NewViz(cfg *config.Config, theme *styles.Theme) (VizModel, error) {
	initial := seedEntries(cfg)

	c, err := cache.New(cfg.Cache.Capacity, initial...)
	if err != nil {
		return VizModel{}, fmt.Errorf("build cache: %w", err)
	}

	m := VizModel{
		cache:   c,
		initial: initial,
		input:   styles.NewCommandInput(theme),
		theme:   theme,
		status:  "ready: type a command and press enter",
		width:   80,
		height:  24,
	}
	m.input.Focus()
	m.refreshTable()
	return m, nil
}

func seedEntries(cfg *config.Config) []cache.Entry[string, string] {
	initial := make([]cache.Entry[string, string], 0, len(cfg.Cache.Initial))
	for _, e := range cfg.Cache.Initial {
		initial = append(initial, cache.Entry[string, string]{Key: e.Key, Value: e.Value})
	}
	return initial
}

// Init implements tea.Model.
func (m VizModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m VizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshTable()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			if quit := m.execute(line); quit {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs one parsed command against the cache and updates counters,
// status line, and table. It reports whether the user asked to quit.
func (m *VizModel) execute(line string) bool {
	cmd, err := parseCommand(line)
	if err != nil {
		if !errors.Is(err, errEmptyCommand) {
			m.setStatus(statusError, err.Error())
		}
		return false
	}

	switch cmd.op {
	case opGet:
		if v, ok := m.cache.Get(cmd.key); ok {
			m.hits++
			m.setStatus(statusHit, fmt.Sprintf("hit: get %q → %q, moved to front", cmd.key, v))
		} else {
			m.misses++
			m.setStatus(statusMiss, fmt.Sprintf("miss: %q is not cached", cmd.key))
		}

	case opSet:
		m.applySet(cmd.key, cmd.value)

	case opDelete:
		if _, ok := peek(m.cache, cmd.key); ok {
			m.cache.Delete(cmd.key)
			m.setStatus(statusNeutral, fmt.Sprintf("deleted %q", cmd.key))
		} else {
			m.setStatus(statusNeutral, fmt.Sprintf("delete %q: no such key (no-op)", cmd.key))
		}

	case opClear:
		m.cache.Clear()
		m.setStatus(statusNeutral, "cleared all entries")

	case opReset:
		// Reset means a brand-new cache seeded from the original initial
		// entries; the cache itself has no reset operation.
		fresh, err := cache.New(m.cache.Cap(), m.initial...)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return false
		}
		m.cache = fresh
		m.hits, m.misses, m.evictions = 0, 0, 0
		m.setStatus(statusNeutral, "reset to initial entries")

	case opQuit:
		return true
	}

	m.refreshTable()
	return false
}

// applySet runs a set and reports the eviction it causes, if any. The
// evictee is knowable up front: when the key is new and the cache is full,
// the entry currently at the LRU end is the one that goes.
func (m *VizModel) applySet(key, value string) {
	_, existed := peek(m.cache, key)

	var evicted string
	willEvict := !existed && m.cache.Len() == m.cache.Cap()
	if willEvict {
		entries := m.cache.Entries()
		evicted = entries[len(entries)-1].Key
	}

	m.cache.Set(key, value)

	switch {
	case willEvict:
		m.evictions++
		m.setStatus(statusEvict, fmt.Sprintf("set %q = %q, evicted %q (least recently used)", key, value, evicted))
	case existed:
		m.setStatus(statusNeutral, fmt.Sprintf("set %q = %q (updated, moved to front)", key, value))
	default:
		m.setStatus(statusNeutral, fmt.Sprintf("set %q = %q (inserted at front)", key, value))
	}
}

// peek reports presence without touching recency, by scanning the snapshot
// instead of calling Get.
func peek(c *cache.Cache[string, string], key string) (string, bool) {
	for _, e := range c.Entries() {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (m *VizModel) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// refreshTable rebuilds the entries table from a fresh snapshot, newest
// entry on top.
func (m *VizModel) refreshTable() {
	entries := m.cache.Entries()

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		recency := ""
		switch i {
		case 0:
			recency = "MRU"
		case len(entries) - 1:
			recency = "LRU (next out)"
		}
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), e.Key, e.Value, recency}
	}

	height := len(rows)
	if height > m.height-12 {
		height = m.height - 12
	}
	if height < 3 {
		height = 3
	}

	m.table = styles.NewStyledTable(m.theme, styles.EntriesTableColumns(), rows, m.width-4, height)
}

// View implements tea.Model.
func (m VizModel) View() string {
	t := m.theme

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title.Render("LRU Cache"),
		"",
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			t.Badge.Render(fmt.Sprintf("%d/%d entries", m.cache.Len(), m.cache.Cap())),
			" ",
			t.BadgeMuted.Render(fmt.Sprintf("%d hits", m.hits)),
			" ",
			t.BadgeMuted.Render(fmt.Sprintf("%d misses", m.misses)),
			" ",
			t.BadgeMuted.Render(fmt.Sprintf("%d evictions", m.evictions)),
		),
	)

	var statusView string
	switch m.statusKind {
	case statusHit:
		statusView = t.SuccessStyle.Render(m.status)
	case statusMiss:
		statusView = t.WarningStyle.Render(m.status)
	case statusEvict:
		statusView = t.WarningStyle.Render(m.status)
	case statusError:
		statusView = t.ErrorStyle.Render(m.status)
	default:
		statusView = t.Subtle.Render(m.status)
	}

	help := lipgloss.JoinHorizontal(
		lipgloss.Top,
		t.HelpKey.Render("enter"), t.HelpDesc.Render(" run  "),
		t.HelpKey.Render("esc"), t.HelpDesc.Render(" quit"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.table.View(),
		"",
		statusView,
		m.theme.InputBox(m.input.View(), true),
		help,
	)
}

// Ensure interface compliance.
var _ tea.Model = (*VizModel)(nil)
