package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	steps   int
	resets  int
	resized [2]int
	inputs  []core.InputFrame
	state   core.GameState
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
	m := NewModel(g, store, cfg).WithPlayer("alice")
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func tick(m Model) TickMsg {
	return TickMsg{Time: time.Now(), Gen: m.tickGen}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, TickMsg{Gen: m.tickGen + 100})
	assert.Zero(t, g.steps)

	m = update(t, m, tick(m))
	assert.Equal(t, 1, g.steps)
}

func TestModelRoutesInputToGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tick(m))

	require.Len(t, g.inputs, 1)
	assert.True(t, g.inputs[0].Has(core.ActionConfirm))
	assert.Equal(t, []core.PointerEvent{{Kind: core.PointerPress, X: 2, Y: 3}}, g.inputs[0].Pointer)

	// The frame is cleared after each tick.
	update(t, m, tick(m))
	assert.False(t, g.inputs[1].Has(core.ActionConfirm))
	assert.Empty(t, g.inputs[1].Pointer)
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)
	resets := g.resets

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, [2]int{100, 40}, g.resized)
	assert.Equal(t, resets, g.resets)
}

func TestModelBackSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(t, g, store)

	g.state = core.GameState{Score: 120, Moves: 4, BestCascade: 2, GameOver: true}
	m = update(t, m, tick(m))
	m = update(t, m, tick(m))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
	assert.Empty(t, m.View())

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "alice", scores[0].Player)
	assert.Equal(t, 120, scores[0].Score)
	assert.Equal(t, 4, scores[0].Moves)
	assert.Equal(t, 2, scores[0].BestCascade)
}

func TestModelRestartResetsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)
	resets := g.resets

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	update(t, m, tick(m))
	assert.Equal(t, resets+1, g.resets)
	assert.Zero(t, g.steps)
}

func TestModelQuitKeySavesScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &fakeGame{}
	m := newTestModel(t, g, store)
	g.state = core.GameState{Score: 40, Moves: 2}
	m = update(t, m, tick(m))

	m = update(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	assert.False(t, m.IsGoingBack())

	scores, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 40, scores[0].Score)
}
