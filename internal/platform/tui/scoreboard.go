package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// scoreboardLimit is how many rounds are fetched per mode.
const scoreboardLimit = 100

// localPlayer labels rounds played without an SSH user name.
const localPlayer = "local"

type scoreboardKeys struct {
	NextMode key.Binding
	PrevMode key.Binding
	Player   key.Binding
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Player, k.Up, k.Down, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevMode}}
}

var scoreboardKeyMap = scoreboardKeys{
	NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
	PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
	Player:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "player")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// rankedScore is a stored round with its rank among all rounds of the mode.
type rankedScore struct {
	rank int
	storage.ScoreEntry
}

// ScoreboardModel shows the best rounds of each mode. Modes are tabs; the
// rows can be narrowed to a single player while keeping overall ranks.
type ScoreboardModel struct {
	store *storage.Store
	modes []registry.GameInfo
	mode  int

	scores  []storage.ScoreEntry // best first
	players []string             // distinct players, best first
	player  int                  // index into players, -1 for everyone
	stats   *storage.GameStats

	table         table.Model
	help          help.Model
	width, height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		player: -1,
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.load()
	return m
}

func newScoreTable(width, height int) table.Model {
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 8},
		{Title: "Moves", Width: 6},
		{Title: "Chain", Width: 6},
		{Title: "Date", Width: 13},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	// Spare room goes to the player column.
	cols[1].Width = min(cols[1].Width+max(width-8-used, 0), 20)

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// load fetches the current mode and resets the player filter.
func (m *ScoreboardModel) load() {
	m.scores, m.players, m.stats = nil, nil, nil
	m.player = -1

	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.players = distinctPlayers(m.scores)
	m.refresh()
}

func distinctPlayers(scores []storage.ScoreEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range scores {
		name := playerName(s.Player)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func playerName(p string) string {
	if p == "" {
		return localPlayer
	}
	return p
}

// visible returns the rows that pass the player filter.
func (m ScoreboardModel) visible() []rankedScore {
	var out []rankedScore
	for i, s := range m.scores {
		if m.player >= 0 && playerName(s.Player) != m.players[m.player] {
			continue
		}
		out = append(out, rankedScore{rank: i + 1, ScoreEntry: s})
	}
	return out
}

func (m *ScoreboardModel) refresh() {
	rows := m.visible()
	out := make([]table.Row, len(rows))
	for i, s := range rows {
		out[i] = table.Row{
			fmt.Sprintf("#%d", s.rank),
			playerName(s.Player),
			fmt.Sprint(s.Score),
			fmt.Sprint(s.Moves),
			fmt.Sprintf("x%d", s.BestCascade),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(out)
	m.table.GotoTop()
}

// PlayerFilter returns the player whose rounds are shown, or "" for everyone.
func (m ScoreboardModel) PlayerFilter() string {
	if m.player < 0 {
		return ""
	}
	return m.players[m.player]
}

// Mode returns the ID of the mode on display.
func (m ScoreboardModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeyMap.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeyMap.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, scoreboardKeyMap.PrevMode):
			m.switchMode(-1)
			return m, nil
		case key.Matches(msg, scoreboardKeyMap.Player):
			// everyone -> first player -> ... -> last player -> everyone
			if len(m.players) > 0 {
				m.player++
				if m.player >= len(m.players) {
					m.player = -1
				}
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchMode(step int) {
	if len(m.modes) < 2 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.load()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuSelectedStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.tabs(), m.width))
	b.WriteString("\n\n")

	filter := "Player: everyone"
	if p := m.PlayerFilter(); p != "" {
		filter = "Player: " + p
	}
	b.WriteString(centerStyled(menuHintStyle.Render(filter), m.width))
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.body())))
	b.WriteString("\n")
	b.WriteString(centerStyled(menuHintStyle.Render(m.help.View(scoreboardKeyMap)), m.width))
	return b.String()
}

// tabs renders one tab per mode. Narrow screens show only the active one.
func (m ScoreboardModel) tabs() string {
	if len(m.modes) == 0 {
		return menuHintStyle.Render("no modes registered")
	}
	parts := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			parts[i] = activeTabStyle.Render(g.Title)
		} else {
			parts[i] = tabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-4 {
		return activeTabStyle.Render("< " + m.modes[m.mode].Title + " >")
	}
	return line
}

func (m ScoreboardModel) body() string {
	rows := m.visible()
	if len(rows) == 0 {
		return menuHintStyle.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nPlay a round to set one!")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), "", menuHintStyle.Render(m.summary(rows)))
}

// summary describes the mode, or the filtered player's rounds.
func (m ScoreboardModel) summary(rows []rankedScore) string {
	if m.player < 0 && m.stats != nil {
		return fmt.Sprintf("%d rounds  avg %.0f  longest chain x%d  last played %s",
			m.stats.GamesCount, m.stats.AvgScore, m.stats.BestCascade,
			m.stats.LastPlayed.Format("Jan 02"))
	}

	total, chain := 0, 0
	for _, r := range rows {
		total += r.Score
		chain = max(chain, r.BestCascade)
	}
	return fmt.Sprintf("%d rounds in top %d  best #%d  avg %.0f  longest chain x%d",
		len(rows), scoreboardLimit, rows[0].rank, float64(total)/float64(len(rows)), chain)
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// It returns true when the player asked to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(ScoreboardModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
