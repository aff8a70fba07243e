package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3"
)

// Menu entries on the mode screen, top to bottom.
const (
	entryCampaign = iota
	entryEndless
	entrySelectLevel
	entryDifficulty
	entryScores
	entryCount
)

// difficulties is the order the difficulty entry cycles through.
var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartLevel      int // 0 = start from the first level
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel lets the player pick a mode, a starting level and a difficulty.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	difficulty    int // index into difficulties
	goals         []int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper

	result   MenuResult
	done     bool
	quitting bool
}

// NewMenuModel creates a new menu model. Level goals come from the match-3
// config found on disk, or the defaults.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	mc, err := config.LoadMatch3("")
	if err != nil {
		mc = config.DefaultMatch3Config()
	}
	goals := make([]int, match3.LevelCount())
	for i := range goals {
		goals[i] = mc.GoalForLevel(i + 1)
	}

	return MenuModel{
		difficulty: 1,
		goals:      goals,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleModeSelect(action)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleModeSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < entryCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == entryDifficulty {
			m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
		}
	case MenuActionRight:
		if m.cursor == entryDifficulty {
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		}
	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})
	case MenuActionSelect:
		switch m.cursor {
		case entryCampaign:
			return m.finish(MenuResult{GameID: "match3"})
		case entryEndless:
			return m.finish(MenuResult{GameID: "match3_endless"})
		case entrySelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case entryDifficulty:
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		case entryScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.goals)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: "match3", StartLevel: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// finish records the choice and ends the menu program.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Difficulty = difficulties[m.difficulty]
	r.Config = m.config
	m.result = r
	m.done = true
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.done {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m MenuModel) viewModeSelect() string {
	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("  M A T C H - 3  ", width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", width))
	b.WriteString("\n\n")

	entries := []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.goals)),
		"Endless Mode",
		"Select Level...",
		fmt.Sprintf("Difficulty: < %s >", difficulties[m.difficulty]),
		"High Scores",
	}
	for i, entry := range entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+entry, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Left/Right: Difficulty  |  Tab: Scores  |  Q: Quit", width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("SELECT LEVEL", width)))
	b.WriteString("\n\n")

	for i, name := range match3.LevelNames() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %-16s Goal: %d", cursor, i+1, name, m.goals[i])
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", width))
	b.WriteString("\n")
	return b.String()
}

// Result returns the menu outcome. Quit is set when nothing was chosen.
func (m MenuModel) Result() MenuResult {
	if !m.done {
		return MenuResult{Config: m.config, Quit: true}
	}
	return m.result
}

// Done reports whether the menu has finished, by choice or by quitting.
func (m MenuModel) Done() bool {
	return m.done || m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
