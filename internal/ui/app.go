// Package ui is the terminal build editor: a command line over the build
// console with a switchable view of the build above it.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/starbuild/internal/console"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	Console   *console.Console
	// CatalogLoad delivers the result of the background catalog load.
	CatalogLoad <-chan error
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run(ctx context.Context) error {
	m := newEditorModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warn        = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type view int

const (
	viewSummary view = iota
	viewSpace
	viewGround
	viewSkills
	viewBoffs
	viewCaptain
	viewCount
)

var viewNames = [viewCount]string{"Summary", "Space", "Ground", "Skills", "Officers", "Captain"}

var viewSections = [viewCount]string{"all", "space", "ground", "skills", "boffs", "captain"}

const maxHistory = 200

type editorModel struct {
	cfg  AppConfig
	view view

	input   string
	history []string
	histIdx int

	log     []string
	status  string
	loading bool
	width   int
}

func newEditorModel(cfg AppConfig) editorModel {
	return editorModel{
		cfg:     cfg,
		loading: cfg.CatalogLoad != nil,
		status:  "Type help for commands. Tab switches the view.",
	}
}

type catalogLoadedMsg struct {
	err error
}

func waitCatalog(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return catalogLoadedMsg{}
		}
		return catalogLoadedMsg{err: err}
	}
}

func (m editorModel) Init() tea.Cmd {
	if m.cfg.CatalogLoad == nil {
		return nil
	}
	return waitCatalog(m.cfg.CatalogLoad)
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Catalog unavailable: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Catalog loaded: %d items.", m.cfg.Console.Session().Catalog().Len())
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		m.view = (m.view + 1) % viewCount
		return m, nil
	case tea.KeyShiftTab:
		m.view = (m.view + viewCount - 1) % viewCount
		return m, nil
	case tea.KeyEsc:
		m.input = ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyUp:
		if m.histIdx > 0 {
			m.histIdx--
			m.input = m.history[m.histIdx]
		}
		return m, nil
	case tea.KeyDown:
		if m.histIdx < len(m.history)-1 {
			m.histIdx++
			m.input = m.history[m.histIdx]
		} else {
			m.histIdx = len(m.history)
			m.input = ""
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}
	return m, nil
}

func (m editorModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input)
	m.input = ""
	if line == "" {
		return m, nil
	}
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.histIdx = len(m.history)

	res := m.cfg.Console.Exec(line)
	m.log = append(m.log, "> "+line)
	if res.Text != "" {
		m.log = append(m.log, strings.Split(res.Text, "\n")...)
	}
	if len(m.log) > maxHistory {
		m.log = m.log[len(m.log)-maxHistory:]
	}
	if res.Intent.Verb == "show" {
		m.view = viewFor(res.Intent.Args)
	}
	if res.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func viewFor(args []string) view {
	if len(args) == 0 {
		return viewSummary
	}
	for i, s := range viewSections {
		if s == args[0] {
			return view(i)
		}
	}
	return viewSummary
}

func (m editorModel) bodyText() string {
	if m.view == viewSkills {
		b := m.cfg.Console.Session().Store().Build()
		return console.RenderSkills(&b)
	}
	return m.cfg.Console.Show(viewSections[m.view])
}

func (m editorModel) View() string {
	var out strings.Builder
	title := brightGreen.Render("STARBUILD") + dimGreen.Render(fmt.Sprintf("  v%s (%s) %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))
	out.WriteString(title + "\n")

	tabs := make([]string, 0, viewCount)
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs = append(tabs, brightGreen.Render("["+name+"]"))
		} else {
			tabs = append(tabs, dimGreen.Render(" "+name+" "))
		}
	}
	out.WriteString(strings.Join(tabs, " ") + "\n")
	out.WriteString(border.Render(strings.Repeat("-", 60)) + "\n")
	out.WriteString(green.Render(m.bodyText()) + "\n")
	if m.view == viewSkills {
		b := m.cfg.Console.Session().Store().Build()
		width := 48
		if m.width > 0 {
			width = m.width - 16
		}
		out.WriteString(SkillBarsANSI(&b, width) + "\n")
	}
	out.WriteString(border.Render(strings.Repeat("-", 60)) + "\n")

	tail := m.log
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	for _, l := range tail {
		out.WriteString(dimGreen.Render(l) + "\n")
	}
	out.WriteString(brightGreen.Render("> ") + m.input + brightGreen.Render("_") + "\n")
	status := m.status
	if m.loading {
		status = "Loading catalog…"
	}
	if m.cfg.Console.Session().Store().IsModified(time.Time{}) {
		status += warn.Render("  [unsaved]")
	}
	out.WriteString(dimGreen.Render(status) + "\n")
	return out.String()
}
