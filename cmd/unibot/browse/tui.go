package browsecmder

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/unibot/pkg/knowledge"
)

const (
	listWidth = 24

	// chromeHeight is the title row plus the footer row and spacing.
	chromeHeight = 4
)

var (
	browseTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	browseMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	browseHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	browseItemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	browseDividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	browseAnswerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type browseKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Ask  key.Binding
	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Ask, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up, k.Back}, {k.Ask, k.Help, k.Quit}}
}

func defaultKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Ask:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "ask")),
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to topic")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scrollKeyMap keeps j/k for the topic list; the viewport scrolls with the
// page keys and shifted J/K.
func scrollKeyMap() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.Up = key.NewBinding(key.WithKeys("K", "shift+up"))
	km.Down = key.NewBinding(key.WithKeys("J", "shift+down"))
	return km
}

type browseModel struct {
	store  *knowledge.Store
	topics []string
	cursor int

	// answer, when set, is shown instead of the selected topic.
	answer   string
	question string

	asking bool
	input  textinput.Model

	width    int
	height   int
	ready    bool
	viewport viewport.Model

	ask    func(question string) string
	render func(md string, width int) string

	keys browseKeyMap
	help help.Model
}

func newBrowseModel(store *knowledge.Store, ask func(string) string, render func(string, int) string) browseModel {
	input := textinput.New()
	input.Prompt = "❓ "
	input.Placeholder = "Ask about admissions, fees, placements..."
	input.CharLimit = 200

	return browseModel{
		store:  store,
		topics: store.Topics(),
		input:  input,
		ask:    ask,
		render: render,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

func (m browseModel) Init() bubbletea.Cmd {
	return nil
}

func (m browseModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case bubbletea.KeyMsg:
		if m.asking {
			return m.handlePrompt(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browseModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Ask):
		m.asking = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Back):
		m.answer, m.question = "", ""
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd bubbletea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) handlePrompt(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg.Type {
	case bubbletea.KeyEnter:
		question := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if question != "" && m.ask != nil {
			m.question = question
			m.answer = m.ask(question)
			m.refresh()
		}
		return m, nil
	case bubbletea.KeyEsc, bubbletea.KeyCtrlC:
		m.closePrompt()
		return m, nil
	}

	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) closePrompt() {
	m.asking = false
	m.input.Blur()
	m.input.Reset()
}

func (m *browseModel) moveCursor(delta int) {
	if len(m.topics) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.topics)-1, m.cursor+delta))
	m.answer, m.question = "", ""
	m.refresh()
}

func (m *browseModel) resize(width, height int) {
	m.width, m.height = width, height
	w := max(20, width-listWidth-3)
	h := max(3, height-chromeHeight)

	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.viewport.KeyMap = scrollKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.help.Width = width
	m.input.Width = max(10, width-4)
	m.refresh()
}

func (m *browseModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m browseModel) content() string {
	if m.answer != "" {
		header := browseMutedStyle.Render("You asked: " + m.question)
		return header + "\n\n" + browseAnswerStyle.Width(m.viewport.Width).Render(m.answer)
	}
	if len(m.topics) == 0 {
		return browseMutedStyle.Render("The knowledge table is empty.")
	}

	md, err := m.store.Markdown(m.topics[m.cursor])
	if err != nil {
		return err.Error()
	}
	if m.render == nil {
		return md
	}
	return m.render(md, m.viewport.Width)
}

func (m browseModel) View() string {
	if !m.ready {
		return "Loading knowledge table..."
	}

	title := browseTitleStyle.Render("🎓 Manav Rachna University") + " " +
		browseMutedStyle.Render("knowledge browser")

	divider := browseDividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", m.viewport.Height), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewList(), " ", divider, " ", m.viewport.View())

	footer := m.help.View(m.keys)
	if m.asking {
		footer = m.input.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, footer)
}

func (m browseModel) viewList() string {
	lines := make([]string, 0, len(m.topics))
	for i, topic := range m.topics {
		label := " " + knowledge.Humanize(topic)
		if i == m.cursor {
			lines = append(lines, browseHighlightStyle.Width(listWidth).Render(label))
			continue
		}
		lines = append(lines, browseItemStyle.Width(listWidth).Render(label))
	}
	return strings.Join(lines, "\n")
}
