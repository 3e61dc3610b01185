package searchcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	apisearch "github.com/rocksolid/rocksolid/api/search"
	"github.com/rocksolid/rocksolid/pkg/cliui"
	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/search"
	"github.com/rocksolid/rocksolid/pkg/skill"
	"github.com/rocksolid/rocksolid/pkg/utils"
)

var (
	tuiTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	tuiMutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tuiHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Bold(true)
	tuiStatusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	tuiErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// defaultListHeight is used until the first WindowSizeMsg arrives.
const defaultListHeight = 15

type searchKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Add   key.Binding
	Quit  key.Binding
}

func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Add, k.Quit}
}

func (k searchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up, k.Enter, k.Back}, {k.Add, k.Quit}}
}

func defaultKeyMap() searchKeyMap {
	return searchKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "ctrl+k"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "ctrl+j"), key.WithHelp("↓", "down")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Add:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add to my skills")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// skillAdder stores a skill reference. *collection.MySkills satisfies it.
type skillAdder interface {
	Add(ref collection.Ref) (bool, error)
}

type searchModel struct {
	engine  *search.Engine
	skills  []skill.Skill
	filters search.Filters
	limit   int
	adder   skillAdder

	input  textinput.Model
	result search.Result
	cursor int

	detail     *skill.Skill
	detailView string

	status    string
	statusErr bool

	width  int
	height int
	keys   searchKeyMap
	help   help.Model
}

func runSearchTUI(ctx context.Context, source search.Source, input apisearch.Input, limit int, adder skillAdder) error {
	skills, err := source.Skills()
	if err != nil {
		return err
	}

	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)

	model := newSearchModel(search.NewEngine(source, search.Config{Limit: limit}), skills, input, limit, adder)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

func newSearchModel(engine *search.Engine, skills []skill.Skill, input apisearch.Input, limit int, adder skillAdder) searchModel {
	ti := textinput.New()
	ti.Placeholder = "squat, hip opener, core..."
	ti.Prompt = "search › "
	ti.SetValue(input.Query)
	ti.Focus()

	m := searchModel{
		engine:  engine,
		skills:  skills,
		filters: input.Filters(),
		limit:   limit,
		adder:   adder,
		input:   ti,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	return m
}

func (m *searchModel) refresh() {
	m.result = m.engine.Run(m.skills, m.input.Value(), m.filters, m.limit)
	m.cursor = clamp(m.cursor, len(m.result.Skills)-1)
}

func (m searchModel) Init() bubbletea.Cmd {
	return textinput.Blink
}

func (m searchModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m searchModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
		return m, nil
	}

	if m.detail != nil {
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
			m.detailView = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, bubbletea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(m.result.Skills)-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(m.result.Skills)-1)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.openDetail()
		return m, nil
	}

	before := m.input.Value()
	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m *searchModel) selected() (skill.Skill, bool) {
	if m.detail != nil {
		return *m.detail, true
	}
	if len(m.result.Skills) == 0 {
		return skill.Skill{}, false
	}
	return m.result.Skills[m.cursor], true
}

func (m *searchModel) openDetail() {
	s, ok := m.selected()
	if !ok {
		return
	}

	rendered, err := cliui.RenderMarkdown(cliui.SkillMarkdown(s))
	if err != nil {
		rendered = cliui.SkillMarkdown(s)
	}
	m.detail = &s
	m.detailView = rendered
}

func (m *searchModel) addSelected() {
	s, ok := m.selected()
	if !ok || m.adder == nil {
		return
	}

	added, err := m.adder.Add(collection.Ref(s.ID))
	switch {
	case err != nil:
		m.status, m.statusErr = err.Error(), true
	case added:
		m.status, m.statusErr = fmt.Sprintf("Added %s to My Skills", s.Name), false
	default:
		m.status, m.statusErr = fmt.Sprintf("%s is already in My Skills", s.Name), false
	}
}

func (m searchModel) View() string {
	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("RockSolid skills"))
	b.WriteString("\n\n")

	if m.detail != nil {
		b.WriteString(m.detailView)
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	if m.status != "" {
		style := tuiStatusStyle
		if m.statusErr {
			style = tuiErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(tuiMutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m searchModel) viewList() string {
	if len(m.result.Skills) == 0 {
		return tuiMutedStyle.Render("No skills found.") + "\n"
	}

	var b strings.Builder
	start, end := visibleRange(len(m.result.Skills), m.cursor, m.listHeight())
	for i := start; i < end; i++ {
		s := m.result.Skills[i]
		name := utils.Truncate(s.Name, 40)
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s\n", tuiHighlightStyle.Render("›"), tuiHighlightStyle.Render(name))
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n", name, tuiMutedStyle.Render(fmt.Sprintf("%s · %s · %s", s.ID, s.Category, s.Difficulty)))
	}

	summary := fmt.Sprintf("%d of %d", m.result.Shown, m.result.Total)
	if m.result.Truncated {
		summary += " (refine to see more)"
	}
	b.WriteString(tuiMutedStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

func (m searchModel) listHeight() int {
	if m.height <= 0 {
		return defaultListHeight
	}
	// title, input, summary, status and help lines
	if h := m.height - 8; h > 0 {
		return h
	}
	return 1
}

func clamp(value, upper int) int {
	if upper < 0 || value < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}

// visibleRange returns the window of rows to draw so that cursor stays on
// screen.
func visibleRange(total, cursor, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}

	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}
