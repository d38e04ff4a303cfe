package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func NewApp() *Model {
	input := textinput.New()
	input.Placeholder = "user modifiers, comma separated (optional)"
	input.CharLimit = 400
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		state:   StateInput,
		input:   input,
		spinner: sp,
		client:  NewAPIClient(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadTemplates()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-10)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 10
		}

		return m, nil

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

		return m, nil

	case TemplatesLoadedMsg:
		m.templates = msg.ids
		return m, nil

	case GenerateResponseMsg:
		m.state = StateResult
		m.generation = msg.generation
		m.err = nil
		m.lastAction = ""
		m.viewport.SetContent(m.resultContent())
		m.viewport.GotoTop()
		return m, nil

	case FeedbackSentMsg:
		m.lastAction = fmt.Sprintf("%s recorded, %d token scores updated", msg.feedbackType, msg.deltas)
		return m, nil

	case APIErrorMsg:
		m.state = StateInput
		m.err = msg.err
		return m, nil
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.state == StateResult {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		if m.state != StateLoading {
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, m.generate())
		}

	case "ctrl+e":
		m.exploreMode = !m.exploreMode
		return m, nil

	case "ctrl+t":
		if len(m.templates) > 0 {
			m.templateIdx = (m.templateIdx + 1) % (len(m.templates) + 1)
			if m.templateIdx == len(m.templates) {
				m.templateID = "" // automatic selection
			} else {
				m.templateID = m.templates[m.templateIdx]
			}
		}

		return m, nil

	case "ctrl+s", "ctrl+d", "ctrl+x":
		if m.state == StateResult && m.generation != nil {
			feedbackType := map[string]string{
				"ctrl+s": "save",
				"ctrl+d": "dislike",
				"ctrl+x": "irrelevant",
			}[msg.String()]

			return m, m.sendFeedback(feedbackType)
		}

	case "esc":
		if m.state == StateResult {
			m.state = StateInput
			return m, nil
		}
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.state == StateResult {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) generate() tea.Cmd {
	exploreMode := m.exploreMode
	templateID := m.templateID

	var modifiers []string
	for _, mod := range strings.Split(m.input.Value(), ",") {
		if mod = strings.TrimSpace(mod); mod != "" {
			modifiers = append(modifiers, mod)
		}
	}

	return func() tea.Msg {
		gen, err := m.client.Generate(context.Background(), exploreMode, templateID, modifiers)
		if err != nil {
			return APIErrorMsg{err: err}
		}

		return GenerateResponseMsg{generation: gen}
	}
}

func (m *Model) sendFeedback(feedbackType string) tea.Cmd {
	generationID := m.generation.ID

	return func() tea.Msg {
		deltas, err := m.client.Feedback(context.Background(), generationID, feedbackType)
		if err != nil {
			return APIErrorMsg{err: err}
		}

		return FeedbackSentMsg{feedbackType: feedbackType, deltas: deltas}
	}
}

func (m *Model) loadTemplates() tea.Cmd {
	return func() tea.Msg {
		ids, err := m.client.Templates(context.Background())
		if err != nil {
			// the playground still works without the list
			return TemplatesLoadedMsg{ids: nil}
		}

		return TemplatesLoadedMsg{ids: ids}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("atelier studio"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	switch m.state {
	case StateLoading:
		b.WriteString(fmt.Sprintf("\n %s generating...\n", m.spinner.View()))

	case StateResult:
		if m.ready {
			b.WriteString(m.viewport.View())
		}

		b.WriteString("\n")

		if m.lastAction != "" {
			b.WriteString(statusStyle.Render(m.lastAction))
			b.WriteString("\n")
		}

		b.WriteString(hintStyle.Render("ctrl+s save · ctrl+d dislike · ctrl+x irrelevant · enter regenerate · esc back"))

	default:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
			b.WriteString("\n\n")
		}

		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter generate · ctrl+e toggle explore · ctrl+t cycle template · ctrl+c quit"))
	}

	return b.String()
}

func (m *Model) statusLine() string {
	mode := "exploit"
	if m.exploreMode {
		mode = "explore"
	}

	template := m.templateID
	if template == "" {
		template = "auto"
	}

	return statusStyle.Render(fmt.Sprintf("mode: %s · template: %s", mode, template))
}

func (m *Model) resultContent() string {
	if m.generation == nil {
		return ""
	}

	var b strings.Builder
	g := m.generation

	b.WriteString(sectionStyle.Render(fmt.Sprintf("generation %s (template %s)", g.ID, g.TemplateID)))
	b.WriteString("\n\n")

	writeSegment := func(name string, tokens []string, style lipgloss.Style) {
		if len(tokens) == 0 {
			return
		}

		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")

		for _, t := range tokens {
			b.WriteString("  " + style.Render(t) + "\n")
		}
	}

	writeSegment("core", g.Segments.Core, coreTokenStyle)
	writeSegment("learned", g.Segments.Learned, learnedTokenStyle)
	writeSegment("exploratory", g.Segments.Exploratory, exploratoryTokenStyle)
	writeSegment("user", g.Segments.User, userTokenStyle)

	b.WriteString(sectionStyle.Render("prompt"))
	b.WriteString("\n" + g.MainPrompt + "\n")

	b.WriteString(sectionStyle.Render("negative"))
	b.WriteString("\n" + hintStyle.Render(g.NegativePrompt) + "\n")

	if g.ImageURL != "" {
		b.WriteString(sectionStyle.Render("image"))
		b.WriteString("\n" + g.ImageURL + "\n")
	}

	return b.String()
}
