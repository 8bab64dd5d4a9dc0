// Package tui is an interactive romanizer: type a line, press enter, and the result is
// added to a scrolling history.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jusunglee/romanize/internal/romanization"
)

const maxHistory = 10

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	langStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

var languages = []romanization.Language{
	romanization.LanguageJapanese,
	romanization.LanguageChinese,
	romanization.LanguageAuto,
}

type RomanizeFunc func(ctx context.Context, text string, lang romanization.Language) (romanization.Result, error)

type entry struct {
	input  string
	result romanization.Result
	err    error
}

type resultMsg entry

type model struct {
	ctx       context.Context
	romanize  RomanizeFunc
	textInput textinput.Model
	lang      romanization.Language
	history   []entry
	pending   int
	width     int
}

func New(ctx context.Context, fn RomanizeFunc, lang romanization.Language) model {
	ti := textinput.New()
	ti.Placeholder = "太陽のKiss"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	return model{
		ctx:       ctx,
		romanize:  fn,
		textInput: ti,
		lang:      lang,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.textInput.Value())
			if text == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.pending++
			return m, m.romanizeCmd(text, m.lang)
		case tea.KeyTab:
			m.lang = nextLanguage(m.lang)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.textInput.Width = msg.Width - 10
		}

	case resultMsg:
		m.pending--
		m.history = append([]entry{entry(msg)}, m.history...)
		if len(m.history) > maxHistory {
			m.history = m.history[:maxHistory]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) romanizeCmd(text string, lang romanization.Language) tea.Cmd {
	return func() tea.Msg {
		res, err := m.romanize(m.ctx, text, lang)
		return resultMsg{input: text, result: res, err: err}
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("romanize"))
	s.WriteString("  ")
	s.WriteString(langStyle.Render("[" + string(m.lang) + "]"))
	s.WriteString("\n\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n")

	if m.pending > 0 {
		s.WriteString(subtleStyle.Render("romanizing..."))
		s.WriteString("\n")
	}

	for _, e := range m.history {
		s.WriteString("\n")
		s.WriteString(inputStyle.Render(e.input))
		s.WriteString("\n  ")
		if e.err != nil {
			s.WriteString(errorStyle.Render(e.err.Error()))
		} else {
			s.WriteString(outputStyle.Render(e.result.Output))
			if e.result.Cached {
				s.WriteString(subtleStyle.Render(" (cached)"))
			}
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(subtleStyle.Render("enter=romanize • tab=language • esc/ctrl+c=quit"))

	return boxStyle.Render(s.String())
}

func nextLanguage(lang romanization.Language) romanization.Language {
	for i, l := range languages {
		if l == lang {
			return languages[(i+1)%len(languages)]
		}
	}
	return languages[0]
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, fn RomanizeFunc, lang romanization.Language) error {
	_, err := tea.NewProgram(New(ctx, fn, lang), tea.WithContext(ctx)).Run()
	return err
}
