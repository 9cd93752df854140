package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arknotes/internal/adapters/tui/styles"
)

// PromptKeyMap defines key bindings for prompts
type PromptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultPromptKeys returns the default prompt key bindings
var DefaultPromptKeys = PromptKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// PromptModel asks for one line of text, such as a title or a file path
type PromptModel struct {
	Tag   string
	Label string
	Input textinput.Model
	Keys  PromptKeyMap
}

// NewPromptModel creates a focused prompt prefilled with value
func NewPromptModel(tag, label, value string, charLimit int) *PromptModel {
	input := textinput.New()
	input.Placeholder = label
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	input.SetValue(value)
	input.CursorEnd()
	input.Focus()
	return &PromptModel{
		Tag:   tag,
		Label: label,
		Input: input,
		Keys:  DefaultPromptKeys,
	}
}

// Init returns the blink command for the input
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update feeds msg to the input. Enter submits the trimmed value, esc cancels.
func (m *PromptModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.Keys.Submit):
			tag, value := m.Tag, m.Value()
			return func() tea.Msg { return PromptSubmittedMsg{Tag: tag, Value: value} }
		case key.Matches(keyMsg, m.Keys.Cancel):
			return func() tea.Msg { return ModalClosedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return cmd
}

// Value returns the trimmed input
func (m *PromptModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// View renders the label, the input and its key hints
func (m *PromptModel) View() string {
	return NewViewBuilder().
		Line(styles.InputLabel.Render(m.Label)).
		Line(styles.InputFocused.Render(m.Input.View())).
		Help(m.Keys.Submit, m.Keys.Cancel).
		String()
}
