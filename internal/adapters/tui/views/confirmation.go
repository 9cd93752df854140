package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"arknotes/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation dialogs
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmModel asks a yes/no question before a destructive action
type ConfirmModel struct {
	Tag      string
	Question string
	Detail   string
	Keys     ConfirmKeyMap
}

// NewConfirmModel creates a confirmation tagged with the action it guards
func NewConfirmModel(tag, question, detail string) *ConfirmModel {
	return &ConfirmModel{
		Tag:      tag,
		Question: question,
		Detail:   detail,
		Keys:     DefaultConfirmKeys,
	}
}

// Update processes key messages. It returns a command emitting ConfirmedMsg or
// ModalClosedMsg once the user answers; other keys are swallowed.
func (m *ConfirmModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		tag := m.Tag
		return func() tea.Msg { return ConfirmedMsg{Tag: tag} }
	case key.Matches(keyMsg, m.Keys.Cancel):
		return func() tea.Msg { return ModalClosedMsg{} }
	}
	return nil
}

// View renders the dialog body
func (m *ConfirmModel) View() string {
	vb := NewViewBuilder().Line(styles.InputLabel.Render(m.Question))
	if m.Detail != "" {
		vb.Line("  " + m.Detail)
	}
	return vb.BlankLine().Raw(RenderConfirmPrompt()).String()
}

// RenderConfirmPrompt renders the standard y/n hint
func RenderConfirmPrompt() string {
	var b strings.Builder
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
