package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"arknotes/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help overlay
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the keyboard and mouse reference overlay
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help overlay
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Update closes the overlay on its close keys
func (m *HelpModel) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, HelpKeys.Close) {
		return func() tea.Msg { return ModalClosedMsg{} }
	}
	return nil
}

// View renders the help overlay
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Ark Notes Help"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Mouse"))
	b.WriteString("\n")
	b.WriteString(helpLine("drag note", "Move it"))
	b.WriteString(helpLine("drag ◢", "Resize it"))
	b.WriteString(helpLine("drag canvas", "Pan the workspace"))
	b.WriteString(helpLine("wheel / shift+wheel", "Scroll vertically / horizontally"))
	b.WriteString(helpLine("alt+wheel", "Zoom"))
	b.WriteString(helpLine("[p]/[m] [e] [x]", "Preview or source, edit, delete"))
	b.WriteString(helpLine("click title", "Rename the note"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(helpLine("n", "New note"))
	b.WriteString(helpLine("e / enter", "Edit focused note in $EDITOR"))
	b.WriteString(helpLine("p", "Toggle preview"))
	b.WriteString(helpLine("t", "Rename focused note"))
	b.WriteString(helpLine("i", "Attach an image"))
	b.WriteString(helpLine("y", "Copy content to clipboard"))
	b.WriteString(helpLine("x / delete", "Delete focused note"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Workspace"))
	b.WriteString("\n")
	b.WriteString(helpLine("h j k l / arrows", "Scroll"))
	b.WriteString(helpLine("+ / - / 0", "Zoom in, out, reset"))
	b.WriteString(helpLine("tab / shift+tab", "Next / previous notebook"))
	b.WriteString(helpLine("N / R / D", "New, rename, delete notebook"))
	b.WriteString(helpLine("s / S", "Upload / download"))
	b.WriteString(helpLine("E / I", "Export / import backup"))
	b.WriteString(helpLine("? / q", "Help / quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return b.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 22)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
