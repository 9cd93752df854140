package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#6750A4") // Accent purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// Header bar
	Header = lipgloss.NewStyle().
		Background(Primary).
		Foreground(White).
		Bold(true)

	HeaderDim = lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#D0BCFF"))

	// Canvas
	CanvasDot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151"))

	NoteFrame = lipgloss.NewStyle().
			Foreground(Muted)

	NoteFrameFocused = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	NoteTitle = lipgloss.NewStyle().
			Bold(true)

	NoteContent = lipgloss.NewStyle()

	NotePreview = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A7F3D0"))

	NoteControl = lipgloss.NewStyle().
			Foreground(Secondary)

	NoteDelete = lipgloss.NewStyle().
			Foreground(Error)

	NoteHandle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Modal box drawn over the canvas
	Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// WithAccent recolors the accent styles from the user's settings.
// Invalid colors leave the theme unchanged.
func WithAccent(hex string) {
	if len(hex) != 7 || hex[0] != '#' {
		return
	}
	Primary = lipgloss.Color(hex)
	Title = Title.Foreground(Primary)
	Header = Header.Background(Primary)
	HeaderDim = HeaderDim.Background(Primary)
	NoteFrameFocused = NoteFrameFocused.Foreground(Primary)
	Modal = Modal.BorderForeground(Primary)
	HelpKey = HelpKey.Foreground(Primary)
}
