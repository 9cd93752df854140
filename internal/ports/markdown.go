package ports

// MarkdownRenderer renders note content for preview mode
type MarkdownRenderer interface {
	// Render returns terminal-safe text wrapped to width columns
	Render(markdown string, width int) (string, error)
}
