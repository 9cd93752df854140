package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"arknotes/internal/ports"
)

// Glamour style names accepted by NewRenderer
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

var dataImage = regexp.MustCompile(`!\[([^\]]*)\]\(data:[^)]*\)`)

// Renderer implements ports.MarkdownRenderer with glamour, keeping one
// renderer per wrap width
type Renderer struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

var _ ports.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer using the named glamour style
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = StyleDark
	}
	return &Renderer{style: style, cache: make(map[int]*glamour.TermRenderer)}
}

// Render renders md wrapped to width columns. Inline data-URI images are
// replaced by a short placeholder since a terminal cannot show them.
func (r *Renderer) Render(md string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	tr, err := r.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(StripImages(md))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

func (r *Renderer) renderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.cache[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.cache[width] = tr
	return tr, nil
}

// StripImages replaces data-URI images with "[image: alt]"
func StripImages(md string) string {
	return dataImage.ReplaceAllStringFunc(md, func(m string) string {
		alt := dataImage.FindStringSubmatch(m)[1]
		if alt == "" {
			return "[image]"
		}
		return "[image: " + alt + "]"
	})
}
