// Package formatter turns <tag>text</tag> markup into ANSI styled text.
package formatter

import (
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// tagPattern matches <name>, </name> and </>.
var tagPattern = regexp.MustCompile(`<(/?)([a-z][a-z0-9_-]*)?>`)

// Formatter renders markup. Known tags are styled when decorated and
// stripped otherwise; unknown tags are kept verbatim.
type Formatter struct {
	mu        sync.RWMutex
	decorated bool
	styles    map[string]lipgloss.Style
	renderer  *lipgloss.Renderer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithDecorated sets whether Format emits ANSI sequences.
func WithDecorated(decorated bool) Option {
	return func(f *Formatter) { f.decorated = decorated }
}

// WithStyle adds or replaces a named style.
func WithStyle(name string, style lipgloss.Style) Option {
	return func(f *Formatter) { f.setStyle(name, style) }
}

// New returns an undecorated Formatter with the default styles.
func New(opts ...Option) *Formatter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	f := &Formatter{
		styles:   make(map[string]lipgloss.Style),
		renderer: r,
	}
	for name, style := range defaultStyles() {
		f.setStyle(name, style)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func defaultStyles() map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"info":     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"comment":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"question": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"error":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"warning":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"debug":    lipgloss.NewStyle().Faint(true),
		"c1":       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"c2":       lipgloss.NewStyle().Bold(true),
		"b":        lipgloss.NewStyle().Bold(true),
	}
}

// IsDecorated reports whether Format emits ANSI sequences.
func (f *Formatter) IsDecorated() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.decorated
}

// SetDecorated sets whether Format emits ANSI sequences.
func (f *Formatter) SetDecorated(decorated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decorated = decorated
}

// SetStyle adds or replaces a named style.
func (f *Formatter) SetStyle(name string, style lipgloss.Style) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setStyle(name, style)
}

func (f *Formatter) setStyle(name string, style lipgloss.Style) {
	f.styles[strings.ToLower(name)] = style.Renderer(f.renderer).TabWidth(lipgloss.NoTabConversion)
}

// HasStyle reports whether name is a known tag.
func (f *Formatter) HasStyle(name string) bool {
	_, ok := f.Style(name)
	return ok
}

// Style returns the style bound to a tag.
func (f *Formatter) Style(name string) (lipgloss.Style, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.styles[strings.ToLower(name)]
	return s, ok
}

// Format renders message according to the decoration setting.
func (f *Formatter) Format(message string) string {
	return f.render(message, f.IsDecorated())
}

// RemoveFormat strips markup and any ANSI sequences already in message.
func (f *Formatter) RemoveFormat(message string) string {
	return ansi.Strip(f.render(message, false))
}

type frame struct {
	name  string
	style lipgloss.Style
}

func (f *Formatter) render(message string, decorated bool) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var (
		out   strings.Builder
		stack []frame
		pos   int
	)

	emit := func(text string) {
		text = strings.ReplaceAll(text, `\<`, "<")
		if text == "" {
			return
		}
		if !decorated || len(stack) == 0 {
			out.WriteString(text)
			return
		}
		out.WriteString(renderLines(stack[len(stack)-1].style, text))
	}

	for _, m := range tagPattern.FindAllStringSubmatchIndex(message, -1) {
		start, end := m[0], m[1]
		if start > 0 && message[start-1] == '\\' {
			continue
		}
		closing := m[3] > m[2]
		name := ""
		if m[4] >= 0 {
			name = message[m[4]:m[5]]
		}

		switch {
		case !closing && name != "":
			style, ok := f.styles[name]
			if !ok {
				continue
			}
			if len(stack) > 0 {
				style = style.Inherit(stack[len(stack)-1].style)
			}
			emit(message[pos:start])
			stack = append(stack, frame{name: name, style: style})
		case closing && len(stack) > 0 && (name == "" || name == stack[len(stack)-1].name):
			emit(message[pos:start])
			stack = stack[:len(stack)-1]
		default:
			continue
		}
		pos = end
	}
	emit(message[pos:])

	return out.String()
}

// renderLines styles each line separately so lipgloss never pads lines
// to a common width.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
