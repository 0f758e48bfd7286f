package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/griffithind/termout/internal/errors"
)

// StyleSpec describes a style in configuration files.
type StyleSpec struct {
	FG      string   `yaml:"fg,omitempty" json:"fg,omitempty"`
	BG      string   `yaml:"bg,omitempty" json:"bg,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",

	"light_red":     "9",
	"light_green":   "10",
	"light_yellow":  "11",
	"light_blue":    "12",
	"light_magenta": "13",
	"light_cyan":    "14",
	"light_white":   "15",
}

var (
	hexColor     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	numericColor = regexp.MustCompile(`^(?:[0-9]|[1-9][0-9]|1[0-9][0-9]|2[0-4][0-9]|25[0-5])$`)
)

// Style converts s to a lipgloss style. Colors may be names
// ("green", "light_blue", "default"), ANSI numbers 0-255 or #rgb hex.
func (s StyleSpec) Style() (lipgloss.Style, error) {
	style := lipgloss.NewStyle()

	fg, err := parseColor(s.FG)
	if err != nil {
		return style, errors.StyleInvalid("fg", err.Error())
	}
	if fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}

	bg, err := parseColor(s.BG)
	if err != nil {
		return style, errors.StyleInvalid("bg", err.Error())
	}
	if bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}

	for _, opt := range s.Options {
		switch strings.ToLower(strings.TrimSpace(opt)) {
		case "bold":
			style = style.Bold(true)
		case "dark":
			style = style.Faint(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "blink":
			style = style.Blink(true)
		case "reverse":
			style = style.Reverse(true)
		case "strike":
			style = style.Strikethrough(true)
		default:
			return style, errors.StyleInvalid("options", fmt.Sprintf("unknown option %q", opt))
		}
	}
	return style, nil
}

func parseColor(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "" || name == "default":
		return "", nil
	case hexColor.MatchString(name), numericColor.MatchString(name):
		return name, nil
	}
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown color %q", name)
}
