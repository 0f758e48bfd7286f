package termcap

import (
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultWidth is used when the width cannot be determined.
const DefaultWidth = 80

var getSize = term.GetSize

// Width returns the terminal width in cells for stream: COLUMNS when it holds
// a positive integer, else the size of the terminal behind the descriptor.
func Width(stream any, env Environment) int {
	if env == nil {
		env = OSEnvironment{}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(getenv(env, EnvColumns))); err == nil && cols > 0 {
		return cols
	}
	if fd, ok := DescriptorOf(stream); ok {
		if w, _, err := getSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}
