package output

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/griffithind/termout/internal/formatter"
	"github.com/griffithind/termout/internal/termcap"
)

// sectionRegistry lists the sections of one stream in creation order.
// mu serialises every write to that stream.
type sectionRegistry struct {
	mu       sync.Mutex
	sections []*SectionOutput
}

const tabCells = 8

// SectionOutput is a region of a terminal stream that can be cleared and
// rewritten. When it changes, every section created after it is erased and
// replayed below it.
type SectionOutput struct {
	*Output
	*streamCore

	// lines holds the written lines; heights their size in terminal rows.
	lines   []string
	heights []int
}

func newSection(parent *streamCore, v Verbosity, decorated bool, f *formatter.Formatter) *SectionOutput {
	s := &SectionOutput{
		streamCore: &streamCore{
			stream:   parent.stream,
			env:      parent.env,
			lookup:   parent.lookup,
			registry: parent.registry,
		},
	}
	s.Output = NewOutput(s.write,
		WithBaseVerbosity(v),
		WithBaseFormatter(f),
		WithBaseDecorated(decorated),
	)

	s.registry.mu.Lock()
	s.registry.sections = append(s.registry.sections, s)
	s.registry.mu.Unlock()
	return s
}

// Section creates a sibling section on the same stream.
func (s *SectionOutput) Section() *SectionOutput {
	return newSection(s.streamCore, s.Verbosity(), s.IsDecorated(), s.Formatter())
}

// Content returns the text currently displayed by the section.
func (s *SectionOutput) Content() string {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.content()
}

// Lines returns the number of terminal rows the section occupies.
func (s *SectionOutput) Lines() int {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.rows()
}

// Clear erases the last n lines of the section, or all of it when n <= 0.
// Undecorated sections cannot move the cursor, so Clear does nothing for them.
func (s *SectionOutput) Clear(n int) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	if len(s.lines) == 0 || !s.IsDecorated() {
		return nil
	}
	if n <= 0 || n > len(s.lines) {
		n = len(s.lines)
	}

	keep := len(s.lines) - n
	cleared := 0
	for _, h := range s.heights[keep:] {
		cleared += h
	}
	s.lines = s.lines[:keep]
	s.heights = s.heights[:keep]

	erased, err := s.eraseFollowing(cleared)
	if err != nil {
		return err
	}
	return s.writeLocked(erased, false)
}

// Overwrite replaces the content of the section with message.
func (s *SectionOutput) Overwrite(message string, opts ...WriteOption) error {
	if err := s.Clear(0); err != nil {
		return err
	}
	return s.WriteLine(message, opts...)
}

func (s *SectionOutput) write(message string, newLine bool) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	if !s.IsDecorated() {
		return s.writeLocked(message, newLine)
	}

	erased, err := s.eraseFollowing(0)
	if err != nil {
		return err
	}
	s.addContent(message)
	if err := s.writeLocked(message, true); err != nil {
		return err
	}
	return s.writeLocked(erased, false)
}

// eraseFollowing moves the cursor up over the sections created after s, plus
// extra rows, erases to the end of the screen and returns the erased content.
func (s *SectionOutput) eraseFollowing(extra int) (string, error) {
	rows := extra
	var erased strings.Builder

	after := false
	for _, sec := range s.registry.sections {
		if sec == s {
			after = true
			continue
		}
		if after {
			rows += sec.rows()
			erased.WriteString(sec.content())
		}
	}

	if rows > 0 {
		if err := s.writeLocked(fmt.Sprintf("\x1b[%dA\x1b[0J", rows), false); err != nil {
			return "", err
		}
	}
	return erased.String(), nil
}

func (s *SectionOutput) addContent(message string) {
	width := termcap.Width(s.stream, s.env)
	for _, line := range strings.Split(message, "\n") {
		s.lines = append(s.lines, line)
		s.heights = append(s.heights, s.lineRows(line, width))
	}
}

// lineRows returns how many terminal rows line wraps to; an empty line is one row.
func (s *SectionOutput) lineRows(line string, width int) int {
	plain := strings.ReplaceAll(s.RemoveFormat(line), "\t", strings.Repeat(" ", tabCells))
	cells := runewidth.StringWidth(plain)
	if cells == 0 || width <= 0 {
		return 1
	}
	return (cells + width - 1) / width
}

func (s *SectionOutput) content() string {
	var b strings.Builder
	for _, line := range s.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *SectionOutput) rows() int {
	total := 0
	for _, h := range s.heights {
		total += h
	}
	return total
}
