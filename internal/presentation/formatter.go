// Package presentation renders registry listings for the CLI.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	componentStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	versionStyle   = lipgloss.NewStyle().Bold(true)
	aliasStyle     = lipgloss.NewStyle().Faint(true)
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatEntries writes one line per entry: the version, its title when
// it differs, and the alias set.
func (f *Formatter) FormatEntries(entries []EntryDTO) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintln(f.writer, formatEntry(entry)); err != nil {
			return err
		}
	}
	return nil
}

// FormatComponents writes a headed listing per component.
func (f *Formatter) FormatComponents(doc map[string][]EntryDTO, order []string) error {
	for i, component := range order {
		if i > 0 {
			if _, err := fmt.Fprintln(f.writer); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(f.writer, componentStyle.Render(component)); err != nil {
			return err
		}
		if err := f.FormatEntries(doc[component]); err != nil {
			return err
		}
	}
	return nil
}

func formatEntry(entry EntryDTO) string {
	line := versionStyle.Render(entry.Version)
	if entry.Title != entry.Version {
		line = fmt.Sprintf("%s (%s)", entry.Title, line)
	}
	if len(entry.Aliases) > 0 {
		line += " " + aliasStyle.Render("["+strings.Join(entry.Aliases, ", ")+"]")
	}
	return line
}
