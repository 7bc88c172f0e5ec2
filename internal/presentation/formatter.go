package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/modelctl/internal/lifecycle"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	styles styles
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
		styles: newStyles(lipgloss.NewRenderer(writer)),
	}
}

// FormatModels writes models as an indented JSON array.
func (f *Formatter) FormatModels(models []ModelDTO) error {
	return f.encode(models)
}

// FormatModel writes a single model as indented JSON.
func (f *Formatter) FormatModel(model ModelDTO) error {
	return f.encode(model)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatModelsText writes a human readable listing.
func (f *Formatter) FormatModelsText(models []ModelDTO) error {
	var b strings.Builder
	if len(models) == 0 {
		b.WriteString("No models found.\n")
		_, err := io.WriteString(f.writer, b.String())
		return err
	}

	fmt.Fprintf(&b, "\nFound %d model(s):\n\n", len(models))
	for _, m := range models {
		fmt.Fprintf(&b, "  %s\n", f.styles.title.Render(m.Name+" v"+m.Version))
		f.writeField(&b, "    ", "Status", f.styles.status(m.Status))
		f.writeDates(&b, "    ", m)
		b.WriteString("\n")
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatStatus writes the detail view of one model.
func (f *Formatter) FormatStatus(m ModelDTO) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s\n", f.styles.label.Render("Model:"), f.styles.title.Render(m.Name+" v"+m.Version))
	f.writeField(&b, "", "Status", f.styles.status(m.Status))
	f.writeDates(&b, "", m)
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func (f *Formatter) writeDates(b *strings.Builder, indent string, m ModelDTO) {
	f.writeField(b, indent, "Created", shortDate(m.Created))
	if m.Deprecation != nil {
		f.writeField(b, indent, "Deprecation", shortDate(*m.Deprecation))
	}
	if m.Retirement != nil {
		f.writeField(b, indent, "Retirement", shortDate(*m.Retirement))
	}
}

func (f *Formatter) writeField(b *strings.Builder, indent, label, value string) {
	fmt.Fprintf(b, "%s%s %s\n", indent, f.styles.label.Render(label+":"), value)
}

// shortDate renders a persisted timestamp as a calendar date. Values that do
// not parse are shown unchanged.
func shortDate(s string) string {
	t, err := lifecycle.ParseTimestamp(s)
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}
