// Package export renders a record list as JSON, CSV, Markdown or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jung-kurt/gofpdf"

	"github.com/Makepad-fr/records/internal/model"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "md", "pdf"}

// Export renders records in format.
func Export(records []model.Record, format string) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return json.MarshalIndent(records, "", "  ")
	case "csv":
		return toCSV(records)
	case "md", "markdown":
		return []byte(Markdown(records)), nil
	case "pdf":
		return toPDF(records)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func toCSV(records []model.Record) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "text", "isComplete"})
	for _, r := range records {
		_ = w.Write([]string{r.ID, r.Text, strconv.FormatBool(r.IsComplete)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return b.Bytes(), nil
}

// Markdown renders records as a task list.
func Markdown(records []model.Record) string {
	var b strings.Builder
	b.WriteString("# Records\n\n")
	if len(records) == 0 {
		b.WriteString("_No records_\n")
		return b.String()
	}
	for _, r := range records {
		box := "[ ]"
		if r.IsComplete {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s\n", box, escapeMarkdown(r.Text))
	}
	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "#", `\#`,
)

func escapeMarkdown(s string) string { return mdEscaper.Replace(s) }

// RenderMarkdown renders the Markdown export for a terminal of the given width.
// It falls back to the raw Markdown if rendering fails.
func RenderMarkdown(records []model.Record, style string, width int) string {
	md := Markdown(records)
	if width < 20 {
		width = 20
	}
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block on terminal queries; use a fixed style.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func toPDF(records []model.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented text survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Records")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	if len(records) == 0 {
		pdf.MultiCell(0, 6, "No records", "0", "L", false)
	}
	for i, r := range records {
		box := "[ ]"
		if r.IsComplete {
			box = "[x]"
		}
		line := fmt.Sprintf("%2d. %s %s", i+1, box, tr(r.Text))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
