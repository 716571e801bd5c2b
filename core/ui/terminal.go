// Package ui - Terminal user interface
// Colored prompts, messages and tables for running the questionnaire in a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"fee-wizard/core/output"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out, noColor: noColor}
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a question heading
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
}

// Prompt prints a label awaiting input on the same line
func (w *Writer) Prompt(label string) {
	w.Print("%s ", w.color(Bold, label+":"))
}

// Option prints one numbered choice
func (w *Writer) Option(n int, id, description string) {
	w.Println("  %s %-6s %s", w.color(Dim, fmt.Sprintf("%d)", n)), id, description)
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println(w.color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println(w.color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println(w.color(Red, "✗ ") + fmt.Sprintf(format, args...))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{w: w, headers: headers, widths: widths}
}

// AddRow adds a row, padding or truncating to the header count
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.color(Bold, t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, width := range t.widths {
		sep[i] = strings.Repeat("─", width)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

// line pads cells by rune count; fmt widths count runes too
func (t *Table) line(cells []string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", t.widths[i], cell)
	}
	return strings.Join(padded, " │ ")
}

// Breakdown prints a fee breakdown and the amount to pay
func (w *Writer) Breakdown(b *output.Breakdown) {
	t := w.NewTable("Code", "Description", "Amount")
	for _, row := range b.Rows {
		t.AddRow(row.LevelCode, row.Description, row.Amount)
	}
	w.Println("")
	t.Render()
	w.Println("")
	w.Success("Total to pay: %s", w.color(Bold, b.Total))
	if !b.VatApplies {
		w.Warning("VAT not included")
	}
}
