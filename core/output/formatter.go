package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown table
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given breakdown
	Render(w io.Writer, b *Breakdown) error
}

// NewFormatter returns the formatter for f
func NewFormatter(f Format) (Formatter, error) {
	switch f {
	case FormatCLI, "":
		return cliFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatMarkdown:
		return markdownFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) Render(w io.Writer, b *Breakdown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range b.Rows {
		if row.Kind == RowFee {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", row.LevelCode, row.Description, row.Amount)
			continue
		}
		fmt.Fprintf(tw, "\t%s\t%s\t\n", row.Description, row.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal to pay: %s\n", b.Total)
	return err
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, b *Breakdown) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

type markdownFormatter struct{}

func (markdownFormatter) Format() Format { return FormatMarkdown }

func (markdownFormatter) Render(w io.Writer, b *Breakdown) error {
	if _, err := fmt.Fprint(w, "| Code | Description | Amount |\n|---|---|---:|\n"); err != nil {
		return err
	}
	for _, row := range b.Rows {
		desc := row.Description
		if row.Kind != RowFee {
			desc = "**" + desc + "**"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s |\n", row.LevelCode, desc, row.Amount); err != nil {
			return err
		}
	}
	return nil
}
