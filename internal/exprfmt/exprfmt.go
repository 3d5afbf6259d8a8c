// Package exprfmt formats hierarchy query results for terminal and JSON
// output: parent tables, linearization chains and subtype verdicts.
package exprfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rtgen/generics"
)

// Opts configures pretty output.
type Opts struct {
	Color bool
	Width int // максимальная ширина строки, 0 - не ограничено
}

var (
	classColor   = color.New(color.FgCyan, color.Bold)
	arrowColor   = color.New(color.FgHiBlack)
	okColor      = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	problemColor = color.New(color.FgYellow)
)

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Strings renders a handle list.
func Strings(handles []*generics.Handle) []string {
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = h.String()
	}
	return out
}

// Chain writes a linearization as one arrow chain, wrapping when the
// configured width runs out.
func Chain(w io.Writer, names []string, opts Opts) {
	arrow := paint(arrowColor, opts.Color, " <- ")
	line := ""
	lineWidth := 0
	for i, name := range names {
		painted := name
		if i == 0 {
			painted = paint(classColor, opts.Color, name)
		}
		sep := ""
		if i > 0 {
			sep = arrow
		}
		// Ширину считаем по исходному имени, без escape-последовательностей.
		next := lineWidth + runewidth.StringWidth(name)
		if i > 0 {
			next += 4
		}
		if opts.Width > 0 && line != "" && next > opts.Width {
			fmt.Fprintln(w, line)
			line = "  " + painted
			lineWidth = 2 + runewidth.StringWidth(name)
			continue
		}
		line += sep + painted
		lineWidth = next
	}
	if line != "" {
		fmt.Fprintln(w, line)
	}
}

// ParentRow is one class with its direct parents.
type ParentRow struct {
	Class   string
	Parents []string
}

// ParentsTable writes rows aligned on the class column.
func ParentsTable(w io.Writer, rows []ParentRow, opts Opts) {
	width := 0
	for _, row := range rows {
		if n := runewidth.StringWidth(row.Class); n > width {
			width = n
		}
	}
	for _, row := range rows {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(row.Class))
		parents := "(none)"
		if len(row.Parents) > 0 {
			parents = strings.Join(row.Parents, ", ")
		}
		fmt.Fprintf(w, "%s%s %s %s\n",
			paint(classColor, opts.Color, row.Class), pad,
			paint(arrowColor, opts.Color, "<-"), parents)
	}
}

// Verdict writes a subtype check result.
func Verdict(w io.Writer, sub, cls string, ok bool, opts Opts) {
	mark := paint(okColor, opts.Color, "ok")
	rel := "<:"
	if !ok {
		mark = paint(failColor, opts.Color, "fail")
		rel = "</:"
	}
	fmt.Fprintf(w, "%s: %s %s %s\n", mark, sub, rel, cls)
}

// Problems writes vet findings, one per line.
func Problems(w io.Writer, problems []string, opts Opts) {
	for _, p := range problems {
		fmt.Fprintf(w, "%s %s\n", paint(problemColor, opts.Color, "warn:"), p)
	}
}

// ClassOutput is the JSON shape for one class.
type ClassOutput struct {
	Class         string   `json:"class"`
	Params        []string `json:"params,omitempty"`
	Parents       []string `json:"parents,omitempty"`
	Linearization []string `json:"linearization,omitempty"`
}

// VerdictOutput is the JSON shape for one subtype check.
type VerdictOutput struct {
	Sub     string `json:"sub"`
	Cls     string `json:"cls"`
	Subtype bool   `json:"subtype"`
}

// WriteJSON writes any output shape with stable indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
