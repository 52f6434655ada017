// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter renders geocoded tables and run summaries for terminal output.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/geocsv/internal/pipeline"
	"github.com/wneessen/geocsv/internal/table"
)

const (
	DefaultMaxCellWidth = 40
	DefaultPreviewRows  = 5

	columnSeparator = "  "
	ellipsis        = "…"

	summaryTemplate = `{{.Rows}} rows geocoded: {{.Resolved}} resolved ({{percent .Resolved .Rows}}), ` +
		`{{.NotFound}} not found ({{percent .NotFound .Rows}}), {{.Failed}} failed` +
		`{{if .Failed}} ({{.Timeouts}} timeouts, {{.ServiceErrors}} service errors, ` +
		`{{.UnknownErrors}} unknown){{end}}`
)

type Presenter struct {
	maxCellWidth int
	summary      *template.Template
}

// New returns a Presenter that truncates cells wider than maxCellWidth terminal columns.
func New(maxCellWidth int) (*Presenter, error) {
	if maxCellWidth < 1 {
		maxCellWidth = DefaultMaxCellWidth
	}
	p := &Presenter{maxCellWidth: maxCellWidth}

	tpl, err := template.New("summary").Funcs(p.templateFuncMap()).Parse(summaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary template: %w", err)
	}
	p.summary = tpl
	return p, nil
}

// Preview writes the header and the first rows of the table as aligned columns. Widths are
// measured in terminal cells so that wide characters keep the columns aligned.
func (p *Presenter) Preview(w io.Writer, tbl *table.Table, rows int) error {
	head := tbl.Head(rows)
	lines := make([][]string, 0, len(head.Records)+1)
	lines = append(lines, p.truncateRow(head.Header))
	for _, record := range head.Records {
		lines = append(lines, p.truncateRow(record))
	}

	widths := make([]int, len(head.Header))
	for _, line := range lines {
		for i, cell := range line {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	buf := strings.Builder{}
	for _, line := range lines {
		for i, cell := range line {
			if i == len(line)-1 {
				buf.WriteString(cell)
				break
			}
			buf.WriteString(runewidth.FillRight(cell, widths[i]))
			buf.WriteString(columnSeparator)
		}
		buf.WriteString("\n")
	}
	if more := tbl.Len() - len(head.Records); more > 0 {
		fmt.Fprintf(&buf, "... %d more rows\n", more)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// Summary writes a single line describing the outcome counts of a run.
func (p *Presenter) Summary(w io.Writer, summary pipeline.Summary) error {
	data := struct {
		pipeline.Summary
		Failed int
	}{summary, summary.Failed()}
	if err := p.summary.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *Presenter) truncateRow(row []string) []string {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = runewidth.Truncate(cell, p.maxCellWidth, ellipsis)
	}
	return cells
}
