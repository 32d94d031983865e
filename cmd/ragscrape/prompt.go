package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/crawl"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Ensure Prompt implements ragscrape.Chooser at compile time.
var _ ragscrape.Chooser = (*Prompt)(nil)

// Prompt is the terminal Chooser. It renders discovered pages as a table and
// reads answers line by line. End of input selects nothing.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt creates a Prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Present renders records as a numbered table.
func (p *Prompt) Present(ctx context.Context, records []ragscrape.PageRecord) error {
	fmt.Fprintf(p.out, "\nDiscovered %d pages:\n", len(records))
	p.render(records, true)
	return nil
}

// Choose shows the selection menu and reads the operator's choice.
func (p *Prompt) Choose(ctx context.Context) (ragscrape.SelectionMode, error) {
	fmt.Fprintln(p.out)
	for _, m := range []ragscrape.SelectionMode{
		ragscrape.SelectAll,
		ragscrape.SelectByIndex,
		ragscrape.SelectByKeyword,
		ragscrape.SelectNone,
	} {
		fmt.Fprintf(p.out, "  %d) %s\n", int(m), m)
	}
	line, err := p.ask(ctx, "Choice: ")
	if errors.Is(err, io.EOF) {
		return ragscrape.SelectNone, nil
	} else if err != nil {
		return ragscrape.SelectInvalid, err
	}
	mode := ragscrape.ParseSelectionMode(line)
	if mode == ragscrape.SelectInvalid {
		fmt.Fprintf(p.out, "Invalid choice %q.\n", line)
	}
	return mode, nil
}

// Indices reads an index expression.
func (p *Prompt) Indices(ctx context.Context) (string, error) {
	line, err := p.ask(ctx, "Pages to fetch (e.g. 1,3,5-7): ")
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

// Keyword reads a filter keyword.
func (p *Prompt) Keyword(ctx context.Context) (string, error) {
	line, err := p.ask(ctx, "Keyword: ")
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

// Confirm lists the pages matching keyword and asks whether to fetch them.
func (p *Prompt) Confirm(ctx context.Context, keyword string, matches []ragscrape.PageRecord) (bool, error) {
	fmt.Fprintf(p.out, "\n%d pages match %q:\n", len(matches), keyword)
	if len(matches) > 0 {
		p.render(matches, false)
	}
	line, err := p.ask(ctx, "Fetch these pages? [y/N]: ")
	if errors.Is(err, io.EOF) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompt) render(records []ragscrape.PageRecord, withDescription bool) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	header := table.Row{"#", "Title", "URL", "Chars"}
	if withDescription {
		header = append(header, "Description")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 5, WidthMax: 50},
	})
	for i, r := range records {
		row := table.Row{i + 1, r.Title, crawl.TruncateURL(r.URL, 60), r.ContentSize}
		if withDescription {
			row = append(row, r.Description)
		}
		t.AppendRow(row)
	}
	t.Render()
}

// ask prints prompt and reads one trimmed line. A final line without a
// newline is returned as is; io.EOF is returned only when nothing was read.
func (p *Prompt) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}
