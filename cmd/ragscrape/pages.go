package main

import (
	"fmt"

	"github.com/fwojciec/ragscrape/crawl"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	session, err := findSession(deps.Ctx, deps.Catalog, c.Domain, c.Session)
	if err != nil {
		return err
	}

	records, err := deps.Catalog.FindPageRecords(deps.Ctx, session.ID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "Session %s discovered no pages.\n", session.ID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Session %s (%s, %s)\n", session.ID, session.Mode, session.StartedAt.Format("2006-01-02 15:04"))

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "URL", "Chars", "HTML"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Title, crawl.TruncateURL(r.URL, 60), r.ContentSize, r.HTMLSize})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 40}})
	t.Render()
	return nil
}
