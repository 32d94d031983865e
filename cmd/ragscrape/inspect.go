package main

import (
	"fmt"

	"github.com/fwojciec/ragscrape"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	loaded, err := deps.Index.Load(deps.Ctx)
	if err != nil {
		if ragscrape.ErrorCode(err) == ragscrape.ENOTFOUND {
			return ragscrape.Errorf(ragscrape.ENOTFOUND, "no index in %s. Run 'ragscrape scrape' first", c.OutputDir)
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d vectors, dimension %d\n", loaded.Index.Len(), loaded.Index.Dimension())

	n := min(c.Limit, len(loaded.Metadata))
	for i := range n {
		m := loaded.Metadata[i]
		fmt.Fprintf(deps.Stdout, "\n[%d] %s #%d\n", i, m.URL, m.ChunkID)
		if m.Title != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", m.Title)
		}
		fmt.Fprintf(deps.Stdout, "    %s\n", m.ChunkText)
	}
	if rest := len(loaded.Metadata) - n; rest > 0 {
		fmt.Fprintf(deps.Stdout, "\n... and %d more\n", rest)
	}
	return nil
}
