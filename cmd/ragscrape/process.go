package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/ragscrape"
)

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	session, err := findSession(deps.Ctx, deps.Catalog, c.Domain, c.Session)
	if err != nil {
		return err
	}

	content, err := deps.Catalog.FindContent(deps.Ctx, session.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Processing %d pages from session %s\n", content.Len(), session.ID)

	return runPipeline(deps, deps.Pipeline, content)
}

// findSession returns the session with id, or the latest session of
// domain when id is empty.
func findSession(ctx context.Context, catalog ragscrape.CatalogService, domain, id string) (*ragscrape.Session, error) {
	if id != "" {
		session, err := catalog.FindSessionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if session.Domain != domain {
			return nil, ragscrape.Errorf(ragscrape.EINVALID, "session %s belongs to %s, not %s", id, session.Domain, domain)
		}
		return session, nil
	}

	session, err := catalog.FindLatestSession(ctx, domain)
	if ragscrape.ErrorCode(err) == ragscrape.ENOTFOUND {
		return nil, ragscrape.Errorf(ragscrape.ENOTFOUND, "no sessions for %s. Use 'ragscrape scrape %s' first", domain, domain)
	}
	return session, err
}
