package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSavePageRecords measures persisting the discovery results of a
// crawl of the default page budget.
func BenchmarkSavePageRecords(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewCatalogService(db)
	session := &ragscrape.Session{Domain: "example.com", Mode: ragscrape.ModeInteractive}
	require.NoError(b, svc.CreateSession(ctx, session))

	records := make([]ragscrape.PageRecord, ragscrape.DefaultMaxPages)
	for i := range records {
		records[i] = ragscrape.PageRecord{
			URL:         fmt.Sprintf("https://example.com/docs/page%d", i),
			Title:       fmt.Sprintf("Page %d", i),
			Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			ContentSize: 1200,
			HTMLSize:    8000,
		}
	}

	b.ResetTimer()
	for b.Loop() {
		if err := svc.SavePageRecords(ctx, session.ID, records); err != nil {
			b.Fatal(err)
		}
	}
}
