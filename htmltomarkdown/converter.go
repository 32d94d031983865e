// Package htmltomarkdown converts isolated page content to Markdown-flavored
// plain text suitable for chunking.
package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragscrape"
)

// Ensure Converter implements ragscrape.Converter at compile time.
var _ ragscrape.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Images are always dropped; links and
// tables are kept or flattened to text depending on the options.
type Converter struct {
	conv       *converter.Converter
	keepLinks  bool
	keepTables bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLinks controls whether anchors render as Markdown links.
// When false only the anchor text is kept. Defaults to true.
func WithLinks(keep bool) Option {
	return func(c *Converter) {
		c.keepLinks = keep
	}
}

// WithTables controls whether tables render as Markdown tables.
// When false each row becomes a paragraph of its cell texts. Defaults to true.
func WithTables(keep bool) Option {
	return func(c *Converter) {
		c.keepTables = keep
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{keepLinks: true, keepTables: true}
	for _, opt := range opts {
		opt(c)
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if c.keepTables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	c.conv = converter.NewConverter(converter.WithPlugins(plugins...))
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", ragscrape.Errorf(ragscrape.EINVALID, "empty HTML input")
	}

	prepared, err := c.prepare(rawHTML)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(prepared)
	if err != nil {
		return "", ragscrape.Errorf(ragscrape.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return strings.TrimSpace(result), nil
}

// prepare drops images and applies the link and table options.
func (c *Converter) prepare(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", ragscrape.Errorf(ragscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	body := doc.Find("body")

	body.Find("img, picture, svg").Remove()

	if !c.keepLinks {
		body.Find("a").Each(func(_ int, a *goquery.Selection) {
			a.ReplaceWithSelection(a.Contents())
		})
	}

	if !c.keepTables {
		body.Find("table").Each(func(_ int, t *goquery.Selection) {
			var rows strings.Builder
			t.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				var cells []string
				tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
					if text := strings.Join(strings.Fields(cell.Text()), " "); text != "" {
						cells = append(cells, text)
					}
				})
				if len(cells) > 0 {
					rows.WriteString("<p>" + html.EscapeString(strings.Join(cells, " ")) + "</p>")
				}
			})
			t.ReplaceWithHtml(rows.String())
		})
	}

	out, err := body.Html()
	if err != nil {
		return "", ragscrape.Errorf(ragscrape.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}
