package ragscrape

// Converter renders isolated page markup as plain text.
type Converter interface {
	// Convert turns an HTML fragment into Markdown-flavored text. Links and
	// tables are kept or dropped according to the implementation's options.
	Convert(html string) (string, error)
}
