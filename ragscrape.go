// Package ragscrape turns a web domain into a retrievable text corpus.
// It crawls pages politely, extracts clean text, splits it into overlapping
// chunks, embeds each chunk and persists the vectors with a metadata sidecar
// for later similarity search.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package ragscrape
