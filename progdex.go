// Package progdex builds a durable, deduplicated index of university
// program listings extracted from web pages. It fetches a page, reduces it
// to clean text, asks a language-model service to extract structured
// program records, and merges the results into a persisted JSON database
// that supports querying and export.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, openai/, fs/).
package progdex
