// Package madara extracts structured publication metadata from pages served
// by sites built on the Madara WordPress theme and its visual clones. A
// per-site selector Context describes where each field lives; the extraction
// engine turns raw HTML into Highlights, Content, Chapters, page lists, Tags
// and paged results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package madara
