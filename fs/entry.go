// Package fs provides file-based export of library entries.
package fs

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/madara"
)

// EntryPath returns the path of an exported entry relative to the export
// root: site/content followed by ext.
// Example: ("mangatx", "solo-leveling", ".md") → mangatx/solo-leveling.md
func EntryPath(siteID, contentID, ext string) (string, error) {
	for _, part := range []string{siteID, contentID} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", madara.Errorf(madara.EINVALID, "invalid path segment %q: path traversal", part)
		}
	}
	return filepath.Join(siteID, contentID+ext), nil
}

// FormatEntry formats an entry as markdown with YAML frontmatter.
func FormatEntry(entry *madara.Entry) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("site: ")
	b.WriteString(entry.SiteID)
	b.WriteString("\nid: ")
	b.WriteString(entry.ContentID)
	if entry.Content.WebURL != "" {
		b.WriteString("\nsource: ")
		b.WriteString(entry.Content.WebURL)
	}
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(entry.Title))
	b.WriteString("\nstatus: ")
	b.WriteString(string(entry.Status))
	b.WriteString("\nchapters: ")
	b.WriteString(strconv.Itoa(entry.ChapterCount))
	if !entry.UpdatedAt.IsZero() {
		b.WriteString("\nupdated: ")
		b.WriteString(entry.UpdatedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(madara.FormatContent(entry.Content))
	b.WriteString("\n")
	return b.String()
}

// MarshalEntry encodes an entry as indented JSON.
func MarshalEntry(entry *madara.Entry) ([]byte, error) {
	return json.MarshalIndent(entry, "", "  ")
}
