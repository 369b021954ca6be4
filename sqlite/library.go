package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/madara"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ madara.LibraryService = (*LibraryService)(nil)

// LibraryService implements madara.LibraryService using SQLite.
type LibraryService struct {
	db  *DB
	now func() time.Time
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ChaptersHash fingerprints a chapter list by id and number.
func ChaptersHash(chapters []madara.Chapter) string {
	var b strings.Builder
	for _, ch := range chapters {
		b.WriteString(ch.ChapterID)
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(ch.Number, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// SaveEntry creates the entry or replaces the stored entry with the same
// site and content id. Reports whether the chapter list differs from the
// previously stored one; a new entry always counts as changed.
func (s *LibraryService) SaveEntry(ctx context.Context, entry *madara.Entry) (bool, error) {
	if err := entry.Validate(); err != nil {
		return false, err
	}

	chapters := entry.Content.Chapters
	entry.ChapterCount = len(chapters)
	entry.ChaptersHash = ChaptersHash(chapters)
	entry.Title = entry.Content.Title
	entry.Status = entry.Content.Status
	entry.IsNSFW = entry.Content.IsNSFW

	body, err := marshalContent(entry.Content)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var id, oldHash, createdAt string
	err = tx.QueryRowContext(ctx, `
		SELECT id, chapters_hash, created_at
		FROM entries
		WHERE site_id = ? AND content_id = ?
	`, entry.SiteID, entry.ContentID).Scan(&id, &oldHash, &createdAt)

	// Timestamps are stored with second precision.
	now := s.now().Truncate(time.Second)
	changed := true
	switch {
	case err == sql.ErrNoRows:
		entry.ID = uuid.New().String()
		entry.CreatedAt = now
		entry.UpdatedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries (id, site_id, content_id, title, status, is_nsfw,
				chapter_count, chapters_hash, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, entry.SiteID, entry.ContentID, entry.Title, string(entry.Status), entry.IsNSFW,
			entry.ChapterCount, entry.ChaptersHash, body,
			entry.CreatedAt.Format(time.RFC3339), entry.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	default:
		created, err := parseTime(createdAt, "created_at")
		if err != nil {
			return false, err
		}
		entry.ID = id
		entry.CreatedAt = created
		entry.UpdatedAt = now
		changed = oldHash != entry.ChaptersHash
		_, err = tx.ExecContext(ctx, `
			UPDATE entries
			SET title = ?, status = ?, is_nsfw = ?, chapter_count = ?, chapters_hash = ?,
				content = ?, updated_at = ?
			WHERE id = ?
		`, entry.Title, string(entry.Status), entry.IsNSFW, entry.ChapterCount, entry.ChaptersHash,
			body, entry.UpdatedAt.Format(time.RFC3339), entry.ID)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE entry_id = ?`, entry.ID); err != nil {
			return false, err
		}
	}

	for i, ch := range chapters {
		var number sql.NullFloat64
		if !math.IsNaN(ch.Number) && !math.IsInf(ch.Number, 0) {
			number = sql.NullFloat64{Float64: ch.Number, Valid: true}
		}
		var released string
		if !ch.Date.IsZero() {
			released = ch.Date.UTC().Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chapters (entry_id, position, chapter_id, number, title, language, released_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, i, ch.ChapterID, number, ch.Title, ch.Language, released)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return changed, nil
}

// FindEntryByID retrieves an entry by ID.
func (s *LibraryService) FindEntryByID(ctx context.Context, id string) (*madara.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEntries+` WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, madara.Errorf(madara.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachChapters(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntry retrieves an entry by site and content id.
func (s *LibraryService) FindEntry(ctx context.Context, siteID, contentID string) (*madara.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEntries+` WHERE site_id = ? AND content_id = ?`, siteID, contentID)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, madara.Errorf(madara.ENOTFOUND, "entry %s/%s not found", siteID, contentID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachChapters(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntries retrieves entries matching the filter, ordered by title.
func (s *LibraryService) FindEntries(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectEntries + ` WHERE 1=1`)

	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.NSFW != nil {
		query.WriteString(" AND is_nsfw = ?")
		args = append(args, *filter.NSFW)
	}

	query.WriteString(" ORDER BY title COLLATE NOCASE, id")
	// SQLite requires LIMIT before OFFSET; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var entries []*madara.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The pool holds a single connection, so rows must be released
	// before chapters are loaded.
	rows.Close()

	for _, entry := range entries {
		if err := s.attachChapters(ctx, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// DeleteEntry permanently removes an entry and its chapters.
func (s *LibraryService) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return madara.Errorf(madara.ENOTFOUND, "entry not found")
	}
	return nil
}

const selectEntries = `
	SELECT id, site_id, content_id, title, status, is_nsfw, chapter_count,
		chapters_hash, content, created_at, updated_at
	FROM entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*madara.Entry, error) {
	var entry madara.Entry
	var status, body, createdAt, updatedAt string

	err := row.Scan(&entry.ID, &entry.SiteID, &entry.ContentID, &entry.Title, &status,
		&entry.IsNSFW, &entry.ChapterCount, &entry.ChaptersHash, &body, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	entry.Status = madara.Status(status)

	var content madara.Content
	if err := json.Unmarshal([]byte(body), &content); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	entry.Content = &content

	entry.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt, err = parseTime(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *LibraryService) attachChapters(ctx context.Context, entry *madara.Entry) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, chapter_id, number, title, language, released_at
		FROM chapters
		WHERE entry_id = ?
		ORDER BY position
	`, entry.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var chapters []madara.Chapter
	for rows.Next() {
		var ch madara.Chapter
		var number sql.NullFloat64
		var released string
		if err := rows.Scan(&ch.Index, &ch.ChapterID, &number, &ch.Title, &ch.Language, &released); err != nil {
			return err
		}
		ch.Number = math.NaN()
		if number.Valid {
			ch.Number = number.Float64
		}
		if released != "" {
			ch.Date, err = parseTime(released, "released_at")
			if err != nil {
				return err
			}
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	entry.Content.Chapters = chapters
	return nil
}

// marshalContent encodes content without its chapters, which live in
// their own table.
func marshalContent(content *madara.Content) (string, error) {
	c := *content
	c.Chapters = nil
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode content: %w", err)
	}
	return string(b), nil
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return t, nil
}
