package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linkdeck/internal/model"

	_ "modernc.org/sqlite"
)

// SubmissionLog is an append-only SQLite record of submitted snapshots.
// It is a sink on the submission boundary; nothing reads it back into a collection.
type SubmissionLog struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSubmissionLog opens (creating if needed) the log at path.
func OpenSubmissionLog(ctx context.Context, path string) (*SubmissionLog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("submission log: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation write concurrently; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSubmissions(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SubmissionLog{db: db, now: time.Now}, nil
}

func migrateSubmissions(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			submitted_at_unixms INTEGER NOT NULL,
			link_count INTEGER NOT NULL,
			links_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_time ON submissions(submitted_at_unixms);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate submissions: %w", err)
		}
	}
	return nil
}

func (l *SubmissionLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Submit records links as a new submission.
func (l *SubmissionLog) Submit(ctx context.Context, links []model.LinkValues) error {
	_, err := l.Record(ctx, links)
	return err
}

// Record stores links and returns the stored submission.
func (l *SubmissionLog) Record(ctx context.Context, links []model.LinkValues) (model.Submission, error) {
	id, err := newRandomID("sub")
	if err != nil {
		return model.Submission{}, err
	}
	if links == nil {
		links = []model.LinkValues{}
	}
	sub := model.Submission{
		ID:          id,
		SubmittedAt: l.now().UTC().Truncate(time.Millisecond),
		Links:       append([]model.LinkValues{}, links...),
	}
	raw, err := json.Marshal(sub.Links)
	if err != nil {
		return model.Submission{}, err
	}
	if _, err := l.db.ExecContext(ctx,
		`INSERT INTO submissions(id, submitted_at_unixms, link_count, links_json) VALUES(?, ?, ?, ?)`,
		sub.ID, sub.SubmittedAt.UnixMilli(), len(sub.Links), string(raw)); err != nil {
		return model.Submission{}, fmt.Errorf("record submission: %w", err)
	}
	return sub, nil
}

// List returns submissions newest first. limit <= 0 means all.
func (l *SubmissionLog) List(ctx context.Context, limit int) ([]model.Submission, error) {
	q := `SELECT id, submitted_at_unixms, links_json FROM submissions ORDER BY submitted_at_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ErrSubmissionNotFound is returned by Get for unknown ids.
var ErrSubmissionNotFound = errors.New("submission not found")

func (l *SubmissionLog) Get(ctx context.Context, id string) (model.Submission, error) {
	row := l.db.QueryRowContext(ctx, `SELECT id, submitted_at_unixms, links_json FROM submissions WHERE id = ?`, strings.TrimSpace(id))
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Submission{}, fmt.Errorf("%w: %s", ErrSubmissionNotFound, id)
	}
	return sub, err
}

func (l *SubmissionLog) Count(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r rowScanner) (model.Submission, error) {
	var (
		sub   model.Submission
		ms    int64
		links string
	)
	if err := r.Scan(&sub.ID, &ms, &links); err != nil {
		return model.Submission{}, err
	}
	sub.SubmittedAt = time.UnixMilli(ms).UTC()
	if err := json.Unmarshal([]byte(links), &sub.Links); err != nil {
		return model.Submission{}, fmt.Errorf("decode submission %s: %w", sub.ID, err)
	}
	return sub, nil
}
