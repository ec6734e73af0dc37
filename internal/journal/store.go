package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"navicull/internal/catalog"
	"navicull/internal/config"
	"navicull/internal/executor"
)

// Run is one journalled execute-mode run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Mode       string
	MinRating  int
	MaxRating  int
	Deleted    int
	Failed     int
	Skipped    int
}

// Finished reports whether FinishRun was recorded.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Outcome is one recorded plan entry result.
type Outcome struct {
	RunID      string
	AlbumID    string
	Artist     string
	Album      string
	Path       string
	Status     string
	Detail     string
	RecordedAt time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open connects to <state_dir>/journal.db, creating it if needed.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("journal: config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.JournalPath())
}

// OpenPath opens a journal database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a new run and returns it with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, mode string, rng catalog.RatingRange) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: s.now().UTC(),
		Mode:      mode,
		MinRating: rng.Min,
		MaxRating: rng.Max,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, mode, min_rating, max_rating) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		run.Mode,
		run.MinRating,
		run.MaxRating,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordOutcome appends one executor outcome to a run.
func (s *Store) RecordOutcome(ctx context.Context, runID string, outcome executor.Outcome) error {
	detail := ""
	if outcome.Err != nil {
		detail = outcome.Err.Error()
		if outcome.PermissionDenied {
			detail = "permission denied: " + detail
		}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (run_id, album_id, artist, album, path, status, detail, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		outcome.Entry.ID,
		nullableString(outcome.Entry.Artist),
		nullableString(outcome.Entry.Name),
		outcome.Entry.AbsolutePath,
		string(outcome.Status),
		nullableString(detail),
		formatTime(s.now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// FinishRun stores the final tally for a run.
func (s *Store) FinishRun(ctx context.Context, runID string, tally executor.Tally) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, deleted = ?, failed = ?, skipped = ? WHERE id = ?`,
		formatTime(s.now().UTC()),
		tally.Deleted,
		tally.Failed,
		tally.Skipped,
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("finish run %s: not found", runID)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, mode, min_rating, max_rating, deleted, failed, skipped
        FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Mode, &run.MinRating, &run.MaxRating,
			&run.Deleted, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		if finished.Valid {
			run.FinishedAt = parseTime(finished.String)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Outcomes returns the recorded outcomes for a run in insertion order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, album_id, artist, album, path, status, detail, recorded_at
         FROM outcomes WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var (
			out                   Outcome
			artist, album, detail sql.NullString
			recorded              string
		)
		if err := rows.Scan(&out.RunID, &out.AlbumID, &artist, &album, &out.Path, &out.Status, &detail, &recorded); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		out.Artist = artist.String
		out.Album = album.String
		out.Detail = detail.String
		out.RecordedAt = parseTime(recorded)
		outcomes = append(outcomes, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

// timeLayout keeps fractional seconds at fixed width so stored timestamps
// sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
