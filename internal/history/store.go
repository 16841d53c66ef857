package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("run not found")

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin records a new running entry for videoPath.
func (s *Store) Begin(ctx context.Context, videoPath string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		VideoPath: strings.TrimSpace(videoPath),
		Status:    StatusRunning,
		StartedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, video_path, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.VideoPath,
		run.Status,
		run.StartedAt.Format(timestampLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Complete marks run as completed and persists its outputs.
func (s *Store) Complete(ctx context.Context, run *Run) error {
	return s.finish(ctx, run, StatusCompleted, "", "")
}

// Halt marks run as stopped early for a non-error condition.
func (s *Store) Halt(ctx context.Context, run *Run, reason, message string) error {
	return s.finish(ctx, run, StatusHalted, reason, message)
}

// Fail marks run as failed.
func (s *Store) Fail(ctx context.Context, run *Run, reason, message string) error {
	return s.finish(ctx, run, StatusFailed, reason, message)
}

func (s *Store) finish(ctx context.Context, run *Run, status Status, reason, message string) error {
	if run == nil || run.ID == "" {
		return errors.New("finish run: missing run id")
	}
	finished := s.now().UTC()
	run.Status = status
	run.FailureReason = strings.TrimSpace(reason)
	run.Message = strings.TrimSpace(message)
	run.FinishedAt = &finished

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET
            audio_path = ?, transcript_path = ?, subtitle_path = ?,
            status = ?, failure_reason = ?, message = ?,
            segment_count = ?, language = ?, media_seconds = ?, finished_at = ?
        WHERE id = ?`,
		nullableString(run.AudioPath),
		nullableString(run.TranscriptPath),
		nullableString(run.SubtitlePath),
		run.Status,
		nullableString(run.FailureReason),
		nullableString(run.Message),
		run.SegmentCount,
		nullableString(run.Language),
		run.MediaSeconds,
		nullableTime(run.FinishedAt),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", run.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

const runColumns = `id, video_path, audio_path, transcript_path, subtitle_path,
    status, failure_reason, message, segment_count, language, media_seconds,
    started_at, finished_at`

// Get fetches a run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// List returns the most recent runs first. A non-positive limit returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
