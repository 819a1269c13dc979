// Package store keeps an audit log of translation attempts in SQLite.
//
// Only metadata is kept: the clinical text is reduced to a digest and a
// length, and stored rows are never used to answer a translation request.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/medtran/internal"
)

// maxDetailRunes bounds the stored diagnostic text; remote error bodies can
// quote the submitted text back.
const maxDetailRunes = 500

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_attempts (
		id TEXT PRIMARY KEY,
		service TEXT NOT NULL,
		model TEXT,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		kind TEXT NOT NULL,
		status_code INTEGER,
		detail TEXT,
		text_digest TEXT NOT NULL,
		text_runes INTEGER NOT NULL,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_created ON translation_attempts(created_at);
	CREATE INDEX IF NOT EXISTS idx_attempts_kind ON translation_attempts(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Attempt is one row of translation_attempts.
type Attempt struct {
	ID         string
	Service    string
	Model      string
	SourceLang string
	TargetLang string
	Kind       string
	StatusCode int
	Detail     string
	TextDigest string
	TextRunes  int
	LatencyMs  int64
	CreatedAt  time.Time
}

// Result is the part of an attempt known once the service has answered.
type Result struct {
	Service    string
	Model      string
	Kind       string
	StatusCode int
	Detail     string
	Latency    time.Duration
}

// NewAttempt derives the row for req; the source text itself is dropped.
func NewAttempt(req internal.TranslationRequest, res Result) Attempt {
	createdAt := req.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return Attempt{
		ID:         req.ID,
		Service:    res.Service,
		Model:      res.Model,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Kind:       res.Kind,
		StatusCode: res.StatusCode,
		Detail:     truncate(res.Detail, maxDetailRunes),
		TextDigest: Digest(req.SourceText),
		TextRunes:  len([]rune(normalizeText(req.SourceText))),
		LatencyMs:  res.Latency.Milliseconds(),
		CreatedAt:  createdAt,
	}
}

func (s *Store) SaveAttempt(ctx context.Context, a Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_attempts (id, service, model, source_lang, target_lang, kind, status_code, detail, text_digest, text_runes, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Service, a.Model, a.SourceLang, a.TargetLang, a.Kind, a.StatusCode, a.Detail, a.TextDigest, a.TextRunes, a.LatencyMs, a.CreatedAt)
	return err
}

// ListAttempts returns the most recent attempts first. limit ≤ 0 means all.
func (s *Store) ListAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	query := `SELECT id, service, model, source_lang, target_lang, kind, status_code, detail, text_digest, text_runes, latency_ms, created_at
		FROM translation_attempts ORDER BY created_at DESC, id`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var model, detail sql.NullString
		var status, latency sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Service, &model, &a.SourceLang, &a.TargetLang, &a.Kind, &status, &detail, &a.TextDigest, &a.TextRunes, &latency, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Model = model.String
		a.Detail = detail.String
		a.StatusCode = int(status.Int64)
		a.LatencyMs = latency.Int64
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// Stats summarises the attempt log.
type Stats struct {
	Total        int
	ByKind       map[string]int
	AvgLatencyMs float64
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByKind: make(map[string]int)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(latency_ms), 0) FROM translation_attempts`).Scan(&stats.Total, &stats.AvgLatencyMs)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM translation_attempts GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats.ByKind[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ClearAttempts removes all rows and returns how many were deleted.
func (s *Store) ClearAttempts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_attempts`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Digest fingerprints text so repeated submissions can be correlated without
// keeping the text. Equivalent Unicode forms and surrounding whitespace
// produce the same digest.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(normalizeText(text)))
	return hex.EncodeToString(sum[:])
}

// normalizeText trims whitespace and applies Unicode NFC normalization.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

func truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}
