package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"team-formation/internal/repository"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	collection TEXT    NOT NULL,
	position   INTEGER NOT NULL,
	fields     TEXT    NOT NULL,
	PRIMARY KEY (collection, position)
)`

// Store keeps every collection in one SQLite table. Fields are stored as a
// JSON array per tuple.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlitestore: storage path is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlitestore: create dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitestore: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitestore: create schema: %w", err)
	}
	return &Store{db: db, log: log.Named("sqlitestore")}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) LoadAll(ctx context.Context, c repository.Collection) ([]repository.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fields FROM records WHERE collection = ? ORDER BY position ASC`,
		string(c),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: load %s: %w", c, err)
	}
	defer rows.Close()

	out := make([]repository.Record, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan %s: %w", c, err)
		}
		var fields []string
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("sqlitestore: decode %s: %w", c, err)
		}
		out = append(out, repository.Record(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: load %s: %w", c, err)
	}
	return out, nil
}

func (s *Store) AppendOne(ctx context.Context, c repository.Collection, rec repository.Record) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (collection, position, fields)
		 SELECT ?, COALESCE(MAX(position), 0) + 1, ? FROM records WHERE collection = ?`,
		string(c), raw, string(c),
	)
	if err != nil {
		return fmt.Errorf("sqlitestore: append %s: %w", c, err)
	}
	return nil
}

func (s *Store) ReplaceAll(ctx context.Context, c repository.Collection, recs []repository.Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: begin %s: %w", c, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, string(c)); err != nil {
		return fmt.Errorf("sqlitestore: clear %s: %w", c, err)
	}
	for i, r := range recs {
		raw, encErr := encode(r)
		if encErr != nil {
			err = encErr
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO records (collection, position, fields) VALUES (?, ?, ?)`,
			string(c), i+1, raw,
		); err != nil {
			return fmt.Errorf("sqlitestore: insert %s: %w", c, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: commit %s: %w", c, err)
	}

	s.log.Debug("collection replaced", zap.String("collection", string(c)), zap.Int("records", len(recs)))
	return nil
}

func encode(rec repository.Record) (string, error) {
	fields := []string(rec)
	if fields == nil {
		fields = []string{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("sqlitestore: encode record: %w", err)
	}
	return string(b), nil
}
