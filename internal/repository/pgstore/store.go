package pgstore

import (
	"context"
	"fmt"

	"team-formation/internal/database"
	"team-formation/internal/repository"

	"go.uber.org/zap"
)

// Store keeps every collection in the records table, one row per tuple,
// ordered by position. ReplaceAll swaps a collection inside one transaction.
type Store struct {
	db  database.DB
	log *zap.Logger
}

func New(db database.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log.Named("pgstore")}
}

func (s *Store) LoadAll(ctx context.Context, c repository.Collection) ([]repository.Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT fields FROM records WHERE collection = $1 ORDER BY position ASC`,
		string(c),
	)
	if err != nil {
		return nil, fmt.Errorf("pgstore: load %s: %w", c, err)
	}
	defer rows.Close()

	out := make([]repository.Record, 0)
	for rows.Next() {
		var fields []string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("pgstore: scan %s: %w", c, err)
		}
		out = append(out, repository.Record(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: load %s: %w", c, err)
	}
	return out, nil
}

func (s *Store) AppendOne(ctx context.Context, c repository.Collection, rec repository.Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO records (collection, position, fields)
		 SELECT $1, COALESCE(MAX(position), 0) + 1, $2 FROM records WHERE collection = $1`,
		string(c), []string(rec),
	)
	if err != nil {
		return fmt.Errorf("pgstore: append %s: %w", c, err)
	}
	return nil
}

func (s *Store) ReplaceAll(ctx context.Context, c repository.Collection, recs []repository.Record) error {
	err := database.WithTx(ctx, s.db, func(q database.Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM records WHERE collection = $1`, string(c)); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		for i, r := range recs {
			if _, err := q.Exec(ctx,
				`INSERT INTO records (collection, position, fields) VALUES ($1, $2, $3)`,
				string(c), i+1, []string(r),
			); err != nil {
				return fmt.Errorf("insert: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pgstore: replace %s: %w", c, err)
	}

	s.log.Debug("collection replaced", zap.String("collection", string(c)), zap.Int("records", len(recs)))
	return nil
}
