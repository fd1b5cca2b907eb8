package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"team-formation/internal/repository"

	"go.uber.org/zap"
)

const (
	fieldSep   = "|"
	filePrefix = "data_"
	fileSuffix = ".txt"
)

// Store keeps each collection in one line-oriented file under Dir. Every
// write produces a complete replacement file that is renamed into place.
type Store struct {
	dir string
	log *zap.Logger

	mu sync.Mutex
}

func New(dir string, log *zap.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("filestore: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create data dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log.Named("filestore")}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(c repository.Collection) string {
	return filepath.Join(s.dir, filePrefix+string(c)+fileSuffix)
}

func (s *Store) LoadAll(ctx context.Context, c repository.Collection) ([]repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, fmt.Errorf("filestore: unknown collection %q", c)
	}
	return s.read(c)
}

func (s *Store) AppendOne(ctx context.Context, c repository.Collection, rec repository.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("filestore: unknown collection %q", c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.read(c)
	if err != nil {
		return err
	}
	return s.write(c, append(recs, rec))
}

func (s *Store) ReplaceAll(ctx context.Context, c repository.Collection, recs []repository.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("filestore: unknown collection %q", c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(c, recs)
}

func (s *Store) read(c repository.Collection) ([]repository.Record, error) {
	f, err := os.Open(s.Path(c))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []repository.Record{}, nil
		}
		return nil, fmt.Errorf("filestore: open %s: %w", c, err)
	}
	defer f.Close()

	out := make([]repository.Record, 0)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, repository.Record(strings.Split(line, fieldSep)))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", c, err)
	}
	return out, nil
}

// write stages the collection in a temp file in the same directory, syncs it
// and renames it over the live file.
func (s *Store) write(c repository.Collection, recs []repository.Record) (err error) {
	for i, r := range recs {
		for _, f := range r {
			if strings.ContainsAny(f, fieldSep+"\n\r") {
				return fmt.Errorf("filestore: %s record %d: field %q contains a separator", c, i, f)
			}
		}
	}

	tmp, err := os.CreateTemp(s.dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: stage %s: %w", c, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, r := range recs {
		if _, err = w.WriteString(strings.Join(r, fieldSep) + "\n"); err != nil {
			return fmt.Errorf("filestore: write %s: %w", c, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("filestore: flush %s: %w", c, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("filestore: sync %s: %w", c, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close %s: %w", c, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(c)); err != nil {
		return fmt.Errorf("filestore: swap %s: %w", c, err)
	}

	s.log.Debug("collection written", zap.String("collection", string(c)), zap.Int("records", len(recs)))
	return nil
}
