// Package localfs reads job documents from a directory tree:
//
//	<Dir>/jobs-index.json         aggregated lightweight index
//	<Dir>/job_<id>.json           one full document per job
//	<RawDir>/raw_job_<id>.json    scraped raw content
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
)

const (
	DefaultIndexFile = "jobs-index.json"

	recordPrefix = "job_"
	rawPrefix    = "raw_job_"
	jsonSuffix   = ".json"
)

// Config locates the data directories
type Config struct {
	Dir       string
	IndexFile string // relative to Dir unless absolute
	RawDir    string // empty disables raw content
}

// Source implements job.Source over the local filesystem
type Source struct {
	dir       string
	indexPath string
	rawDir    string
}

var _ job.Source = (*Source)(nil)

// NewSource builds a Source. The directory is not checked here: a missing
// directory is reported by the first load.
func NewSource(cfg Config) (*Source, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("localfs: data directory is required")
	}

	index := cfg.IndexFile
	if index == "" {
		index = DefaultIndexFile
	}
	if !filepath.IsAbs(index) {
		index = filepath.Join(cfg.Dir, index)
	}

	return &Source{
		dir:       filepath.Clean(cfg.Dir),
		indexPath: index,
		rawDir:    cfg.RawDir,
	}, nil
}

func (s *Source) Name() string {
	return "localfs:" + s.dir
}

func (s *Source) ReadIndex(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, job.ErrIndexNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return b, nil
}

// ListRecords returns job_*.json file names in lexical order
func (s *Source) ListRecords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, jsonSuffix) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Source) ReadRecord(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !safeName(name) {
		return nil, fmt.Errorf("read record %q: invalid name", name)
	}
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return b, nil
}

func (s *Source) ReadDetail(ctx context.Context, id string) ([]byte, error) {
	return s.readByID(ctx, s.dir, recordPrefix, id)
}

func (s *Source) ReadRaw(ctx context.Context, id string) ([]byte, error) {
	if s.rawDir == "" {
		return nil, job.ErrNotFound
	}
	return s.readByID(ctx, s.rawDir, rawPrefix, id)
}

// WriteIndex replaces the aggregated index atomically
func (s *Source) WriteIndex(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.indexPath), ".jobs-index-*.json")
	if err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.indexPath); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func (s *Source) readByID(ctx context.Context, dir, prefix, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !safeName(id) {
		return nil, job.ErrNotFound
	}

	b, err := os.ReadFile(filepath.Join(dir, prefix+id+jsonSuffix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, job.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s%s: %w", prefix, id, err)
	}
	return b, nil
}

// safeName rejects anything that could leave the directory
func safeName(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}
