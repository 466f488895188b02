package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// JSONStore keeps every bucket as one flat JSON file in a directory,
// the way the original bot kept xp_data.json and friends. The whole
// bucket is rewritten on every Put, temp file then rename, so a crash
// mid-write never leaves a truncated file behind
type JSONStore struct {
	dir string

	mu      sync.Mutex
	buckets map[string]map[string]string
}

func OpenJSON(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory %s: %w", dir, err)
	}
	return &JSONStore{dir: dir, buckets: map[string]map[string]string{}}, nil
}

func (s *JSONStore) Get(ctx context.Context, bucket, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load(bucket)
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

func (s *JSONStore) Put(ctx context.Context, bucket, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load(bucket)
	if err != nil {
		return err
	}
	data[key] = value
	return s.flush(bucket, data)
}

func (s *JSONStore) Delete(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load(bucket)
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.flush(bucket, data)
}

func (s *JSONStore) List(ctx context.Context, bucket string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load(bucket)
	if err != nil {
		return nil, err
	}
	copied := make(map[string]string, len(data))
	for key, value := range data {
		copied[key] = value
	}
	return copied, nil
}

func (s *JSONStore) Close() error {
	return nil
}

// Backup writes a dated snapshot of every bucket into a single file,
// like the original daily backup.json
func (s *JSONStore) Backup(ctx context.Context, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := map[string]struct{}{}
	for name := range s.buckets {
		names[name] = struct{}{}
	}
	// Bucket files from previous runs count too, loaded or not
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("could not scan data directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) == ".json" && !strings.HasPrefix(name, "backup-") {
			names[strings.TrimSuffix(name, ".json")] = struct{}{}
		}
	}

	snapshot := make(map[string]map[string]string, len(names))
	for name := range names {
		data, err := s.load(name)
		if err != nil {
			return "", err
		}
		snapshot[name] = data
	}

	path := filepath.Join(s.dir, fmt.Sprintf("backup-%s.json", now.UTC().Format("2006-01-02")))
	if err := writeFileAtomic(path, snapshot); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Msg("Backup written")
	return path, nil
}

// load returns the in-memory bucket, reading its file on first access.
// A missing file is an empty bucket, not an error
func (s *JSONStore) load(bucket string) (map[string]string, error) {
	if data, ok := s.buckets[bucket]; ok {
		return data, nil
	}
	data := map[string]string{}
	raw, err := os.ReadFile(s.path(bucket))
	if err == nil {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("bucket file %s is corrupt: %w", s.path(bucket), err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read bucket file %s: %w", s.path(bucket), err)
	}
	s.buckets[bucket] = data
	return data, nil
}

func (s *JSONStore) flush(bucket string, data map[string]string) error {
	return writeFileAtomic(s.path(bucket), data)
}

func (s *JSONStore) path(bucket string) string {
	return filepath.Join(s.dir, bucket+".json")
}

func writeFileAtomic(path string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace %s: %w", path, err)
	}
	return nil
}
