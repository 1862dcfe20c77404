package kvstore

import (
	"context"
	"errors"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore хранит каждое значение в отдельном файле <dir>/<key>.json.
// Запись идет через временный файл и rename, чтобы при сбое не остался обрезанный документ.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore создает каталог, если его еще нет.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("favourites directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create favourites directory '%s': %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Read(ctx context.Context, key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key '%s': %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Write(ctx context.Context, key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for key '%s': %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после успешного rename файла уже нет

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync key '%s': %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for key '%s': %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace key '%s': %w", key, err)
	}

	contextkeys.LoggerFromContext(ctx).Debug("Key written to file", port.Fields{
		"component": "FileStore",
		"key":       key,
		"path":      path,
		"bytes":     len(value),
	})
	return nil
}

// pathFor не дает ключу выйти за пределы каталога.
func (s *FileStore) pathFor(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
