package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"estate-agent-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu     sync.Mutex
	tags   []string
	posts  []map[string]interface{}
	err    error
	closed bool
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, map[string]interface{}(message.(port.Fields)))
	return f.err
}

func (f *fakePoster) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	logger.WithFields(port.Fields{"use_case": "AddToFavourites"}).Info("Use case started", port.Fields{"listing_id": 3})
	logger.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "Use case started", record["msg"])
	assert.Equal(t, "AddToFavourites", record["use_case"])
	assert.Equal(t, float64(3), record["listing_id"])
}

func TestSlogAdapter_TextIncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.Error("write failed", errors.New("disk full"), port.Fields{"key": "favourites"})

	out := buf.String()
	assert.Contains(t, out, "write failed")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "key=favourites")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFluentLoggerAdapter(t *testing.T) {
	poster := &fakePoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	require.NoError(t, err)

	child := adapter.WithFields(port.Fields{"trace_id": "abc"})
	child.Debug("skipped", nil)
	child.Warn("slow write", port.Fields{"ms": 120})
	child.Error("failed", errors.New("boom"), nil)

	require.Equal(t, []string{"warn", "error"}, poster.tags)
	assert.Equal(t, "abc", poster.posts[0]["trace_id"])
	assert.Equal(t, "slow write", poster.posts[0]["message"])
	assert.Equal(t, "boom", poster.posts[1]["error"])

	// поля дочернего логгера не попадают в родителя
	adapter.Info("plain", nil)
	_, has := poster.posts[2]["trace_id"]
	assert.False(t, has)

	require.NoError(t, adapter.Close())
	assert.True(t, poster.closed)
}

func TestFluentLoggerAdapter_CountsDropped(t *testing.T) {
	poster := &fakePoster{err: errors.New("connection refused")}
	adapter, err := NewFluentLoggerAdapter(poster, nil)
	require.NoError(t, err)

	adapter.Info("one", nil)
	adapter.WithFields(port.Fields{"a": 1}).Info("two", nil)

	assert.Equal(t, int64(2), adapter.Dropped())
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	_, err := NewMultiLoggerAdapter()
	assert.Error(t, err)
	_, err = NewMultiLoggerAdapter(nil, nil)
	assert.Error(t, err)

	first, second := &fakePoster{}, &fakePoster{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelWarn)

	single, err := NewMultiLoggerAdapter(a, nil)
	require.NoError(t, err)
	assert.Same(t, a, single)

	multi, err := NewMultiLoggerAdapter(a, b)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"component": "test"}).Info("hello", nil)
	multi.Warn("careful", nil)

	assert.Len(t, first.posts, 2)
	assert.Len(t, second.posts, 1)
	assert.Equal(t, "test", first.posts[0]["component"])
}
