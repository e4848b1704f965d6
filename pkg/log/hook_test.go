package log

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeBuffer is a thread-safe bytes.Buffer.
// hook.Fire holds a Read Lock (allowing concurrent Fire calls),
// so the underlying writers must be thread-safe.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestEntry(level Level, msg string) *Entry {
	logger := logrus.New()
	entry := logrus.NewEntry(logger)
	entry.Level = level
	entry.Message = msg
	entry.Time = time.Now()
	return entry
}

func newTestHook() (*hook, *safeBuffer, *safeBuffer, *safeBuffer) {
	main := &safeBuffer{}
	critical := &safeBuffer{}
	verbose := &safeBuffer{}

	h := &hook{
		mainWriter:     main,
		criticalWriter: critical,
		verboseWriter:  verbose,
		formatter:      &logrus.TextFormatter{DisableColors: true},
	}
	return h, main, critical, verbose
}

func TestHook_Fire_ErrorGoesToCriticalAndMain(t *testing.T) {
	h, main, critical, verbose := newTestHook()

	err := h.Fire(newTestEntry(ErrorLevel, "upstream failure"))
	require.NoError(t, err)

	assert.Contains(t, main.String(), "upstream failure")
	assert.Contains(t, critical.String(), "upstream failure")
	assert.Empty(t, verbose.String())
}

func TestHook_Fire_InfoGoesToMainOnly(t *testing.T) {
	h, main, critical, verbose := newTestHook()

	err := h.Fire(newTestEntry(InfoLevel, "server started"))
	require.NoError(t, err)

	assert.Contains(t, main.String(), "server started")
	assert.Empty(t, critical.String())
	assert.Empty(t, verbose.String())
}

func TestHook_Fire_DebugGoesToVerboseOnly(t *testing.T) {
	h, main, critical, verbose := newTestHook()

	err := h.Fire(newTestEntry(DebugLevel, "cache refresh detail"))
	require.NoError(t, err)

	// Verbose logs must never leak into the main operational log.
	assert.Empty(t, main.String())
	assert.Empty(t, critical.String())
	assert.Contains(t, verbose.String(), "cache refresh detail")
}

func TestHook_Fire_AfterCloseIsNoop(t *testing.T) {
	h, main, _, _ := newTestHook()

	require.NoError(t, h.Close())
	require.NoError(t, h.Fire(newTestEntry(InfoLevel, "too late")))

	assert.Empty(t, main.String())
}

func TestHook_Levels(t *testing.T) {
	h := &hook{}
	assert.Equal(t, AllLevels, h.Levels())
}
