package debuglog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWritesToConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	prev := slog.Default()

	c, err := Open(dir)
	require.NoError(t, err)
	slog.Warn("plan failed", "cell", "1001")
	require.NoError(t, c.Close())

	assert.Same(t, prev, slog.Default())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "plan failed")
	assert.Contains(t, string(data), "cell=1001")
}

func TestOpenEmptyDirDiscards(t *testing.T) {
	prev := slog.Default()
	c, err := Open("")
	require.NoError(t, err)
	assert.NotSame(t, prev, slog.Default())
	require.NoError(t, c.Close())
	assert.Same(t, prev, slog.Default())
}
