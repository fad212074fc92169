package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPIDFile(t *testing.T) *PIDFile {
	return &PIDFile{path: filepath.Join(t.TempDir(), PIDFileName)}
}

func TestPIDFileWriteRead(t *testing.T) {
	p := tempPIDFile(t)

	require.NoError(t, p.Write())
	assert.True(t, p.Exists())

	pid, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestPIDFileReadMissing(t *testing.T) {
	p := tempPIDFile(t)

	_, err := p.Read()
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.False(t, p.Exists())
}

func TestPIDFileReadGarbage(t *testing.T) {
	p := tempPIDFile(t)
	require.NoError(t, os.WriteFile(p.path, []byte("not a pid"), 0644))

	_, err := p.Read()
	assert.Error(t, err)
}

func TestPIDFileRemove(t *testing.T) {
	p := tempPIDFile(t)

	require.NoError(t, p.Write())
	require.NoError(t, p.Remove())
	assert.False(t, p.Exists())

	// Removing an absent file is not an error.
	assert.NoError(t, p.Remove())
}

func TestPIDFileIsRunning(t *testing.T) {
	p := tempPIDFile(t)
	assert.False(t, p.IsRunning())

	// Our own PID is definitionally running.
	require.NoError(t, p.Write())
	assert.True(t, p.IsRunning())
	assert.Equal(t, os.Getpid(), p.GetRunningPID())

	// A stale file pointing at a dead PID reads as not running.
	require.NoError(t, p.WritePID(99999999))
	assert.False(t, p.IsRunning())
	assert.Zero(t, p.GetRunningPID())
}

func TestIsProcessRunning(t *testing.T) {
	assert.True(t, IsProcessRunning(os.Getpid()))
	assert.False(t, IsProcessRunning(0))
	assert.False(t, IsProcessRunning(-1))
}
