package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledRespectsEnvAndRPCMode(t *testing.T) {
	t.Setenv("ANCHOR_DEBUG", "")
	assert.False(t, Enabled())

	t.Setenv("ANCHOR_DEBUG", "true")
	assert.True(t, Enabled())

	SetRPCMode(true)
	defer SetRPCMode(false)
	assert.False(t, Enabled(), "RPC mode must suppress debug output regardless of env")
}

func TestLogWritesOnlyWhenEnabled(t *testing.T) {
	t.Setenv("ANCHOR_DEBUG", "true")
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Log("TEST", "hello %s", "world")
	assert.Contains(t, buf.String(), "[DEBUG:TEST] hello world")

	buf.Reset()
	t.Setenv("ANCHOR_DEBUG", "")
	Log("TEST", "should not appear")
	assert.Empty(t, buf.String())
}

func TestInitLogFileCreatesFile(t *testing.T) {
	path, err := InitLogFile()
	assert.NoError(t, err)
	defer CloseLogFile()
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
