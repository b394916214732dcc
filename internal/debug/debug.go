// Package debug provides gated verbose logging that stays silent unless
// ANCHOR_DEBUG is set, and is always silent while the RPC server owns stdio.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RPCMode tracks whether we're currently serving JSON-RPC over stdio (set by main).
var RPCMode = false

var (
	debugMutex sync.Mutex
	debugOut   io.Writer
	debugFile  *os.File
)

// SetRPCMode suppresses all debug output while the RPC server owns stdio.
func SetRPCMode(enabled bool) {
	RPCMode = enabled
}

// SetOutput sets a custom writer for debug output. Pass nil to disable it.
func SetOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOut = w
}

// InitLogFile opens a timestamped debug log file under the OS temp dir and
// routes debug output there. Returns the log path.
func InitLogFile() (string, error) {
	debugMutex.Lock()
	defer debugMutex.Unlock()

	logDir := filepath.Join(os.TempDir(), "anchor-debug-logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", fmt.Errorf("create debug log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", time.Now().Format("2006-01-02T150405")))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("create debug log file: %w", err)
	}

	debugFile = file
	debugOut = file
	return logPath, nil
}

// CloseLogFile closes the debug log file if one is open.
func CloseLogFile() error {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	if debugFile == nil {
		return nil
	}
	err := debugFile.Close()
	debugFile = nil
	debugOut = nil
	return err
}

// Enabled reports whether verbose debug output should be produced.
func Enabled() bool {
	if RPCMode {
		return false
	}
	v := os.Getenv("ANCHOR_DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	return debugOut
}

// Log writes a component-tagged debug line, a no-op unless Enabled().
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format, append([]interface{}{component}, args...)...)
}

// LogBuild logs a builder/extraction event.
func LogBuild(format string, args ...interface{}) { Log("BUILD", format, args...) }

// LogWatch logs a watcher event.
func LogWatch(format string, args ...interface{}) { Log("WATCH", format, args...) }

// LogRPC logs an RPC dispatch event.
func LogRPC(format string, args ...interface{}) { Log("RPC", format, args...) }
