// Package watcher subscribes to filesystem events under a project root and
// drives the builder's single-file incremental rebuild under the graph's
// writer lock, coalescing bursts of events per path within a debounce
// window.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"github.com/standardbeagle/anchor/internal/builder"
	"github.com/standardbeagle/anchor/internal/debug"
	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/langregistry"
)

// Watcher coalesces fsnotify events and applies them to a graph through a
// Builder's incremental rebuild path.
type Watcher struct {
	root    string
	b       *builder.Builder
	g       *graph.Graph
	debounce time.Duration

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	flushSem *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a Watcher. Call Start to begin subscribing and applying
// changes; Stop to shut it down.
func New(root string, b *builder.Builder, g *graph.Graph, debounceMs int) *Watcher {
	if debounceMs <= 0 {
		debounceMs = 300
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		root:     root,
		b:        b,
		g:        g,
		debounce: time.Duration(debounceMs) * time.Millisecond,
		pending:  make(map[string]bool),
		flushSem: semaphore.NewWeighted(int64(runtime.NumCPU())),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start subscribes to filesystem events under the root, recursively. A
// failure to start is logged and treated as non-fatal: callers continue
// with a static graph.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		debug.LogWatch("failed to create fsnotify watcher: %v", err)
		return err
	}
	w.fsw = fsw

	if err := w.addDirsRecursive(w.root); err != nil {
		debug.LogWatch("failed to add watches under %s: %v", w.root, err)
		fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop cancels the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.cancel()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if info.Name() != "." && len(info.Name()) > 0 && info.Name()[0] == '.' && path != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.LogWatch("fsnotify error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create) != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fsw.Add(event.Name)
			return
		}
	}
	if !langregistry.Supported(event.Name) {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	w.pending[rel] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
	w.mu.Unlock()
}

// flush applies every pending path's rebuild, one goroutine per path capped
// at NumCPU concurrent rebuilds by flushSem. Each rebuild takes the graph's
// own writer lock only for its mutation, never across the file-read/parse
// I/O, so fanning out here is safe the same way the builder's full-build
// worker pool is.
func (w *Watcher) flush() {
	w.mu.Lock()
	paths := w.pending
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	var rebuildWg sync.WaitGroup
	for path := range paths {
		path := path
		if err := w.flushSem.Acquire(w.ctx, 1); err != nil {
			break
		}
		rebuildWg.Add(1)
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			defer rebuildWg.Done()
			defer w.flushSem.Release(1)

			debug.LogWatch("rebuilding %s", path)
			if _, err := os.Stat(filepath.Join(w.root, path)); err != nil {
				w.g.RemoveFile(path)
				return
			}
			w.b.RebuildFile(w.ctx, w.g, path)
		}()
	}
	rebuildWg.Wait()
}
