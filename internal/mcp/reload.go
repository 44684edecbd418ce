package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the reloader waits after the last write.
const reloadDebounce = 500 * time.Millisecond

// Reloader watches the safety config and intent files and rebuilds the
// server's engine when they change. It watches each file's directory, so
// a file created after startup is picked up too.
type Reloader struct {
	watcher *fsnotify.Watcher
	server  *Server
	paths   []string
	targets map[string]bool
	onDone  func(error)
	mu      sync.Mutex
}

// NewReloader creates a file watcher for the given paths. Paths whose
// directory does not exist are skipped.
func NewReloader(server *Server, paths []string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	var watched []string
	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		dir := filepath.Dir(p)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
			}
			dirs[dir] = true
		}
		if !targets[p] {
			targets[p] = true
			watched = append(watched, p)
		}
	}

	return &Reloader{
		watcher: watcher,
		server:  server,
		paths:   watched,
		targets: targets,
	}, nil
}

// Paths returns the files actually being watched.
func (r *Reloader) Paths() []string {
	return r.paths
}

// OnReload registers a callback invoked after every reload attempt.
func (r *Reloader) OnReload(fn func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDone = fn
}

// Run watches for file changes and reloads the engine. Blocks until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !r.targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.server.logger.Warn("file_watcher_error", "error", err)
		}
	}
}

func (r *Reloader) reload() {
	err := r.server.Reload()
	if err != nil {
		r.server.logger.Error("hot_reload_failed", "error", err)
	} else {
		r.server.logger.Info("hot_reload", "config_hash", r.server.ConfigHash())
	}

	r.mu.Lock()
	fn := r.onDone
	r.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
