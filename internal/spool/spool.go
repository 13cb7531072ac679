// Package spool sends files dropped into a directory as framed messages.
//
// Each regular file that appears in (or is rewritten in) the watched
// directory is read whole and sent as one frame once it has been quiet for
// the debounce delay. Files present when the watcher starts are sent first,
// in name order. Hidden files and files ending in ".tmp" are ignored so
// producers can write to a temporary name and rename into place.
//
// A file is sent again only when its size or modification time changes, so
// an event that races the initial scan does not repeat a message.
package spool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/lspwire/pkg/log"
)

// Sender is the part of transport.Transport the watcher needs.
type Sender interface {
	Send(payload []byte) error
}

// Config holds configuration options for the spool watcher.
type Config struct {
	// Dir is the directory to watch.
	Dir string

	// DebounceDelay is how long a file must be quiet before it is sent.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// RemoveSent deletes each file after it has been sent.
	RemoveSent bool
}

// Watcher sends spooled files through a Sender. All sends happen on the
// goroutine running Run, so frames never interleave.
type Watcher struct {
	cfg    Config
	sender Sender
	logger log.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}

	// sent is touched only by the goroutine doing the sends.
	sent map[string]stamp
}

// stamp identifies one version of a file's contents.
type stamp struct {
	modTime time.Time
	size    int64
}

func (s stamp) equal(o stamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// New creates a watcher. The sender is used from a single goroutine.
func New(cfg Config, sender Sender, logger log.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		cfg:     cfg,
		sender:  sender,
		logger:  logger,
		pending: make(map[string]*time.Timer),
		ready:   make(chan string, 64),
		done:    make(chan struct{}),
		sent:    make(map[string]stamp),
	}
}

// SendExisting sends every eligible file already in the directory, in name
// order, and returns the number sent.
func (w *Watcher) SendExisting() (int, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("spool: read dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && eligible(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for i, name := range names {
		if err := w.sendFile(filepath.Join(w.cfg.Dir, name)); err != nil {
			return i, err
		}
	}
	return len(names), nil
}

// Run sends existing files, then watches the directory until ctx is done or
// a send fails. A send failure means the channel is gone and is returned.
// Run may be called only once.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.done)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("spool: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch before the initial scan so nothing written in between is missed.
	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("spool: watch %s: %w", w.cfg.Dir, err)
	}
	defer w.stopTimers()

	n, err := w.SendExisting()
	if err != nil {
		return err
	}
	w.logger.Info("spool watcher started", log.String("dir", w.cfg.Dir), log.Int("existing", n))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !eligible(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounce(event.Name)

		case path := <-w.ready:
			if err := w.sendFile(path); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("spool watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.cfg.DebounceDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) sendFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		// Renamed or removed before it settled.
		return nil
	}
	if err != nil {
		w.logger.Warn("spool: skipping unreadable file", log.String("file", path), log.Err(err))
		return nil
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	st := stamp{modTime: info.ModTime(), size: info.Size()}
	if prev, ok := w.sent[path]; ok && prev.equal(st) {
		w.logger.Debug("spool: skipping unchanged file", log.String("file", path))
		return nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("spool: skipping unreadable file", log.String("file", path), log.Err(err))
		return nil
	}
	if err := w.sender.Send(payload); err != nil {
		return fmt.Errorf("spool: send %s: %w", filepath.Base(path), err)
	}
	w.logger.Debug("spool: sent file", log.String("file", path), log.Int("bytes", len(payload)))

	if !w.cfg.RemoveSent {
		w.sent[path] = st
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.logger.Warn("spool: remove sent file", log.String("file", path), log.Err(err))
	}
	return nil
}

func eligible(name string) bool {
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".tmp")
}
