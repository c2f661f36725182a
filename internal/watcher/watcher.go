// internal/watcher/watcher.go

// Package watcher refreshes connected pages when served files change on
// disk. Edits tend to arrive in bursts (editors write temp files, build
// tools emit whole trees), so events are debounced and a broadcast only
// goes out when the aggregate content version actually moved.
package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"appshell/internal/site"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// Notifier receives the new content version after a settled change.
type Notifier interface {
	BroadcastSiteUpdated(version string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(version string)

func (f NotifierFunc) BroadcastSiteUpdated(version string) { f(version) }

// Watcher follows the served tree of a site store and pushes version
// changes to a notifier.
type Watcher struct {
	store  *site.Store
	notify Notifier
	fsw    *fsnotify.Watcher
	bounce func(func())

	mu   sync.Mutex
	last string

	closeOnce sync.Once
	closed    chan struct{}
}

// New starts watching the store's served root. quiet is how long the
// tree must stay still before a change is announced; zero picks a
// default suited to hand editing.
func New(store *site.Store, notify Notifier, quiet time.Duration) (*Watcher, error) {
	if quiet <= 0 {
		quiet = 400 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		store:  store,
		notify: notify,
		fsw:    fsw,
		bounce: debounce.New(quiet),
		closed: make(chan struct{}),
	}

	// Baseline version so an unchanged tree never broadcasts.
	if v, err := store.Version(context.Background()); err == nil {
		w.last = v
	}

	if err := w.addTree(store.RootAbs()); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()

	log.Printf("WATCH: watching %s", store.RootAbs())
	return w, nil
}

// addTree registers the directory and every visible subdirectory.
// fsnotify watches are not recursive, so new directories get added again
// from the event loop as they appear.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.closed:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Printf("WATCH: add %s: %v", event.Name, err)
					}
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.bounce(w.emit)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("WATCH: error: %v", err)
		}
	}
}

// emit rehashes the tree once a burst has settled and broadcasts when the
// version moved. Rewrites that end up byte-identical stay silent.
func (w *Watcher) emit() {
	select {
	case <-w.closed:
		return
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	v, err := w.store.Version(ctx)
	if err != nil {
		log.Printf("WATCH: version: %v", err)
		return
	}

	w.mu.Lock()
	if v == w.last {
		w.mu.Unlock()
		return
	}
	w.last = v
	w.mu.Unlock()

	log.Printf("WATCH: site changed, version %s", v)
	w.notify.BroadcastSiteUpdated(v)
}

// Close stops the event loop and releases the OS watches.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closed)
		w.fsw.Close()
	})
}
