package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// File stores all keys in a single JSON document on disk. Every read
// re-parses the file so concurrent processes observe each other's last
// write; there is no merge, last write wins. A corrupt or missing file
// behaves as empty state rather than an error, matching how browser
// storage parse failures are swallowed.
type File struct {
	mu   sync.Mutex
	path string

	watcher *fsnotify.Watcher
	subs    map[int]func()
	nextID  int
	done    chan struct{}
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}
	return &File{path: path, subs: make(map[int]func())}, nil
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.read()
	val, ok := doc[key]
	return val, ok, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.read()
	doc[key] = value
	return f.write(doc)
}

func (f *File) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc := f.read()
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}

// Subscribe registers fn to run whenever the state file changes,
// including writes from other processes. This stands in for the
// cross-tab storage event.
func (f *File) Subscribe(fn func()) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watcher == nil {
		if err := f.startWatcher(); err != nil {
			return nil, err
		}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}, nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher == nil {
		return nil
	}
	close(f.done)
	err := f.watcher.Close()
	f.watcher = nil
	return err
}

// caller holds the lock
func (f *File) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting state watcher: %w", err)
	}
	// Watch the directory rather than the file: the atomic rename in
	// write replaces the inode, which would drop a file-level watch.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching state dir: %w", err)
	}
	f.watcher = watcher
	f.done = make(chan struct{})

	go func() {
		for {
			select {
			case <-f.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(f.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				f.mu.Lock()
				subs := make([]func(), 0, len(f.subs))
				for _, sub := range f.subs {
					subs = append(subs, sub)
				}
				f.mu.Unlock()
				for _, sub := range subs {
					sub()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// caller holds the lock
func (f *File) read() map[string]string {
	doc := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return make(map[string]string)
	}
	return doc
}

// caller holds the lock
func (f *File) write(doc map[string]string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}
	return nil
}
