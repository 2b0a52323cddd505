package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a settings file whenever it changes on disk. Reloaded settings are sent on
// Updates; files that fail to load or validate are reported on Errors and the previous settings
// stay in effect.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	Updates chan Settings
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// debounce is how long the file has to stay unchanged before it is reloaded.
const debounce = 100 * time.Millisecond

// NewWatcher starts watching the settings file at path. The parent directory is watched so that
// editors which replace the file on save are handled.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Updates: make(chan Settings, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.path {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			s, err := Load(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&s, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) send(s *Settings, err error) {
	if s != nil {
		select {
		case w.Updates <- *s:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
