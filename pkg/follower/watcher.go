package follower

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher watches the directory holding a followed file, so that the file
// can be recreated or rotated without losing the watch.
type watcher struct {
	*fsnotify.Watcher
	name string
}

func newWatcher(path string) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	return &watcher{Watcher: w, name: abs}, nil
}

// concerns reports whether the event is about the followed file.
func (w *watcher) concerns(event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.name
}
