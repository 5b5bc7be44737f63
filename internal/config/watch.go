package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher signals when the config file changes on disk. Changes coalesce:
// a pending signal absorbs later ones until it is drained.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	log     *zap.Logger
}

// Watch observes the directory holding path so that editors replacing the
// file by rename are still seen.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w := &Watcher{
		path:    abs,
		fs:      fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("config changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher", zap.Error(err))
		}
	}
}

// Changed reports, without blocking, whether the file changed since the last call.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
