package config

import (
	"path/filepath"
	"sync"

	"github.com/bloeys/nscene/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher reloads a config file whenever it changes on disk.
//
// Reloads run on a background goroutine and are handed to the frame loop through Changes(),
// which only ever holds the latest valid config.
type Watcher struct {
	path string

	fsWatcher *fsnotify.Watcher
	changes   chan Config
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewWatcher(path string) (*Watcher, error) {

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get absolute path of config '%s'", path)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	// Watch the directory not the file, because many editors save by replacing the file
	err = fsWatcher.Add(filepath.Dir(absPath))
	if err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of config '%s'", path)
	}

	w := &Watcher{
		path:      absPath,
		fsWatcher: fsWatcher,
		changes:   make(chan Config, 1),
		done:      make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Changes returns the channel new configs are sent on. Read it without blocking, e.g. once per frame
func (w *Watcher) Changes() <-chan Config {
	return w.changes
}

func (w *Watcher) run() {

	defer w.wg.Done()

	for {
		select {

		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				logging.WarnLog.Printf("Ignoring config change. Err: %v\n", err)
				continue
			}

			logging.InfoLog.Printf("Reloaded config '%s'\n", w.path)
			w.publish(cfg)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.WarnLog.Printf("Config watcher error: %v\n", err)
		}
	}
}

// publish replaces any config the frame loop hasn't picked up yet
func (w *Watcher) publish(cfg Config) {

	select {
	case <-w.changes:
	default:
	}

	select {
	case w.changes <- cfg:
	default:
	}
}

func (w *Watcher) Close() error {

	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})

	return err
}
