package levels

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors produce for one save.
const debounce = 150 * time.Millisecond

// Reload is delivered after the watched directory changed.
type Reload struct {
	Defs []Definition
	Err  error
}

// Watcher reloads a room directory whenever one of its room files changes.
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	Reloads chan Reload
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewWatcher starts watching the loader's root directory.
func NewWatcher(loader *Loader) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(loader.Root); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		loader:  loader,
		watcher: w,
		Reloads: make(chan Reload, 1),
		closeCh: make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes the Reloads channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Reloads)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSupportedExtension(filepath.Ext(event.Name)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.deliver(Reload{Err: err})
		case <-fire:
			fire = nil
			defs, err := w.loader.LoadAll()
			w.deliver(Reload{Defs: defs, Err: err})
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// deliver replaces an undelivered reload with the newer one.
func (w *Watcher) deliver(r Reload) {
	select {
	case w.Reloads <- r:
		return
	default:
	}
	select {
	case <-w.Reloads:
	default:
	}
	select {
	case w.Reloads <- r:
	case <-w.closeCh:
	}
}
