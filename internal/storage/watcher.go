package storage

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cwarden/planer/internal/logger"
)

// FileChangeEvent reports that the watched store file changed on disk.
type FileChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches a single store file. It watches the parent directory
// because atomic saves replace the file, which drops a watch on the file
// itself.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	events   chan FileChangeEvent
	done     chan struct{}
	once     sync.Once
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		path:     absPath,
		debounce: 100 * time.Millisecond,
		events:   make(chan FileChangeEvent, 1),
		done:     make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

// Events delivers one event per burst of changes. Events are dropped
// rather than queued when the reader falls behind.
func (fw *FileWatcher) Events() <-chan FileChangeEvent {
	return fw.events
}

func (fw *FileWatcher) watch() {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce rapid events
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(fw.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			select {
			case fw.events <- FileChangeEvent{Path: fw.path, Timestamp: time.Now()}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "path", fw.path, "err", err)

		case <-fw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
