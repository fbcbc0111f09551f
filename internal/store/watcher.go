package store

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher observes the recordings directory and signals when its contents
// change, so connected UIs can re-query the listing instead of polling.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
	log    zerolog.Logger
}

func NewWatcher(dir string, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		fsw:    fsw,
		events: make(chan struct{}, 1),
		log:    log,
	}, nil
}

// Events delivers at most one pending change signal; bursts coalesce.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if !hasVideoExtension(event.Name) {
				continue
			}

			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("recordings watcher error")
		}
	}
}
