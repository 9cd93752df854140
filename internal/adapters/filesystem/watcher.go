package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind identifies which state file changed
type ChangeKind int

const (
	ChangeDocument ChangeKind = iota
	ChangeSettings
)

func (k ChangeKind) String() string {
	if k == ChangeSettings {
		return "settings"
	}
	return "document"
}

// Change reports that another process rewrote a state file
type Change struct {
	Kind ChangeKind
	Path string
}

var watchedFiles = map[string]ChangeKind{
	DocumentFile: ChangeDocument,
	SettingsFile: ChangeSettings,
}

// Watch reports external changes to data.json and settings.json until ctx
// is done, then closes the channel. Writes made by this repository are not
// reported. Bursts are coalesced over delay.
func (r *Repository) Watch(ctx context.Context, delay time.Duration) (<-chan Change, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Atomic writes replace the file, so the directory is watched instead.
	if err := fw.Add(r.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.dir, err)
	}

	out := make(chan Change)
	go r.watchLoop(ctx, fw, delay, out)
	return out, nil
}

func (r *Repository) watchLoop(ctx context.Context, fw *fsnotify.Watcher, delay time.Duration, out chan<- Change) {
	defer close(out)
	defer fw.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if _, watched := watchedFiles[name]; !watched || isTempFile(name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending[name] = true
			timer.Reset(delay)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			r.log.Error().Err(err).Msg("fsnotify error")

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			clear(pending)
			sort.Strings(names)

			for _, name := range names {
				if r.ownWrite(name) {
					continue
				}
				r.log.Debug().Str("file", name).Msg("external change")
				select {
				case out <- Change{Kind: watchedFiles[name], Path: r.path(name)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
