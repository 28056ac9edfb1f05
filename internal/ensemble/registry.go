package ensemble

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/bigo/internal/debug"
)

// Registry owns the loaded model set. Reads are lock-free; a reload
// builds a complete new set off to the side and swaps the pointer, so
// a request never observes a torn mix of old and new models.
type Registry struct {
	current atomic.Pointer[artifactSet]
	dir     string

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRegistry returns a registry preloaded with the compiled-in
// defaults. Callers that have a models directory follow up with
// LoadDir.
func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(defaultSet())
	return r
}

// NewEmptyRegistry returns a registry with no models loaded. Predict
// against it reports unavailable; used when defaults are disabled.
func NewEmptyRegistry() *Registry {
	r := &Registry{}
	r.current.Store(&artifactSet{})
	return r
}

// LoadDir replaces the current set with the artifacts found under dir.
// On error the previous set stays active.
func (r *Registry) LoadDir(dir string) error {
	set, err := LoadDir(dir)
	if err != nil {
		return err
	}
	r.dir = dir
	prev := r.current.Swap(set)
	debug.LogModels("loaded %d models from %s (fingerprint %016x, was %016x)",
		len(set.models), dir, set.fingerprint, prev.fingerprint)
	return nil
}

// Size reports how many models are currently loaded.
func (r *Registry) Size() int {
	return len(r.current.Load().models)
}

// ModelIDs lists the loaded model IDs in sorted order.
func (r *Registry) ModelIDs() []string {
	set := r.current.Load()
	ids := make([]string, len(set.models))
	for i, m := range set.models {
		ids[i] = m.ID()
	}
	return ids
}

// Fingerprint identifies the loaded artifact bytes; zero for the
// compiled-in defaults and the empty set.
func (r *Registry) Fingerprint() uint64 {
	return r.current.Load().fingerprint
}

// Watch reloads the registry when artifact files change under the
// loaded directory. Events are debounced so a multi-file deploy
// triggers one reload. Runs until ctx is done or Close is called.
func (r *Registry) Watch(ctx context.Context, debounce time.Duration) error {
	if r.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	r.watcher = watcher
	r.cancel = cancel

	r.wg.Add(1)
	go r.watchLoop(ctx, debounce)
	return nil
}

func (r *Registry) watchLoop(ctx context.Context, debounce time.Duration) {
	defer r.wg.Done()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(debounce)
			pending = true

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			debug.LogModels("watch error: %v", err)

		case <-timer.C:
			pending = false
			r.reload()
		}
	}
}

// reload rebuilds the set from disk, skipping the swap when the
// fingerprint is unchanged or the new set fails to load.
func (r *Registry) reload() {
	set, err := LoadDir(r.dir)
	if err != nil {
		debug.LogModels("reload of %s failed, keeping previous set: %v", r.dir, err)
		return
	}
	if set.fingerprint == r.current.Load().fingerprint {
		return
	}
	r.current.Store(set)
	debug.LogModels("reloaded %d models from %s (fingerprint %016x)",
		len(set.models), r.dir, set.fingerprint)
}

// Close stops the watcher, if one is running.
func (r *Registry) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	var err error
	if r.watcher != nil {
		err = r.watcher.Close()
	}
	r.wg.Wait()
	return err
}
