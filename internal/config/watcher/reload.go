package watcher

import (
	"github.com/dshills/autoreplace/internal/config"
	"github.com/dshills/autoreplace/internal/rule"
)

// ReloadFunc is told the outcome of each reload attempt.
type ReloadFunc func(count int, err error)

// Reloader keeps a rule store in sync with a rules file.
type Reloader struct {
	path    string
	store   *rule.Store
	watcher *Watcher
	hook    ReloadFunc
}

// NewReloader watches path and swaps store's rules whenever the file is
// written or recreated. A file that fails to parse leaves the store as it
// is; a removed file is ignored until it comes back.
func NewReloader(path string, store *rule.Store, hook ReloadFunc, opts ...Option) (*Reloader, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Close()
		return nil, err
	}

	r := &Reloader{
		path:    path,
		store:   store,
		watcher: w,
		hook:    hook,
	}
	w.OnChange(r.handle)
	w.Start()
	return r, nil
}

// Reload reads the rules file now.
func (r *Reloader) Reload() (int, error) {
	rules, err := config.Read(r.path)
	if err != nil {
		return 0, err
	}
	r.store.Replace(rules)
	return len(rules), nil
}

// Stats returns the number of change events delivered and fsnotify errors
// seen so far.
func (r *Reloader) Stats() (events, errs int64) {
	return r.watcher.Stats()
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}

func (r *Reloader) handle(ev Event) {
	if ev.Op != OpWrite && ev.Op != OpCreate {
		return
	}
	n, err := r.Reload()
	if r.hook != nil {
		r.hook(n, err)
	}
}
