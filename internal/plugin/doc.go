// Package plugin attaches the replace-while-typing engine to editors.
//
// A Plugin owns the rule store and, while loaded, one replacement engine
// per attached editor. Attaching registers a key-down and a key-up
// listener on the editor; the plugin remembers both handles so that
// Detach and Unload remove exactly what was added:
//
//	p := plugin.New(store, plugin.WithLogger(logger))
//	if err := p.Load(); err != nil {
//	    return err
//	}
//	defer p.Unload()
//
//	if err := p.Attach(ed); err != nil {
//	    return err
//	}
//
// Each editor gets its own engine, so a key-down recorded in one editor is
// never paired with a key-up from another.
package plugin
