// Package config persists replacement rules.
//
// Rules are stored as a single JSON document:
//
//	{
//	  "entries": [
//	    {
//	      "id": "5b0c...",
//	      "matchStr": "btw",
//	      "replacement": "by the way",
//	      "applyOnPaste": true,
//	      "excludeCodeBlocks": true
//	    }
//	  ]
//	}
//
// Loading is tolerant. A missing or unreadable file yields an empty rule
// list, and a record field with the wrong type falls back to that field's
// default instead of discarding the record:
//
//	store := config.Load(config.DefaultRulesPath())
//	r := store.AddRule()
//	if err := config.Save(path, store); err != nil {
//	    // surface to the user
//	}
//
// Rules can also be moved between machines as TOML, YAML or JSON with
// Export and Import. Imported triggers are normalized to NFC so that a
// trigger typed on one platform matches the same text typed on another.
//
// The watcher sub-package reloads a store when the rules file changes on
// disk.
package config
