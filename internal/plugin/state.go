package plugin

// State represents the lifecycle state of the plugin.
type State int

// Plugin states.
const (
	// StateUnloaded - Plugin is not loaded; no listeners are registered.
	StateUnloaded State = iota

	// StateActive - Plugin is loaded and attaches to editors.
	StateActive

	// StateUnloading - Plugin is removing its listeners.
	StateUnloading
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateActive:
		return "active"
	case StateUnloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// IsUsable returns true if editors can be attached.
func (s State) IsUsable() bool {
	return s == StateActive
}
