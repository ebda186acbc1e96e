package port

// ColorSchemePreference represents the resolved system brightness.
type ColorSchemePreference struct {
	// PrefersDark indicates whether the system currently prefers dark.
	PrefersDark bool

	// Source identifies which detector provided this preference.
	Source string
}

// BrightnessSource is the OS appearance signal as seen by a theme manager.
// Change notifications carry no payload; subscribers re-query Resolve.
type BrightnessSource interface {
	// Resolve returns the current system preference.
	Resolve() ColorSchemePreference

	// OnChange registers a callback invoked when the system preference changes.
	// Returns a function to unregister the callback.
	OnChange(callback func()) func()
}

// ColorSchemeDetector detects the system's color scheme preference.
// Multiple detectors can be registered with different priorities.
type ColorSchemeDetector interface {
	// Name returns a human-readable name for this detector.
	Name() string

	// Priority returns the detector's priority.
	// Higher values = higher priority (checked first).
	// Recommended ranges:
	//   -  50+: Config overrides
	//   -  10+: Desktop detectors (gsettings, env vars)
	//   -   1+: Heuristics (terminal background)
	Priority() int

	// Available returns true if this detector can be used.
	Available() bool

	// Detect returns the detected preference and whether detection succeeded.
	// Returns (preference, true) on success, (_, false) if unavailable or detection failed.
	Detect() (prefersDark bool, ok bool)
}

// ColorSchemeResolver resolves the effective system brightness from
// several detectors and respects config overrides.
type ColorSchemeResolver interface {
	BrightnessSource

	// RegisterDetector adds a detector to the resolver.
	// Safe to call at any time; the resolver re-evaluates on next Resolve().
	RegisterDetector(detector ColorSchemeDetector)

	// Refresh forces re-evaluation of the color scheme and notifies
	// OnChange subscribers if the preference changed.
	// Returns the new preference.
	Refresh() ColorSchemePreference
}
