package dataset

import "fmt"

// ConfigError reports an invalid dataset configuration, such as split
// ratios that do not sum to 1.0. Raised eagerly, before any assignment
// or filesystem write happens.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// MissingLabelsError reports that the split rewriting routine was
// invoked before a labels file exists. The CLI turns this into a
// corrective hint instead of a stack trace.
type MissingLabelsError struct {
	Path string
}

func (e *MissingLabelsError) Error() string {
	return fmt.Sprintf("labels file not found: %s", e.Path)
}
