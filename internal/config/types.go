package config

import "fmt"

// DefaultFileName is the settings file looked up in the working directory.
const DefaultFileName = "ymmod.lua"

// Default values applied when the settings file is absent or silent.
const (
	DefaultOutput  = ".versions"
	DefaultChannel = "stable"
)

// Settings are the tunables read from ymmod.lua. Command-line flags override
// them field by field.
type Settings struct {
	// Output is the directory build trees are written under.
	Output string `json:"output"`

	// AutoDevtools opens the devtools as soon as the patched app's main
	// window exists.
	AutoDevtools bool `json:"auto_devtools"`

	// UserAgent overrides the User-Agent header sent to the update server.
	// Empty means the built-in browser string.
	UserAgent string `json:"user_agent,omitempty"`

	// Channel is the update channel segment of the manifest URL.
	Channel string `json:"channel"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Output:  DefaultOutput,
		Channel: DefaultChannel,
	}
}

// Validate performs basic validation on Settings.
func (s *Settings) Validate() error {
	if s.Output == "" {
		return &ValidationError{Field: "output", Message: "must not be empty"}
	}
	if s.Channel == "" {
		return &ValidationError{Field: "channel", Message: "must not be empty"}
	}
	return nil
}

// ValidationError describes a settings field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
