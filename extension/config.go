package extension

// Config holds the society operations extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.societyops" or "societyops" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DefaultActor is recorded on activity log entries when the request
	// context carries no actor (default: "system").
	DefaultActor string `json:"default_actor" mapstructure:"default_actor" yaml:"default_actor"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultActor: "system",
	}
}
