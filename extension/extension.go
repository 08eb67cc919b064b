// Package extension provides the Forge extension adapter for the society
// operations engine.
//
// It implements the forge.Extension interface to integrate the engine
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.societyops" or
// "societyops" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	societyops "github.com/towertech/societyops"
	"github.com/towertech/societyops/store"
	"github.com/towertech/societyops/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "societyops"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Residential society operations engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the society operations engine as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *societyops.Engine
	store      store.Store
	engineOpts []societyops.Option
}

// New creates a new Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying engine instance.
// This is nil until Register is called.
func (e *Extension) Engine() *societyops.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	eng := societyops.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*societyops.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("societyops: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("societyops: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs societyops.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []societyops.Option {
	opts := make([]societyops.Option, 0, len(e.engineOpts)+1)

	if e.config.DefaultActor != "" {
		opts = append(opts, societyops.WithDefaultActor(e.config.DefaultActor))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("societyops: configuration is required but not found in config files; " +
				"ensure 'extensions.societyops' or 'societyops' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("societyops: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("default_actor", e.config.DefaultActor),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.societyops" first (namespaced pattern).
	if cm.IsSet("extensions.societyops") {
		if err := cm.Bind("extensions.societyops", &cfg); err == nil {
			e.Logger().Debug("societyops: loaded config from file",
				forge.F("key", "extensions.societyops"),
			)
			return cfg, true
		}
		e.Logger().Warn("societyops: failed to bind extensions.societyops config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "societyops" key.
	if cm.IsSet("societyops") {
		if err := cm.Bind("societyops", &cfg); err == nil {
			e.Logger().Debug("societyops: loaded config from file",
				forge.F("key", "societyops"),
			)
			return cfg, true
		}
		e.Logger().Warn("societyops: failed to bind societyops config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.DefaultActor == "" {
		cfg.DefaultActor = defaults.DefaultActor
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.DefaultActor == "" && programmaticConfig.DefaultActor != "" {
		yamlConfig.DefaultActor = programmaticConfig.DefaultActor
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
