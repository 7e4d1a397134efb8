package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/gridcfg/gridcfg/internal/config/loader"
	"github.com/gridcfg/gridcfg/internal/config/notify"
	"github.com/gridcfg/gridcfg/internal/config/option"
	"github.com/gridcfg/gridcfg/internal/config/registry"
	"github.com/gridcfg/gridcfg/internal/config/watcher"
)

// Config provides unified access to the gridcfg configuration system.
// It routes flat config file sections into registered options, watches
// the file for live reload, and fans out change notifications.
type Config struct {
	mu sync.RWMutex

	// Registered options
	registry *registry.Registry

	// Change notifier
	notifier *notify.Notifier

	// File watcher for live reload
	watcher *watcher.Watcher

	// Configuration source paths
	configPath string
	envPrefix  string

	// Options
	enableWatcher bool

	// Source tag attached to change notifications, and whether the
	// mutation in flight is a reset rather than a set.
	source    string
	resetting bool

	// Problems from the most recent load.
	problems []loader.Problem
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigPath sets the configuration file path. The format is
// selected by extension (.toml, .yaml, .yml).
func WithConfigPath(path string) Option {
	return func(c *Config) {
		c.configPath = path
	}
}

// WithEnvPrefix sets the environment variable prefix for the overlay
// loaded after the file.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		registry:      registry.New(),
		notifier:      notify.New(),
		enableWatcher: true,
		source:        "api",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.configPath == "" {
		c.configPath = defaultConfigPath()
	}

	if c.enableWatcher {
		c.watcher = watcher.New()
		c.watcher.OnChange(c.handleFileChange)
	}

	return c
}

// Register adds an option and bridges its update handler into the
// notifier, so every successful mutation produces one change event.
func (c *Config) Register(opt option.Option) error {
	if err := c.registry.Register(opt); err != nil {
		return err
	}

	name := opt.Name()
	opt.OnUpdate(func() {
		source, resetting := c.changeContext()
		if resetting {
			c.notifier.NotifyReset(name, source)
			return
		}
		c.notifier.NotifySet(name, source)
	})
	return nil
}

// MustRegister registers an option and panics on error.
func (c *Config) MustRegister(opt option.Option) {
	if err := c.Register(opt); err != nil {
		panic(err)
	}
}

// Option returns the registered option with the given name, or nil.
func (c *Config) Option(name string) option.Option {
	return c.registry.Get(name)
}

// Compound returns the registered compound option with the given name,
// or nil if the name is unknown or names a scalar.
func (c *Config) Compound(name string) *option.Compound {
	return c.registry.Compound(name)
}

// Registry returns the underlying option registry.
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

// Value returns the typed value of a registered scalar option.
func Value[T any](c *Config, name string) (T, error) {
	var zero T

	opt := c.registry.Get(name)
	if opt == nil {
		return zero, fmt.Errorf("%w: %s", ErrOptionNotFound, name)
	}
	s, ok := opt.(*option.Scalar[T])
	if !ok {
		return zero, &TypeError{Name: name, Expected: fmt.Sprintf("%T", zero)}
	}
	return s.Value(), nil
}

// Load loads configuration from the file and the environment overlay,
// then starts the file watcher.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	c.problems = nil
	c.mu.Unlock()

	if err := c.loadFile(c.configPath); err != nil {
		return err
	}

	if c.envPrefix != "" {
		if err := c.loadEnvironment(); err != nil {
			return err
		}
	}

	if c.watcher != nil {
		if err := c.watcher.Watch(c.configPath); err != nil {
			return err
		}
		if err := c.watcher.Start(); err != nil {
			return err
		}
	}

	c.notifier.NotifyReload(c.configPath)
	return nil
}

// Save writes the current values of every registered option back to the
// configuration file in TOML form. Compound options become one section
// of flat row entries each; dotted scalars group under their section.
func (c *Config) Save() error {
	doc := make(map[string]any)

	for _, opt := range c.registry.All() {
		if comp, ok := opt.(*option.Compound); ok {
			section := loader.FlattenGrid(comp.UntypedValue(), entryPrefixes(comp))
			table := make(map[string]string, len(section))
			for k, v := range section {
				table[k] = v
			}
			doc[comp.Name()] = table
			continue
		}

		section, key := splitName(opt.Name())
		if section == "" {
			doc[key] = opt.ValueString()
			continue
		}
		table, ok := doc[section].(map[string]string)
		if !ok {
			table = make(map[string]string)
			doc[section] = table
		}
		table[key] = opt.ValueString()
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(c.configPath, data, 0o644)
}

// Problems returns the load problems from the most recent Load or
// reload: flat keys matching no column, incomplete rows, and values
// rejected by an option.
func (c *Config) Problems() []loader.Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]loader.Problem, len(c.problems))
	copy(result, c.problems)
	return result
}

// Subscribe registers an observer for all option changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribeOption registers an observer for changes to one option.
func (c *Config) SubscribeOption(name string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribeOption(name, observer)
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	if c.watcher != nil {
		c.watcher.Stop()
	}
	if c.notifier != nil {
		c.notifier.Close()
	}
}

// loadFile reads the config file and routes its sections into options.
// A missing file is not an error; options keep their current values.
func (c *Config) loadFile(path string) error {
	l, err := loaderForPath(path)
	if err != nil {
		return err
	}

	file, err := l.Load()
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}

	c.applyFile(file, path, false)
	return nil
}

// loadEnvironment applies the environment variable overlay. The overlay
// carries scalar overrides only; compound options are never touched by
// environment variables.
func (c *Config) loadEnvironment() error {
	envLoader := loader.NewEnvLoader(c.envPrefix)
	file, err := envLoader.Load()
	if err != nil {
		return err
	}
	if len(file) > 0 {
		c.applyFile(file, "env:"+c.envPrefix, true)
	}
	return nil
}

// applyFile routes file sections into registered options. Compound
// options consume the whole section named after them through grid
// discovery; scalar options consume single section entries. With
// scalarsOnly set, compound options are skipped entirely.
func (c *Config) applyFile(file loader.File, source string, scalarsOnly bool) {
	c.setSource(source)
	defer c.setSource("api")

	var problems []loader.Problem

	for _, opt := range c.registry.All() {
		if comp, ok := opt.(*option.Compound); ok {
			if scalarsOnly {
				continue
			}
			section, ok := file[comp.Name()]
			if !ok {
				continue
			}
			grid, probs := loader.DiscoverGrid(section, entryPrefixes(comp))
			problems = append(problems, probs...)
			if !comp.SetUntypedValue(grid) {
				problems = append(problems, loader.Problem{
					Row:    comp.Name(),
					Reason: "row grid rejected by option",
				})
			}
			continue
		}

		sectionName, key := splitName(opt.Name())
		section, ok := file[sectionName]
		if !ok {
			continue
		}
		raw, ok := section[key]
		if !ok {
			continue
		}
		if !opt.SetValueString(raw) {
			problems = append(problems, loader.Problem{
				Key:    key,
				Reason: fmt.Sprintf("value %q rejected by option %s", raw, opt.Name()),
			})
		}
	}

	c.mu.Lock()
	c.problems = append(c.problems, problems...)
	c.mu.Unlock()
}

// handleFileChange handles file change events from the watcher.
func (c *Config) handleFileChange(event watcher.Event) {
	if event.Op == watcher.OpRemove {
		c.resetAll(event.Path)
		c.notifier.NotifyReload(event.Path)
		return
	}

	c.mu.Lock()
	c.problems = nil
	c.mu.Unlock()

	if err := c.loadFile(event.Path); err != nil {
		return
	}
	c.notifier.NotifyReload(event.Path)
}

// ResetAll resets every registered option to its default value, firing
// one reset change per option.
func (c *Config) ResetAll() {
	c.resetAll("api")
}

// resetAll resets every option, tagging the changes as resets from the
// given source.
func (c *Config) resetAll(source string) {
	c.mu.Lock()
	c.source = source
	c.resetting = true
	c.mu.Unlock()

	c.registry.ResetAll()

	c.mu.Lock()
	c.source = "api"
	c.resetting = false
	c.mu.Unlock()
}

func (c *Config) setSource(source string) {
	c.mu.Lock()
	c.source = source
	c.mu.Unlock()
}

func (c *Config) changeContext() (source string, resetting bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source, c.resetting
}

// loaderForPath selects a loader by file extension.
func loaderForPath(path string) (loader.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loader.NewTOMLLoader(path), nil
	case ".yaml", ".yml":
		return loader.NewYAMLLoader(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// entryPrefixes returns a compound option's column prefixes in schema
// order.
func entryPrefixes(c *option.Compound) []string {
	entries := c.Entries()
	prefixes := make([]string, len(entries))
	for i, e := range entries {
		prefixes[i] = e.Prefix()
	}
	return prefixes
}

// splitName splits an option name into section and key at the first
// dot. Names without a dot have an empty section.
func splitName(name string) (section, key string) {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// defaultConfigPath returns the default user configuration file path.
func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridcfg", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gridcfg", "config.toml")
}
