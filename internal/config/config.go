package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/dshills/duet/internal/config/loader"
)

// DefaultEnvPrefix is the prefix for environment overrides.
const DefaultEnvPrefix = "DUET_"

// Layer names, lowest priority first.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "env"
	LayerFlags    = "flags"
)

type layer struct {
	name string
	data map[string]any
}

// Config provides unified access to the editor configuration.
type Config struct {
	mu sync.RWMutex

	fs           afero.Fs
	path         string
	explicitPath bool
	envPrefix    string
	environ      func() []string
	overrides    map[string]any

	layers []layer
	merged map[string]any

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFs sets the file system the config file is read from.
func WithFs(fs afero.Fs) Option {
	return func(c *Config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithPath sets the config file. A missing file named this way is an error,
// unlike the default path.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.path = path
			c.explicitPath = true
		}
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron sets the source of environment variables, os.Environ by default.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithOverrides sets the highest priority layer, keyed by dot-separated
// setting path (e.g. "editor.lineNumbers").
func WithOverrides(overrides map[string]any) Option {
	return func(c *Config) {
		for path, v := range overrides {
			if c.overrides == nil {
				c.overrides = make(map[string]any)
			}
			c.overrides[path] = v
		}
	}
}

// New creates a new Config holding only the defaults. Call Load to read the
// other layers.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        afero.NewOsFs(),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.path == "" {
		c.path = DefaultPath()
	}

	c.layers = []layer{{name: LayerDefaults, data: defaultConfig()}}
	c.rebuild()

	return c
}

// Load reads all layers and validates the result.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	layers := []layer{{name: LayerDefaults, data: defaultConfig()}}

	fileData, err := c.loadFile()
	if err != nil {
		return err
	}
	if fileData != nil {
		layers = append(layers, layer{name: LayerFile, data: fileData})
	}

	env := loader.NewEnvLoader(c.envPrefix)
	env.SetEnviron(c.environ)
	envData, err := env.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	if len(envData) > 0 {
		layers = append(layers, layer{name: LayerEnv, data: envData})
	}

	if len(c.overrides) > 0 {
		flags := make(map[string]any)
		for path, v := range c.overrides {
			loader.SetByPath(flags, path, v)
		}
		layers = append(layers, layer{name: LayerFlags, data: flags})
	}

	c.layers = layers
	c.rebuild()

	return c.validate()
}

func (c *Config) loadFile() (map[string]any, error) {
	if c.path == "" {
		return nil, nil
	}

	if c.explicitPath {
		if _, err := c.fs.Stat(c.path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
			}
			return nil, fmt.Errorf("reading config file %s: %w", c.path, err)
		}
	}

	return loader.ForPath(c.fs, c.path).Load()
}

// rebuild recomputes the merged view. Callers hold c.mu.
func (c *Config) rebuild() {
	merged := make(map[string]any)
	for _, l := range c.layers {
		merged = loader.DeepMerge(merged, loader.Clone(l.data))
	}
	c.merged = merged
}

// Path returns the config file path in effect.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Layers returns the names of the loaded layers, lowest priority first.
func (c *Config) Layers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.layers))
	for i, l := range c.layers {
		names[i] = l.name
	}
	return names
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if path == "" {
		return nil, false
	}
	return loader.GetByPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set sets a value in the flags layer, the highest priority. The value
// survives later calls to Load.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return ErrInvalidPath
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.overrides == nil {
		c.overrides = make(map[string]any)
	}
	c.overrides[path] = value

	if c.layers[len(c.layers)-1].name != LayerFlags {
		c.layers = append(c.layers, layer{name: LayerFlags, data: make(map[string]any)})
	}
	loader.SetByPath(c.layers[len(c.layers)-1].data, path, value)
	c.rebuild()

	return nil
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// DefaultPath returns $XDG_CONFIG_HOME/duet/config.toml, or "" when no user
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "duet", "config.toml")
}

// typeName returns a readable type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
