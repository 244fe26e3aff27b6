package config

import (
	"fmt"
	"slices"

	"github.com/dshills/duet/internal/config/loader"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration.

// EditorConfig provides type-safe access to editor settings.
type EditorConfig struct {
	// LineNumbers shows the line-number gutter.
	LineNumbers bool

	// TabWidth is the number of spaces Tab inserts when ExpandTabs is set.
	TabWidth int

	// ExpandTabs inserts spaces instead of a tab character.
	ExpandTabs bool

	// WatchFile reports changes made to the open file by other programs.
	WatchFile bool
}

// UIConfig provides type-safe access to UI settings.
type UIConfig struct {
	// ShowHelpBar shows the key summary on the bottom row.
	ShowHelpBar bool
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File receives log output. Logging is disabled when empty.
	File string
}

// Limits for editor.tabWidth.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

func defaultConfig() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"lineNumbers": false,
			"tabWidth":    4,
			"expandTabs":  false,
			"watchFile":   true,
		},
		"ui": map[string]any{
			"showHelpBar": true,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// Editor returns type-safe access to editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		LineNumbers: c.getBoolOr("editor.lineNumbers", false),
		TabWidth:    c.getIntOr("editor.tabWidth", 4),
		ExpandTabs:  c.getBoolOr("editor.expandTabs", false),
		WatchFile:   c.getBoolOr("editor.watchFile", true),
	}
}

// UI returns type-safe access to UI settings.
func (c *Config) UI() UIConfig {
	return UIConfig{
		ShowHelpBar: c.getBoolOr("ui.showHelpBar", true),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// validate checks value ranges. Callers hold c.mu.
func (c *Config) validate() error {
	if v, ok := c.mergedLocked("editor.tabWidth"); ok {
		n, isInt := toInt(v)
		if !isInt {
			return &TypeError{Path: "editor.tabWidth", Expected: "int", Actual: typeName(v)}
		}
		if n < MinTabWidth || n > MaxTabWidth {
			return &ValidationError{
				Path:    "editor.tabWidth",
				Message: fmt.Sprintf("must be between %d and %d", MinTabWidth, MaxTabWidth),
				Value:   v,
			}
		}
	}

	if v, ok := c.mergedLocked("logging.level"); ok {
		s, _ := v.(string)
		if !slices.Contains(LogLevels, s) {
			return &ValidationError{
				Path:    "logging.level",
				Message: "must be one of debug, info, warn, error",
				Value:   v,
			}
		}
	}

	return nil
}

func (c *Config) mergedLocked(path string) (any, bool) {
	return loader.GetByPath(c.merged, path)
}

// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking callers.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if err != ErrSettingNotFound {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	default:
		return 0, false
	}
}
