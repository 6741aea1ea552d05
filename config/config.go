// Package config loads typed configuration with viper, layering defaults,
// an optional config file and environment variables, and reloads the file
// when it changes.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the current value of T.
type Config[T any] struct {
	v        *viper.Viper
	value    *T
	mu       sync.RWMutex
	watchers []func(old, new T)
	validate *validator.Validate
}

type Option[T any] func(*Config[T])

// WithDefaults sets defaults by dotted key, e.g. "http.timeout".
// Keys that only come from the environment need a default to be picked up.
func WithDefaults[T any](defaults map[string]any) Option[T] {
	return func(c *Config[T]) {
		for k, v := range defaults {
			c.v.SetDefault(k, v)
		}
	}
}

// WithEnv binds PREFIX_SECTION_KEY environment variables.
func WithEnv[T any](prefix string) Option[T] {
	return func(c *Config[T]) {
		c.v.SetEnvPrefix(prefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		c.v.AutomaticEnv()
	}
}

// WithValidation checks `validate` struct tags on load and on every reload.
// A reload that fails validation is discarded.
func WithValidation[T any]() Option[T] {
	return func(c *Config[T]) { c.validate = validator.New() }
}

// Load reads path and watches it for changes. An empty path loads defaults
// and environment only, without watching.
func Load[T any](path string, opts ...Option[T]) (*Config[T], error) {
	v := viper.New()
	c := &Config[T]{v: v}
	for _, opt := range opts {
		opt(c)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	val, err := c.decode()
	if err != nil {
		return nil, err
	}
	c.value = &val

	if path != "" {
		c.watch()
	}
	return c, nil
}

func (c *Config[T]) decode() (T, error) {
	var val T
	if err := c.v.Unmarshal(&val); err != nil {
		return val, fmt.Errorf("config: decode: %w", err)
	}
	if c.validate != nil {
		if err := c.validate.Struct(val); err != nil {
			return val, fmt.Errorf("config: invalid: %w", err)
		}
	}
	return val, nil
}

// Get returns a deep copy of the current value. Safe for concurrent use.
func (c *Config[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(*c.value)
}

// OnChange registers callback for reloads that change the value.
func (c *Config[T]) OnChange(callback func(old, new T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, callback)
}

// Changed reports whether old and new differ.
func Changed[T any](old, new T) bool {
	return !reflect.DeepEqual(old, new)
}

func deepCopy[T any](src T) T {
	var dst T
	data, _ := json.Marshal(src)
	_ = json.Unmarshal(data, &dst)
	return dst
}

func (c *Config[T]) watch() {
	var (
		debounceTimer *time.Timer
		debounceMu    sync.Mutex
	)

	// Editors write a file in several steps; collapse them into one reload.
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		debounceMu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(100*time.Millisecond, c.handleConfigChange)
		debounceMu.Unlock()
	})

	c.v.WatchConfig()
}

func (c *Config[T]) handleConfigChange() {
	oldConfig := c.Get()

	newConfig, watchers, err := c.reload()
	if err != nil {
		log.Warn().Err(err).Str("file", c.v.ConfigFileUsed()).Msg("config reload ignored")
		return
	}
	if reflect.DeepEqual(oldConfig, newConfig) {
		return
	}

	for _, cb := range watchers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("config change callback panicked")
				}
			}()
			cb(oldConfig, newConfig)
		}()
	}
}

func (c *Config[T]) reload() (T, []func(old, new T), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if err := c.v.ReadInConfig(); err != nil {
		return zero, nil, err
	}
	val, err := c.decode()
	if err != nil {
		return zero, nil, err
	}
	c.value = &val

	watchers := make([]func(old, new T), len(c.watchers))
	copy(watchers, c.watchers)

	return deepCopy(val), watchers, nil
}
