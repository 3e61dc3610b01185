package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the persistent rocksolid configuration stored as
// config.toml in the .rocksolid/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	Sources     SourcesConfig     `toml:"sources"`
	Storage     StorageConfig     `toml:"storage"`
	API         APIConfig         `toml:"api"`
	Client      ClientConfig      `toml:"client"`
	Search      SearchConfig      `toml:"search"`
	EventStream EventStreamConfig `toml:"eventstream"`
}

// SourcesConfig points at the upstream skill providers.
type SourcesConfig struct {
	// ExerciseURL is an http(s) URL or a local file path holding the
	// exercise catalog JSON array.
	ExerciseURL string `toml:"exercise_url,omitempty"`
	YogaBase    string `toml:"yoga_base,omitempty"`
}

// StorageConfig selects the routine backend driver.
type StorageConfig struct {
	Driver string `toml:"driver,omitempty"`

	// SQLitePath defaults to routines.db inside the .rocksolid/ directory
	// when empty.
	SQLitePath       string `toml:"sqlite_path,omitempty"`
	PostgresDSN      string `toml:"postgres_dsn,omitempty"`
	FirestoreProject string `toml:"firestore_project,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ClientConfig holds settings for CLI commands that talk to a running
// routine backend (e.g. rocksolid routines push). Values are full URLs.
type ClientConfig struct {
	APITarget string `toml:"api_target,omitempty"`
}

// SearchConfig tunes catalog search.
type SearchConfig struct {
	Limit uint `toml:"limit,omitempty"`
}

// EventStreamConfig configures routine lifecycle event publishing. An empty
// broker list disables publishing.
type EventStreamConfig struct {
	KafkaBrokers []string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string   `toml:"kafka_topic,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"sources.exercise_url": {
		get: func(c *Config) string { return c.Sources.ExerciseURL },
		set: func(c *Config, v string) error { c.Sources.ExerciseURL = v; return nil },
	},
	"sources.yoga_base": {
		get: func(c *Config) string { return c.Sources.YogaBase },
		set: func(c *Config, v string) error { c.Sources.YogaBase = v; return nil },
	},
	"storage.driver": {
		get: func(c *Config) string { return c.Storage.Driver },
		set: func(c *Config, v string) error {
			if !IsValidStorageDriver(v) {
				return fmt.Errorf("invalid value for storage.driver: %q (available: %s)",
					v, strings.Join(StorageDrivers(), ", "))
			}
			c.Storage.Driver = v
			return nil
		},
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_dsn": {
		get: func(c *Config) string { return c.Storage.PostgresDSN },
		set: func(c *Config, v string) error { c.Storage.PostgresDSN = v; return nil },
	},
	"storage.firestore_project": {
		get: func(c *Config) string { return c.Storage.FirestoreProject },
		set: func(c *Config, v string) error { c.Storage.FirestoreProject = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"search.limit": {
		get: func(c *Config) string {
			if c.Search.Limit == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Search.Limit), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for search.limit: %w", err)
			}
			c.Search.Limit = uint(n)
			return nil
		},
	},
	"eventstream.kafka_brokers": {
		get: func(c *Config) string { return strings.Join(c.EventStream.KafkaBrokers, ",") },
		set: func(c *Config, v string) error {
			c.EventStream.KafkaBrokers = SplitList(v)
			return nil
		},
	},
	"eventstream.kafka_topic": {
		get: func(c *Config) string { return c.EventStream.KafkaTopic },
		set: func(c *Config, v string) error { c.EventStream.KafkaTopic = v; return nil },
	},
}

// SplitList splits a comma separated value, trimming entries and dropping
// empty ones.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
