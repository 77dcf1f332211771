package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/rowforge/rowforge/internal/formatter"
)

type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	Trail     TrailConfig     `yaml:"trail"`
	NATS      NATSConfig      `yaml:"nats"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type FormatterConfig struct {
	InsertOpKey string `yaml:"insert_op_key"`
	UpdateOpKey string `yaml:"update_op_key"`
	DeleteOpKey string `yaml:"delete_op_key"`
	// PkUpdateHandling is one of abend, update, delete-insert.
	PkUpdateHandling         string `yaml:"pk_update_handling"`
	TreatAllColumnsAsStrings bool   `yaml:"treat_all_columns_as_strings"`
	// Pointer so an omitted key defaults to true.
	ISO8601Timestamps  *bool `yaml:"iso8601_timestamps"`
	IncludeTokens      bool  `yaml:"include_tokens"`
	IncludePrimaryKeys bool  `yaml:"include_primary_keys"`
}

type TrailConfig struct {
	Path         string        `yaml:"path"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type NATSConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	Encoding      string        `yaml:"encoding"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the YAML configuration file, filling in defaults
// for omitted keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Formatter.InsertOpKey == "" {
		c.Formatter.InsertOpKey = "I"
	}
	if c.Formatter.UpdateOpKey == "" {
		c.Formatter.UpdateOpKey = "U"
	}
	if c.Formatter.DeleteOpKey == "" {
		c.Formatter.DeleteOpKey = "D"
	}
	if c.Formatter.PkUpdateHandling == "" {
		c.Formatter.PkUpdateHandling = "abend"
	}
	if c.Trail.PollInterval == 0 {
		c.Trail.PollInterval = 250 * time.Millisecond
	}
	if c.NATS.Encoding == "" {
		c.NATS.Encoding = "json"
	}
	if c.NATS.MaxReconnects == 0 {
		c.NATS.MaxReconnects = 10
	}
	if c.NATS.ReconnectWait == 0 {
		c.NATS.ReconnectWait = 2 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Options resolves the formatter configuration into the immutable engine
// options. An invalid pk_update_handling value logs a warning and falls
// back to abend rather than failing startup.
func (f *FormatterConfig) Options() formatter.Options {
	opts := formatter.DefaultOptions()
	opts.InsertOpKey = f.InsertOpKey
	opts.UpdateOpKey = f.UpdateOpKey
	opts.DeleteOpKey = f.DeleteOpKey
	opts.TreatAllColumnsAsStrings = f.TreatAllColumnsAsStrings
	opts.IncludeTokens = f.IncludeTokens
	opts.IncludePrimaryKeys = f.IncludePrimaryKeys

	if f.ISO8601Timestamps != nil {
		opts.ISO8601Timestamps = *f.ISO8601Timestamps
	}

	handling, err := formatter.ParsePkHandling(f.PkUpdateHandling)
	if err != nil {
		log.Warn().
			Str("value", f.PkUpdateHandling).
			Msg("invalid pk update handling, falling back to abend")
		handling = formatter.PkAbend
	}
	opts.PkHandling = handling
	return opts
}
