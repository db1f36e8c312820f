// Package config loads the settings of the metric tools: where the NLP
// engines live, the cache and store, and logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config keys, e.g.
// COH_CACHE_LIMIT or COH_STORE_KIND.
const EnvPrefix = "COH"

// Store kinds
const (
	StoreNone       = "none"
	StoreSqlite     = "sqlite"
	StoreFilesystem = "filesystem"
)

// Tagger backends
const (
	TaggerOpenNLP = "opennlp"
	TaggerProse   = "prose"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	// DataDir holds the vendored tools and their models. CMD_DATA_DIR is
	// accepted too.
	DataDir string `mapstructure:"data_dir"`

	CacheLimit  int           `mapstructure:"cache_limit"`
	ToolTimeout time.Duration `mapstructure:"tool_timeout"`
	Workers     int           `mapstructure:"workers"`
	LogLevel    string        `mapstructure:"log_level"`

	Store           StoreConfig   `mapstructure:"store"`
	Tagger          TaggerConfig  `mapstructure:"tagger"`
	UniversalTagger TaggerConfig  `mapstructure:"universal_tagger"`
	Parser          ProgramConfig `mapstructure:"parser"`
	DepParser       ProgramConfig `mapstructure:"dep_parser"`
	Stemmer         StemmerConfig `mapstructure:"stemmer"`
	LSA             LSAConfig     `mapstructure:"lsa"`
}

type StoreConfig struct {
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`
}

type TaggerConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Model   string `mapstructure:"model"`
}

type ProgramConfig struct {
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`
}

type StemmerConfig struct {
	Language string `mapstructure:"language"`
}

// LSAConfig locates the term vectors of an LSA space. The semantic
// metrics are off when Path is empty.
type LSAConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("cache_limit", 300)
	v.SetDefault("tool_timeout", "2m")
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "info")

	v.SetDefault("store.kind", StoreNone)
	v.SetDefault("store.path", "")

	v.SetDefault("tagger.backend", TaggerOpenNLP)
	v.SetDefault("tagger.path", "")
	v.SetDefault("tagger.model", "")
	v.SetDefault("universal_tagger.backend", TaggerOpenNLP)
	v.SetDefault("universal_tagger.path", "")
	v.SetDefault("universal_tagger.model", "")

	v.SetDefault("parser.path", "")
	v.SetDefault("parser.args", []string{})
	v.SetDefault("dep_parser.path", "")
	v.SetDefault("dep_parser.args", []string{})

	v.SetDefault("stemmer.language", "spanish")
	v.SetDefault("lsa.path", "")
}

// Load reads the config: defaults, then the YAML (or any viper supported
// format) file at path if not empty, then the environment. A .env file in
// the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("data_dir", EnvPrefix+"_DATA_DIR", "CMD_DATA_DIR"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.fillToolPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fillToolPaths sets the tool locations of the standard data dir layout
// where none was configured.
func (c *Config) fillToolPaths() {
	data := func(parts ...string) string {
		return filepath.Join(append([]string{c.DataDir}, parts...)...)
	}

	orDefault := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}

	orDefault(&c.Tagger.Path, data("vendor", "apache-opennlp-1.5.3", "bin", "opennlp"))
	orDefault(&c.Tagger.Model, data("models", "opennlp", "pt-pos-maxent.bin"))
	orDefault(&c.UniversalTagger.Path, data("vendor", "apache-opennlp-1.5.3", "bin", "opennlp"))
	orDefault(&c.UniversalTagger.Model, data("models", "opennlp", "pt-universal-maxent.bin"))
	orDefault(&c.Parser.Path, data("vendor", "lx-parser", "run-parser.sh"))
	orDefault(&c.DepParser.Path, data("vendor", "maltparser", "run-malt.sh"))
	orDefault(&c.Store.Path, data("cache", "annotations.db"))
}

// Validate checks the values of the config.
func (c *Config) Validate() error {
	if c.CacheLimit < 0 {
		return fmt.Errorf("%w: cache_limit %d must be >= 0", ErrInvalid, c.CacheLimit)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be >= 1", ErrInvalid, c.Workers)
	}

	if c.ToolTimeout < 0 {
		return fmt.Errorf("%w: negative tool_timeout %s", ErrInvalid, c.ToolTimeout)
	}

	switch c.Store.Kind {
	case StoreNone:
	case StoreSqlite, StoreFilesystem:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for store %q", ErrInvalid, c.Store.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown store.kind %q", ErrInvalid, c.Store.Kind)
	}

	for key, backend := range map[string]string{
		"tagger.backend":           c.Tagger.Backend,
		"universal_tagger.backend": c.UniversalTagger.Backend,
	} {
		if backend != TaggerOpenNLP && backend != TaggerProse {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalid, key, backend)
		}
	}

	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}

	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
