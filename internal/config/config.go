// Package config loads connector configuration from a config file, .env
// files and GLOSSYNC_ environment variables.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/glossync"
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/errors"
)

// EnvPrefix prefixes every environment variable, e.g. GLOSSYNC_ATLAS_URL.
const EnvPrefix = "GLOSSYNC"

// Config is the complete connector configuration.
type Config struct {
	Sync      SyncConfig      `mapstructure:"sync"`
	Connector ConnectorConfig `mapstructure:"connector"`
	Atlas     AtlasConfig     `mapstructure:"atlas"`
	Egeria    EgeriaConfig    `mapstructure:"egeria"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// SyncConfig scopes and paces the reconciliation.
type SyncConfig struct {
	// GlossaryQualifiedName restricts synchronization to one Egeria glossary.
	GlossaryQualifiedName string `mapstructure:"glossary_qualified_name"`
	// AtlasGlossaryName restricts synchronization to one Atlas glossary.
	AtlasGlossaryName string `mapstructure:"atlas_glossary_name"`
	PageSize          int    `mapstructure:"page_size"`
	// Schedule is a cron spec; empty disables scheduled refreshes.
	Schedule   string `mapstructure:"schedule"`
	Collection string `mapstructure:"collection"`
}

// ConnectorConfig identifies the connector.
type ConnectorConfig struct {
	Name string `mapstructure:"name"`
}

// AtlasConfig locates the Atlas server.
type AtlasConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// EgeriaConfig locates the Egeria OMAG server.
type EgeriaConfig struct {
	URL         string `mapstructure:"url"`
	Server      string `mapstructure:"server"`
	UserID      string `mapstructure:"user_id"`
	MaxPageSize int    `mapstructure:"max_page_size"`
}

// ServerConfig configures the HTTP control surface.
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	PathPrefix string `mapstructure:"path_prefix"`
	APIKey     string `mapstructure:"api_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// keys lists every key so that environment variables bind even when no
// config file mentions them.
var keys = []string{
	"sync.glossary_qualified_name",
	"sync.atlas_glossary_name",
	"sync.page_size",
	"sync.schedule",
	"sync.collection",
	"connector.name",
	"atlas.url",
	"atlas.username",
	"atlas.password",
	"egeria.url",
	"egeria.server",
	"egeria.user_id",
	"egeria.max_page_size",
	"server.port",
	"server.path_prefix",
	"server.api_key",
	"log.level",
	"log.format",
	"log.output",
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sync.page_size", constants.DefaultPageSize)
	v.SetDefault("sync.schedule", constants.DefaultSchedule)
	v.SetDefault("sync.collection", constants.DefaultCollection)
	v.SetDefault("connector.name", constants.DefaultConnectorName)
	v.SetDefault("atlas.url", "http://localhost:21000")
	v.SetDefault("egeria.url", "https://localhost:9443")
	v.SetDefault("egeria.max_page_size", constants.MaxPageSize)
	v.SetDefault("server.port", constants.DefaultServerPort)
	v.SetDefault("server.path_prefix", constants.DefaultPathPrefix)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// LoadEnvFiles loads .env then .env.local. Variables already set in the
// environment are not overridden; missing files are ignored.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads configuration into a new Config. Precedence, highest first:
// environment, config file, defaults. file may be empty, in which case
// glossync.yaml is looked up in the working directory and $HOME.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.NewConfigError("env", "bind "+key, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("glossync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "read config", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("file", "decode config", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	return cfg, nil
}

// Validate checks the settings needed to run a connector.
func (c *Config) Validate() error {
	switch {
	case c.Atlas.URL == "":
		return errors.NewValidationError("atlas.url", c.Atlas.URL, "is required")
	case c.Egeria.URL == "":
		return errors.NewValidationError("egeria.url", c.Egeria.URL, "is required")
	case c.Egeria.Server == "":
		return errors.NewValidationError("egeria.server", c.Egeria.Server, "is required")
	case c.Egeria.UserID == "":
		return errors.NewValidationError("egeria.user_id", c.Egeria.UserID, "is required")
	case c.Sync.PageSize <= 0:
		return errors.NewValidationError("sync.page_size", c.Sync.PageSize, "must be positive")
	case c.Sync.Collection == "":
		return errors.NewValidationError("sync.collection", c.Sync.Collection, "is required")
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return errors.NewValidationError("server.port", c.Server.Port, "out of range")
	}
	if c.Sync.Schedule != "" {
		if _, err := glossync.ParseSchedule(c.Sync.Schedule); err != nil {
			return errors.NewValidationError("sync.schedule", c.Sync.Schedule, err.Error())
		}
	}
	return nil
}
