package app

import (
	"github.com/spf13/viper"

	"github.com/agentstation/glossync/internal/config"
)

// Flags holds the global command-line flags.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	Format     string
	LogLevel   string
	LogFormat  string
}

// LoadConfig loads .env files and then the configuration, in order of
// precedence: environment, config file, defaults.
func LoadConfig(file string) (*config.Config, error) {
	config.LoadEnvFiles()
	return config.Load(viper.New(), file)
}
