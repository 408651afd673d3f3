// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"

	"github.com/cinecli/cinecli/auth"
	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.CineCLI)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	// Synchronize environment variable bindings.
	viper.SetEnvPrefix(constant.CineCLI)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// Initialize factory default values.
	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	loadKeyringCredentials()
	return nil
}

// loadKeyringCredentials fills credential keys from the system keyring when the
// config file and environment leave them empty. Config always wins.
func loadKeyringCredentials() {
	for k, credential := range map[string]auth.Credential{
		key.TMDBAPIKey:   auth.TMDBKey,
		key.TorboxAPIKey: auth.TorboxKey,
	} {
		if viper.GetString(k) != "" {
			continue
		}

		if value, err := auth.Get(credential); err == nil && value != "" {
			viper.Set(k, value)
		}
	}
}
