// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/syirilrakhulh/oddbit-player/constant"
	"github.com/syirilrakhulh/oddbit-player/filesystem"
	"github.com/syirilrakhulh/oddbit-player/key"
	"github.com/syirilrakhulh/oddbit-player/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// legacyEnv maps keys to the bare environment variables understood by earlier deployments of the server.
var legacyEnv = map[string]string{
	key.ServerPort: "PORT",
}

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Oddbit)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Oddbit)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		if legacy, ok := legacyEnv[env]; ok {
			viper.MustBindEnv(env, Field{Key: env}.Env(), legacy)
			continue
		}
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// LegacyEnv returns the bare environment variable names bound alongside the prefixed ones.
func LegacyEnv() []string {
	return lo.Values(legacyEnv)
}

// Path returns the location of the TOML configuration file, whether or not it exists yet.
func Path() string {
	return filepath.Join(where.Config(), constant.Oddbit+".toml")
}
