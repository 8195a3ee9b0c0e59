package main

import (
	"path/filepath"

	"github.com/gamerecs/gamerecs/internal/file"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	envconfigPrefix   = "GAMERECS"
	defaultAPIAddress = "http://localhost:8080"

	sessionStoreFile  = "file"
	sessionStoreRedis = "redis"
)

// envConfig is the configuration read from GAMERECS_* environment variables.
// Variable names are derived from field names.
type envConfig struct {
	APIAddress      string `split_words:"true"`
	Home            string
	SessionStore    string `split_words:"true" default:"file"`
	Insecure        bool
	FrontendAddress string `split_words:"true"`
	CallbackAddress string `split_words:"true" default:"localhost:4200"`
}

// savedConfig is what gamerecs remembers between runs in its config file.
type savedConfig struct {
	APIAddress string `json:"apiAddress"`
}

// config is the effective configuration: flags, then environment, then the
// config file, then defaults.
type config struct {
	APIAddress      string
	Home            string
	SessionStore    string
	Insecure        bool
	FrontendAddress string
	CallbackAddress string
}

func getConfig(c *cli.Context) (config, error) {
	env := envConfig{}
	if err := envconfig.Process(envconfigPrefix, &env); err != nil {
		return config{}, errors.Wrap(
			err,
			"error getting gamerecs configuration from environment",
		)
	}
	cfg := config{
		APIAddress:      env.APIAddress,
		Home:            env.Home,
		SessionStore:    env.SessionStore,
		Insecure:        env.Insecure || c.Bool(flagInsecure),
		FrontendAddress: env.FrontendAddress,
		CallbackAddress: env.CallbackAddress,
	}
	switch cfg.SessionStore {
	case sessionStoreFile, sessionStoreRedis:
	default:
		return cfg, errors.Errorf(
			"unknown session store %q; supported stores: %s, %s",
			cfg.SessionStore,
			sessionStoreFile,
			sessionStoreRedis,
		)
	}
	if cfg.Home == "" {
		home, err := getGamerecsHome()
		if err != nil {
			return cfg, err
		}
		cfg.Home = home
	}
	if server := c.String(flagServer); server != "" {
		cfg.APIAddress = server
	}
	if cfg.APIAddress == "" {
		saved, err := loadSavedConfig(cfg.Home)
		if err != nil {
			return cfg, err
		}
		cfg.APIAddress = saved.APIAddress
	}
	if cfg.APIAddress == "" {
		cfg.APIAddress = defaultAPIAddress
	}
	return cfg, nil
}

func (c config) sessionFile() string {
	return filepath.Join(c.Home, "session.json")
}

func configFile(home string) string {
	return filepath.Join(home, "config")
}

func loadSavedConfig(home string) (savedConfig, error) {
	saved := savedConfig{}
	if _, err := file.ReadJSON(configFile(home), &saved); err != nil {
		return saved, errors.Wrap(err, "error parsing gamerecs config file")
	}
	return saved, nil
}

func saveConfig(home string, saved savedConfig) error {
	return errors.Wrap(
		file.WriteJSON(configFile(home), saved),
		"error saving gamerecs config file",
	)
}

func getGamerecsHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return filepath.Join(homeDir, ".gamerecs"), nil
}
