package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// This is the global app config for the transaction handler.
type AppConfig struct {
	// Which acceptance policy a handler runs with, "naive" or "maxfee".
	POLICY string
	// How many bits the generated RSA keys have.
	KEY_BITS int
}

// DefaultAppConfig is what you get when no config file is supplied.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		POLICY:   "naive",
		KEY_BITS: 2048,
	}
}

// ParseAppConfig reads the app config from a yaml file.
func ParseAppConfig(path string) (AppConfig, error) {
	c := DefaultAppConfig()
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrap(err, "failed to unmarshal config file")
	}
	return c, nil
}
