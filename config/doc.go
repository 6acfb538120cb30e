// Package config loads the application configuration from config.yml and
// the environment.
package config
