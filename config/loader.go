package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. A .env
// file, when present, is folded into the environment first; environment
// variables override values from config.yml.
func LoadAppConfig() error {
	_ = godotenv.Load()

	paths := []string{"config.yml"}
	if p := os.Getenv("HARAIL_CONFIG"); p != "" {
		paths = []string{p}
	}
	var cfg AppConfig
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("HARAIL_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("HARAIL_GTFS"); v != "" {
		cfg.GTFS.Path = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Router.WindowHours == 0 {
		cfg.Router.WindowHours = 24
	}

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Router); err != nil {
		return err
	}
	Config = cfg
	return nil
}
