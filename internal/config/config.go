// Package config loads tool configuration from the environment, with an
// optional .env file for local use.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mgriffiths/gpsreport/internal/analysis"
	"github.com/mgriffiths/gpsreport/internal/garmin"
)

type Config struct {
	GarminEmail    string  `mapstructure:"GARMIN_EMAIL"`
	GarminPassword string  `mapstructure:"GARMIN_PASSWORD"`
	GarminBaseURL  string  `mapstructure:"GARMIN_BASE_URL"`
	DataDir        string  `mapstructure:"DATA_DIR"`
	CachePath      string  `mapstructure:"CACHE_PATH"`
	StillSpeed     float64 `mapstructure:"STILL_SPEED"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	// Keys without defaults must be bound explicitly for Unmarshal to
	// see them.
	_ = v.BindEnv("GARMIN_EMAIL")
	_ = v.BindEnv("GARMIN_PASSWORD")
	v.SetDefault("GARMIN_BASE_URL", garmin.DefaultBaseURL)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("CACHE_PATH", "./data/activities.db")
	v.SetDefault("STILL_SPEED", analysis.DefaultStillSpeed)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
