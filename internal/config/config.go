package config

import (
	"strings"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Workout  WorkoutConfig  `mapstructure:"workout"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// WorkoutConfig holds the fallback defaults for user-tunable settings.
// Stored settings override these; these override the compile-time defaults.
type WorkoutConfig struct {
	RestTimerSeconds int     `mapstructure:"rest_timer_seconds"`
	WeightIncrement  float64 `mapstructure:"weight_increment"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override the file, e.g.
	// database.uri -> DATABASE_URI, workout.rest_timer_seconds -> WORKOUT_REST_TIMER_SECONDS.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "workout_tracker")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("workout.rest_timer_seconds", domain.DefaultRestTimerSeconds)
	viper.SetDefault("workout.weight_increment", domain.DefaultWeightIncrement)

	err = viper.ReadInConfig()
	// A missing config file is fine; defaults and env vars carry the run.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
