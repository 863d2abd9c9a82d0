package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// RequestsPerMinute is the fixed-window rate limit applied to /api routes.
	RequestsPerMinute int
}

type UploadConfig struct {
	// Dir is where uploaded image assets land on disk.
	Dir string
	// BaseURL is the public base used to compose resolvable asset URLs,
	// e.g. http://localhost:8080 -> http://localhost:8080/uploads/<name>.
	BaseURL string
	// MaxBytes caps the size of a single uploaded image.
	MaxBytes int64
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("UPLOAD_BASE_URL", "http://localhost:8080")
	viper.SetDefault("UPLOAD_MAX_BYTES", 1<<20)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:              viper.GetString("REDIS_HOST"),
			Port:              viper.GetString("REDIS_PORT"),
			Password:          viper.GetString("REDIS_PASSWORD"),
			DB:                viper.GetInt("REDIS_DB"),
			RequestsPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Upload: UploadConfig{
			Dir:      viper.GetString("UPLOAD_DIR"),
			BaseURL:  viper.GetString("UPLOAD_BASE_URL"),
			MaxBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}
}
