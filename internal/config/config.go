// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string   `mapstructure:"app_env"`
	HTTPAddr    string   `mapstructure:"http_addr" validate:"required"`
	LogLevel    string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string   `mapstructure:"log_format" validate:"oneof=json console"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Upstream APIs
	UserAgent       string        `mapstructure:"user_agent" validate:"required"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	NominatimURL    string        `mapstructure:"nominatim_url" validate:"required,url"`
	OpenMeteoURL    string        `mapstructure:"open_meteo_url" validate:"required,url"`
	OverpassURL     string        `mapstructure:"overpass_url" validate:"required,url"`
	POIRadiusMeters int           `mapstructure:"poi_radius_meters" validate:"gt=0"`
	POILimit        int           `mapstructure:"poi_limit" validate:"gt=0,lte=20"`

	// Busy flag
	BusyTTL       time.Duration `mapstructure:"busy_ttl" validate:"gt=0"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"gte=0"`

	// Journal sinks, each optional
	DatabaseURL    string `mapstructure:"database_url" validate:"omitempty,url"`
	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`
	ResultsBucket  string `mapstructure:"results_bucket"`

	KafkaBroker      string `mapstructure:"kafka_broker"`
	KafkaQueryTopic  string `mapstructure:"kafka_query_topic"`
	KafkaResultTopic string `mapstructure:"kafka_result_topic"`
	KafkaGroupID     string `mapstructure:"kafka_group_id"`
}

var defaults = map[string]any{
	"app_env":            "development",
	"http_addr":          ":8080",
	"log_level":          "info",
	"log_format":         "console",
	"cors_origins":       []string{"*"},
	"user_agent":         "TourismApp/1.0",
	"http_timeout":       15 * time.Second,
	"nominatim_url":      "https://nominatim.openstreetmap.org",
	"open_meteo_url":     "https://api.open-meteo.com",
	"overpass_url":       "https://overpass-api.de",
	"poi_radius_meters":  10000,
	"poi_limit":          5,
	"busy_ttl":           2 * time.Minute,
	"redis_addr":         "",
	"redis_password":     "",
	"redis_db":           0,
	"database_url":       "",
	"minio_endpoint":     "",
	"minio_access_key":   "",
	"minio_secret_key":   "",
	"minio_use_ssl":      false,
	"results_bucket":     "travel-results",
	"kafka_broker":       "",
	"kafka_query_topic":  "",
	"kafka_result_topic": "",
	"kafka_group_id":     "",
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the process
// environment, which wins over both.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.ArchiveEnabled() && (c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		return errors.New("MINIO_ENDPOINT is set but MINIO_ACCESS_KEY or MINIO_SECRET_KEY is missing")
	}
	if c.ArchiveEnabled() && c.ResultsBucket == "" {
		return errors.New("RESULTS_BUCKET is required when MINIO_ENDPOINT is set")
	}
	return nil
}

func (c *Config) RedisEnabled() bool   { return c.RedisAddr != "" }
func (c *Config) HistoryEnabled() bool { return c.DatabaseURL != "" }
func (c *Config) ArchiveEnabled() bool { return c.MinioEndpoint != "" }

// PublishEnabled reports whether finished results go to a Kafka topic.
func (c *Config) PublishEnabled() bool {
	return c.KafkaBroker != "" && c.KafkaResultTopic != ""
}

// RequireWorker reports which settings the queue worker is missing.
func (c *Config) RequireWorker() error {
	var missing []string
	for key, val := range map[string]string{
		"KAFKA_BROKER":      c.KafkaBroker,
		"KAFKA_QUERY_TOPIC": c.KafkaQueryTopic,
		"KAFKA_GROUP_ID":    c.KafkaGroupID,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("environment variables not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
