package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Blob storage drivers.
const (
	BlobDriverS3   = "s3"
	BlobDriverDisk = "disk"
	BlobDriverNone = "none"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"3000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"DB_MAX_IDLE_TIME" env-default:"15m"`
	} `yaml:"database"`
	Blob struct {
		Driver    string `yaml:"driver" env:"BLOB_DRIVER" env-default:"s3"`
		Dir       string `yaml:"dir" env:"BLOB_DIR" env-default:"uploads"`
		PublicURL string `yaml:"public_url" env:"BLOB_PUBLIC_URL"`
	} `yaml:"blob"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
		Region          string `yaml:"region" env:"S3_REGION"`
		Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
		Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"LIMITER_RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED" env-default:"false"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"CORS_TRUSTED_ORIGINS" env-separator:" " env-default:"*"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASIC_AUTH_USERNAME"`
		Password string `yaml:"password" env:"BASIC_AUTH_PASSWORD"`
	} `yaml:"basic_auth"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	} `yaml:"log"`
}

// Decode reads the configuration. Variables from a .env file in the working
// directory are loaded first, then the optional YAML file at path, and finally
// the environment, which overrides both.
func Decode(path string) (Config, error) {
	var cfg Config
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BlobEnabled reports whether cover image uploads have a backend configured.
func (c Config) BlobEnabled() bool {
	switch c.Blob.Driver {
	case BlobDriverS3:
		return c.S3.Bucket != ""
	case BlobDriverDisk:
		return c.Blob.Dir != ""
	default:
		return false
	}
}
