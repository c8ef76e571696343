// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. A .env file, when present, is
// folded into the environment first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	MongoURI        string `yaml:"mongo_uri"`
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`

	ArchivePath string `yaml:"archive_path"`

	StorageBackend string      `yaml:"storage_backend"` // local or minio
	LocalDirectory string      `yaml:"local_directory"`
	Minio          MinioConfig `yaml:"minio"`

	AcceptedYears []int `yaml:"accepted_years"`
	MaxUploadMB   int64 `yaml:"max_upload_mb"`

	JWTSecret    string `yaml:"jwt_secret"`
	PasswordHash string `yaml:"password_hash"`
}

func defaults() Config {
	return Config{
		ListenAddr:      ":8080",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "journey_map",
		MongoCollection: "user_photos_raw",
		ArchivePath:     "./data/journeys.db",
		StorageBackend:  "local",
		LocalDirectory:  "./.uploads",
		AcceptedYears:   []int{2024},
		MaxUploadMB:     200,
	}
}

// Load reads the config file at path (optional; missing file is fine) and
// applies environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	// Optional; absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.MongoURI, "MONGO_URI")
	setString(&cfg.MongoDatabase, "MONGO_DATABASE")
	setString(&cfg.MongoCollection, "MONGO_COLLECTION")
	setString(&cfg.ArchivePath, "ARCHIVE_PATH")
	setString(&cfg.StorageBackend, "STORAGE_BACKEND")
	setString(&cfg.LocalDirectory, "LOCAL_DIRECTORY")
	setString(&cfg.Minio.Endpoint, "MINIO_HOST")
	setString(&cfg.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Minio.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Minio.UseSSL = b
		}
	}
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.PasswordHash, "PW")

	if v := os.Getenv("ACCEPTED_YEARS"); v != "" {
		var years []int
		for _, part := range strings.Split(v, ",") {
			y, err := strconv.Atoi(strings.TrimSpace(part))
			if err == nil {
				years = append(years, y)
			}
		}
		cfg.AcceptedYears = years
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadMB = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
