package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	SessionModeStatic = "static"
	SessionModeSigned = "signed"
)

type Config struct {
	Server struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		FunctionsPort   int    `yaml:"functions_port"`
		Env             string `yaml:"env"`
		ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
	} `yaml:"server"`

	Database Database `yaml:"database"`

	Auth struct {
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `yaml:"admin_password"`
		SessionMode   string `yaml:"session_mode"` // static, signed
		Secret        string `yaml:"secret"`       // HMAC key for signed mode
	} `yaml:"auth"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		ContactTo    string `yaml:"contact_to"`
	} `yaml:"email"`

	Storage Storage `yaml:"storage"`

	Upload struct {
		ArtworkMaxSize int64 `yaml:"artwork_max_size"`
		ResumeMaxSize  int64 `yaml:"resume_max_size"`
		ThumbnailWidth int   `yaml:"thumbnail_width"`
		ImageQuality   int   `yaml:"image_quality"` // JPEG quality (1-100)
	} `yaml:"upload"`

	Resume ResumeDefaults `yaml:"resume"`
}

type Database struct {
	Driver       string `yaml:"driver"` // postgres, mysql, sqlite
	URL          string `yaml:"url"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	LogSQL       bool   `yaml:"log_sql"`
}

type Storage struct {
	Type      string `yaml:"type"`       // local, s3, cloudflare_r2
	BasePath  string `yaml:"base_path"`  // For local storage
	BaseURL   string `yaml:"base_url"`   // Public URL base
	Bucket    string `yaml:"bucket"`     // For S3/R2
	Region    string `yaml:"region"`     // For S3
	AccessKey string `yaml:"access_key"` // For S3/R2
	SecretKey string `yaml:"secret_key"` // For S3/R2
	Endpoint  string `yaml:"endpoint"`   // For R2 or custom S3
}

// ResumeDefaults - значения singleton-настроек резюме, пока ничего не загружено
type ResumeDefaults struct {
	Filename    string `yaml:"filename"`
	DisplayName string `yaml:"display_name"`
	FileURL     string `yaml:"file_url"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.FunctionsPort = 8888
	cfg.Server.Env = "development"
	cfg.Server.ShutdownTimeout = 10

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5

	cfg.Auth.SessionMode = SessionModeStatic

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Portfolio"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"
	cfg.Storage.Region = "auto"

	cfg.Upload.ArtworkMaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.ResumeMaxSize = 5 * 1024 * 1024   // 5MB
	cfg.Upload.ThumbnailWidth = 400
	cfg.Upload.ImageQuality = 85

	cfg.Resume.Filename = "resume.pdf"
	cfg.Resume.DisplayName = "Resume"
	cfg.Resume.FileURL = ""

	return &cfg
}

// Load читает .env, затем yaml-файл (если есть), затем переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("config file %s not found, using environment only", path)
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Env, "SERVER_ENV")
	setInt(&c.Server.Port, "SERVER_PORT", "PORT")
	setInt(&c.Server.FunctionsPort, "FUNCTIONS_PORT")

	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL", "MONGODB_URI")
	setString(&c.Database.Name, "DATABASE_NAME", "MONGODB_DB")

	setString(&c.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&c.Auth.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.Auth.SessionMode, "SESSION_MODE")
	setString(&c.Auth.Secret, "SESSION_SECRET")

	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "SMTP_FROM")
	setString(&c.Email.ContactTo, "CONTACT_TO")

	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&c.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.Region, "STORAGE_REGION")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
}

// Validate проверяет обязательные параметры и сообщает обо всех пропусках сразу
func (c *Config) Validate() error {
	var missing []string

	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Database.Name == "" && c.Database.Driver != "sqlite" {
		missing = append(missing, "DATABASE_NAME")
	}
	if c.Auth.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if c.Auth.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if c.Auth.SessionMode == SessionModeSigned && c.Auth.Secret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if c.Storage.Type != "local" {
		if c.Storage.AccessKey == "" {
			missing = append(missing, "STORAGE_ACCESS_KEY")
		}
		if c.Storage.SecretKey == "" {
			missing = append(missing, "STORAGE_SECRET_KEY")
		}
		if c.Storage.Bucket == "" {
			missing = append(missing, "STORAGE_BUCKET")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Auth.SessionMode {
	case SessionModeStatic, SessionModeSigned:
	default:
		return fmt.Errorf("unsupported session mode %q", c.Auth.SessionMode)
	}

	return nil
}

// SMTPEnabled - отправка почты настроена
func (c *Config) SMTPEnabled() bool {
	return c.Email.SMTPHost != "" && c.Email.SMTPUsername != "" && c.Email.SMTPPassword != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func setString(dst *string, keys ...string) {
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, keys ...string) {
	for _, key := range keys {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("ignoring %s=%q: %v", key, v, err)
			continue
		}
		*dst = n
		return
	}
}
