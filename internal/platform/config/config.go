package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultReminderCron    = "0 8 * * *"
	DefaultReminderMessage = "Don't forget to feed your pet!"
)

// Config es la configuración completa del servicio.
// Orden de carga: defaults -> YAML (CONFIG_PATH o --config) -> variables de entorno.
type Config struct {
	Env     string `yaml:"env"`
	AppName string `yaml:"appName"`
	Port    string `yaml:"port"`

	DatabaseDSN string `yaml:"databaseDSN"`

	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`

	UploadDir         string `yaml:"uploadDir"`
	MediaPublicURL    string `yaml:"mediaPublicURL"`
	DiaryMaxFiles     int    `yaml:"diaryMaxFiles"`
	DiaryMaxFileBytes int64  `yaml:"diaryMaxFileBytes"`
	PetImageMaxBytes  int64  `yaml:"petImageMaxBytes"`

	CORSOrigins []string `yaml:"corsOrigins"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	ReminderCron    string `yaml:"reminderCron"`
	ReminderMessage string `yaml:"reminderMessage"`

	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisChannel  string `yaml:"redisChannel"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
}

func Defaults() Config {
	return Config{
		Env:               EnvDevelopment,
		AppName:           "pet-care-tracker",
		Port:              "5000",
		TokenTTL:          24 * time.Hour,
		UploadDir:         "uploads",
		MediaPublicURL:    "http://localhost:5000/uploads",
		DiaryMaxFiles:     5,
		DiaryMaxFileBytes: 100 << 20,
		PetImageMaxBytes:  5 << 20,
		CORSOrigins:       []string{"http://localhost:3000"},
		LogLevel:          "info",
		LogFormat:         "text",
		ReminderCron:      DefaultReminderCron,
		ReminderMessage:   DefaultReminderMessage,
		RedisChannel:      "petcare:notifications",
	}
}

// LoadDotenv busca un .env en el cwd o hasta dos niveles arriba.
// Si no existe no es error (en prod las vars vienen del entorno).
func LoadDotenv() string {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return p
		}
	}
	return ""
}

// Load arma la configuración. path vacío => CONFIG_PATH; si tampoco hay, solo defaults + env.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.AppName, "APP_NAME")
	setString(&cfg.Port, "PORT")
	setString(&cfg.DatabaseDSN, "DB_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setString(&cfg.MediaPublicURL, "MEDIA_PUBLIC_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.ReminderCron, "REMINDER_CRON")
	setString(&cfg.ReminderMessage, "REMINDER_MESSAGE")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisChannel, "REDIS_CHANNEL")
	setString(&cfg.MinioEndpoint, "MINIO_ENDPOINT")
	setString(&cfg.MinioAccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.MinioSecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.MinioBucket, "MINIO_BUCKET")

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.MinioUseSSL = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("DIARY_MAX_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DIARY_MAX_FILES: %w", err)
		}
		cfg.DiaryMaxFiles = n
	}
	if v := os.Getenv("DIARY_MAX_FILE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: DIARY_MAX_FILE_BYTES: %w", err)
		}
		cfg.DiaryMaxFileBytes = n
	}
	if v := os.Getenv("PET_IMAGE_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: PET_IMAGE_MAX_BYTES: %w", err)
		}
		cfg.PetImageMaxBytes = n
	}
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("config: port is required")
	}
	if cfg.IsProduction() && strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET is required in production")
	}
	if cfg.IsProduction() && strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return errors.New("config: DB_DSN is required in production")
	}
	if cfg.DiaryMaxFiles <= 0 || cfg.DiaryMaxFileBytes <= 0 || cfg.PetImageMaxBytes <= 0 {
		return errors.New("config: upload limits must be positive")
	}
	if cfg.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	if cfg.MinioEndpoint != "" && (cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "") {
		return errors.New("config: minio requires access key, secret key and bucket")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
