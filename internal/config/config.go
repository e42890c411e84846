// Package config загружает настройки клиента и сервера из флагов,
// переменных окружения, файла конфигурации и .env.
//
// Приоритет (от высшего): флаг командной строки, переменная окружения,
// файл конфигурации, значение флага по умолчанию.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Префиксы переменных окружения
const (
	ClientEnvPrefix = "GOPHBLOG"
	ServerEnvPrefix = "GOPHBLOG_SERVER"
)

// FlagConfig имя флага с путем к файлу конфигурации
const FlagConfig = "config"

// Client настройки CLI клиента
type Client struct {
	APIURL    string        `mapstructure:"api-url"`
	UploadURL string        `mapstructure:"upload-url"`
	DBPath    string        `mapstructure:"db"`
	LogLevel  string        `mapstructure:"log-level"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Server настройки эталонного бэкенда
type Server struct {
	Addr          string        `mapstructure:"addr"`
	DBPath        string        `mapstructure:"db"`
	JWTSecret     string        `mapstructure:"jwt-secret"`
	UploadDir     string        `mapstructure:"upload-dir"`
	PublicURL     string        `mapstructure:"public-url"`
	LogLevel      string        `mapstructure:"log-level"`
	TokenTTL      time.Duration `mapstructure:"token-ttl"`
	MaxUploadSize int64         `mapstructure:"max-upload-size"`
}

var (
	// ErrInvalidURL адрес сервиса не является абсолютным http(s) URL
	ErrInvalidURL = errors.New("invalid service url")

	// ErrMissingSecret не задан секрет для подписи токенов
	ErrMissingSecret = errors.New("jwt-secret is required")
)

// LoadEnvFiles загружает переменные из .env файлов.
// Отсутствующие файлы пропускаются, уже заданные переменные не перезаписываются.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ClientFlags регистрирует флаги клиента
func ClientFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "http://localhost:8080", "Blog backend URL")
	fs.String("upload-url", "", "Media upload service URL (default: api-url)")
	fs.String("db", "gophblog.db", "Path to local database")
	fs.Duration("timeout", 30*time.Second, "HTTP request timeout, 0 disables it")
	fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	fs.String(FlagConfig, "", "Path to config file (yaml, toml or json)")
}

// ServerFlags регистрирует флаги сервера
func ServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8080", "Listen address")
	fs.String("db", "gophblog-server.db", "Path to SQLite database")
	fs.String("jwt-secret", "", "Secret used to sign access tokens")
	fs.Duration("token-ttl", 24*time.Hour, "Access token lifetime")
	fs.String("upload-dir", "uploads", "Directory for uploaded media")
	fs.String("public-url", "", "Public base URL of uploaded files (default: http://<addr>)")
	fs.Int64("max-upload-size", 10<<20, "Maximum upload size in bytes")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String(FlagConfig, "", "Path to config file (yaml, toml or json)")
}

// LoadClient собирает настройки клиента
func LoadClient(fs *pflag.FlagSet) (Client, error) {
	var cfg Client
	if err := load(fs, ClientEnvPrefix, &cfg); err != nil {
		return Client{}, err
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.UploadURL = strings.TrimRight(cfg.UploadURL, "/")
	if cfg.UploadURL == "" {
		cfg.UploadURL = cfg.APIURL
	}

	if err := validateURL("api-url", cfg.APIURL); err != nil {
		return Client{}, err
	}
	if err := validateURL("upload-url", cfg.UploadURL); err != nil {
		return Client{}, err
	}
	if cfg.Timeout < 0 {
		return Client{}, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Client{}, err
	}

	return cfg, nil
}

// LoadServer собирает настройки сервера
func LoadServer(fs *pflag.FlagSet) (Server, error) {
	var cfg Server
	if err := load(fs, ServerEnvPrefix, &cfg); err != nil {
		return Server{}, err
	}

	if cfg.JWTSecret == "" {
		return Server{}, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return Server{}, fmt.Errorf("token-ttl must be positive: %s", cfg.TokenTTL)
	}
	if cfg.MaxUploadSize <= 0 {
		return Server{}, fmt.Errorf("max-upload-size must be positive: %d", cfg.MaxUploadSize)
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://" + publicHost(cfg.Addr)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	if err := validateURL("public-url", cfg.PublicURL); err != nil {
		return Server{}, err
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Server{}, err
	}

	return cfg, nil
}

func load(fs *pflag.FlagSet, prefix string, out any) error {
	v := viper.New()

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path := v.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s=%q", ErrInvalidURL, name, raw)
	}
	return nil
}

// publicHost превращает адрес прослушивания в хост для ссылок
func publicHost(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
