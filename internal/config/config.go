package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Storage
	DatabaseDSN string `env:"DATABASE_URI"`

	// HTTP
	BaseURL string `env:"BASE_URL"`

	// Защита данных
	EncryptionKey       string `env:"ENCRYPTION_KEY"`
	EncryptionKeyCompat bool   `env:"ENCRYPTION_KEY_COMPAT"`

	// Лимитер запросов
	RateLimit         int `env:"RATE_LIMIT"`
	RateWindowSeconds int `env:"RATE_WINDOW_SECONDS"`

	// Режим отладки: детали ошибок хранилища в ответах API
	Debug bool `env:"DEBUG"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера в формате host:port")
	flag.StringVar(&cfg.EncryptionKey, "encryption-key", cfg.EncryptionKey, "32-байтовый ключ шифрования полей")
	flag.BoolVar(&cfg.EncryptionKeyCompat, "encryption-key-compat", cfg.EncryptionKeyCompat, "режим совместимости: выравнивать ключ до 32 байт")
	flag.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "число запросов с одного IP за окно")
	flag.IntVar(&cfg.RateWindowSeconds, "rate-window", cfg.RateWindowSeconds, "размер окна лимитера в секундах")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "отдавать детали ошибок хранилища в ответах")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "file:datakeeper.db?cache=shared"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 60
	}
	if cfg.RateWindowSeconds <= 0 {
		cfg.RateWindowSeconds = 3600
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	// EncryptionKey намеренно без значения по умолчанию: отсутствие ключа
	// должно валить запуск, а не тихо ослаблять защиту.

	return cfg
}
