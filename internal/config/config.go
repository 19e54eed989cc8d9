// Package config собирает конфигурацию сервиса из значений по умолчанию,
// JSON-файла, флагов командной строки и переменных окружения.
// Приоритет: по умолчанию < JSON-файл < флаги < переменные окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Значения по умолчанию
const (
	DefaultServerAddress  = ":8080"
	DefaultStaticDir      = "static"
	DefaultMaxBatchSize   = 50
	DefaultWorkerPoolSize = 5
	DefaultLanguage       = "ko"
	DefaultFetchTimeout   = 30 * time.Second
	DefaultTitleTimeout   = 5 * time.Second
	DefaultTitleLookup    = true
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS"` // Адрес для запуска HTTP-сервера
	StaticDir     string `env:"STATIC_DIR"`     // Каталог со статической страницей

	MaxBatchSize    int    `env:"MAX_BATCH_SIZE"`   // Максимум URL в одном запросе
	WorkerPoolSize  int    `env:"WORKER_POOL_SIZE"` // Число одновременных сетевых вызовов
	DefaultLanguage string `env:"DEFAULT_LANGUAGE"` // Язык субтитров, если клиент его не указал

	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT"` // Таймаут одной попытки получить субтитры
	TitleTimeout      time.Duration `env:"TITLE_TIMEOUT"` // Таймаут поиска названия видео
	EnableTitleLookup bool          `env:"TITLE_LOOKUP"`  // Искать ли названия видео

	ProxyURL    string `env:"YT_PROXY_URL"`    // Прокси для запросов к YouTube
	CookiesFile string `env:"YT_COOKIES_FILE"` // cookies.txt для авторизованного клиента
	WorkerURL   string `env:"YT_WORKER_URL"`   // Воркер, пересылающий запросы к YouTube

	EnableHTTPS string `env:"ENABLE_HTTPS"`  // Любое непустое значение включает HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"` // Путь к сертификату
	TLSKeyFile  string `env:"TLS_KEY_FILE"`  // Путь к ключу

	ConfigFile string `env:"CONFIG"` // Путь к JSON-файлу конфигурации
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		ServerAddress:     DefaultServerAddress,
		StaticDir:         DefaultStaticDir,
		MaxBatchSize:      DefaultMaxBatchSize,
		WorkerPoolSize:    DefaultWorkerPoolSize,
		DefaultLanguage:   DefaultLanguage,
		FetchTimeout:      DefaultFetchTimeout,
		TitleTimeout:      DefaultTitleTimeout,
		EnableTitleLookup: DefaultTitleLookup,
		TLSCertFile:       "server.crt",
		TLSKeyFile:        "server.key",
	}
}

// NewConfig инициализирует конфигурацию, читая флаги и переменные окружения.
func NewConfig() (*Config, error) {
	cfg := Default()

	// 1. Определение флагов командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.StaticDir, "s", cfg.StaticDir, "Каталог статической страницы (env: STATIC_DIR)")
	flag.IntVar(&cfg.MaxBatchSize, "m", cfg.MaxBatchSize, "Максимум URL в запросе (env: MAX_BATCH_SIZE)")
	flag.IntVar(&cfg.WorkerPoolSize, "w", cfg.WorkerPoolSize, "Размер пула сетевых вызовов (env: WORKER_POOL_SIZE)")
	flag.StringVar(&cfg.DefaultLanguage, "l", cfg.DefaultLanguage, "Язык субтитров по умолчанию (env: DEFAULT_LANGUAGE)")
	flag.StringVar(&cfg.ProxyURL, "p", cfg.ProxyURL, "Прокси для YouTube (env: YT_PROXY_URL)")
	flag.StringVar(&cfg.CookiesFile, "k", cfg.CookiesFile, "Файл cookies.txt (env: YT_COOKIES_FILE)")
	flag.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "JSON-файл конфигурации (env: CONFIG)")

	// 2. Парсинг флагов командной строки
	flag.Parse()

	// 3. JSON-файл применяется только к полям, не заданным флагами
	path := cfg.ConfigFile
	if p, ok := lookupConfigPath(); ok {
		path = p
	}
	if path != "" {
		jc, err := LoadJSONConfig(path)
		if err != nil {
			return nil, err
		}
		jc.applyTo(cfg, setFlags())
	}

	// 4. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// lookupConfigPath читает только переменную CONFIG, до разбора остальных
func lookupConfigPath() (string, bool) {
	var c struct {
		Path string `env:"CONFIG"`
	}
	if err := env.Parse(&c); err != nil || c.Path == "" {
		return "", false
	}
	return c.Path, true
}

// setFlags возвращает имена флагов, явно указанных в командной строке
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error
	if c.MaxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("max batch size must be positive, got %d", c.MaxBatchSize))
	}
	if c.WorkerPoolSize <= 0 {
		errs = append(errs, fmt.Errorf("worker pool size must be positive, got %d", c.WorkerPoolSize))
	}
	if c.DefaultLanguage == "" {
		errs = append(errs, errors.New("default language must not be empty"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if c.IsHTTPSEnabled() && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		errs = append(errs, errors.New("HTTPS requires TLS_CERT_FILE and TLS_KEY_FILE"))
	}
	return errors.Join(errs...)
}

// IsHTTPSEnabled сообщает, включен ли HTTPS
func (c *Config) IsHTTPSEnabled() bool {
	return c.EnableHTTPS != ""
}
