package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONConfig представляет файл конфигурации. Поля-указатели позволяют
// отличить отсутствующее значение от нулевого.
type JSONConfig struct {
	ServerAddress     *string `json:"server_address"`
	StaticDir         *string `json:"static_dir"`
	MaxBatchSize      *int    `json:"max_batch_size"`
	WorkerPoolSize    *int    `json:"worker_pool_size"`
	DefaultLanguage   *string `json:"default_language"`
	FetchTimeout      *string `json:"fetch_timeout"`
	TitleTimeout      *string `json:"title_timeout"`
	EnableTitleLookup *bool   `json:"title_lookup"`
	ProxyURL          *string `json:"proxy_url"`
	CookiesFile       *string `json:"cookies_file"`
	WorkerURL         *string `json:"worker_url"`
	EnableHTTPS       *bool   `json:"enable_https"`
	TLSCertFile       *string `json:"tls_cert_file"`
	TLSKeyFile        *string `json:"tls_key_file"`

	fetchTimeout time.Duration
	titleTimeout time.Duration
}

// LoadJSONConfig читает JSON-файл конфигурации. Пустой путь дает пустую конфигурацию.
func LoadJSONConfig(path string) (*JSONConfig, error) {
	jc := &JSONConfig{}
	if path == "" {
		return jc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, jc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.FetchTimeout != nil {
		if jc.fetchTimeout, err = time.ParseDuration(*jc.FetchTimeout); err != nil {
			return nil, fmt.Errorf("fetch_timeout: %w", err)
		}
	}
	if jc.TitleTimeout != nil {
		if jc.titleTimeout, err = time.ParseDuration(*jc.TitleTimeout); err != nil {
			return nil, fmt.Errorf("title_timeout: %w", err)
		}
	}
	return jc, nil
}

// applyTo переносит заданные в файле значения в cfg, пропуская поля,
// которые уже указаны флагами командной строки.
func (jc *JSONConfig) applyTo(cfg *Config, flags map[string]bool) {
	setString := func(flagName string, dst *string, v *string) {
		if v != nil && !flags[flagName] {
			*dst = *v
		}
	}
	setInt := func(flagName string, dst *int, v *int) {
		if v != nil && !flags[flagName] {
			*dst = *v
		}
	}

	setString("a", &cfg.ServerAddress, jc.ServerAddress)
	setString("s", &cfg.StaticDir, jc.StaticDir)
	setInt("m", &cfg.MaxBatchSize, jc.MaxBatchSize)
	setInt("w", &cfg.WorkerPoolSize, jc.WorkerPoolSize)
	setString("l", &cfg.DefaultLanguage, jc.DefaultLanguage)
	setString("p", &cfg.ProxyURL, jc.ProxyURL)
	setString("k", &cfg.CookiesFile, jc.CookiesFile)
	setString("", &cfg.WorkerURL, jc.WorkerURL)
	setString("", &cfg.TLSCertFile, jc.TLSCertFile)
	setString("", &cfg.TLSKeyFile, jc.TLSKeyFile)

	if jc.FetchTimeout != nil {
		cfg.FetchTimeout = jc.fetchTimeout
	}
	if jc.TitleTimeout != nil {
		cfg.TitleTimeout = jc.titleTimeout
	}
	if jc.EnableTitleLookup != nil {
		cfg.EnableTitleLookup = *jc.EnableTitleLookup
	}
	if jc.EnableHTTPS != nil {
		cfg.EnableHTTPS = ""
		if *jc.EnableHTTPS {
			cfg.EnableHTTPS = "true"
		}
	}
}
