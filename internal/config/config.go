package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type IntelConfig struct {
	ActiveTenderLimit int
	TopCompetitors    int
	SearchLimit       int
	WonTenderLimit    int
	AllowedOrigins    []string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Intel       IntelConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Intel: IntelConfig{
			ActiveTenderLimit: v.GetInt("INTEL_ACTIVE_TENDER_LIMIT"),
			TopCompetitors:    v.GetInt("INTEL_TOP_COMPETITORS"),
			SearchLimit:       v.GetInt("INTEL_SEARCH_LIMIT"),
			WonTenderLimit:    v.GetInt("INTEL_WON_TENDER_LIMIT"),
			AllowedOrigins:    parseList(v.GetString("INTEL_ALLOWED_ORIGINS")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8000
	}
	if cfg.Intel.ActiveTenderLimit == 0 {
		cfg.Intel.ActiveTenderLimit = 100
	}
	if cfg.Intel.TopCompetitors == 0 {
		cfg.Intel.TopCompetitors = 10
	}
	if cfg.Intel.SearchLimit == 0 {
		cfg.Intel.SearchLimit = 50
	}
	if cfg.Intel.WonTenderLimit == 0 {
		cfg.Intel.WonTenderLimit = 100
	}
	if len(cfg.Intel.AllowedOrigins) == 0 {
		cfg.Intel.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
