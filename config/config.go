package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // relay-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type WS struct {
	PingInterval    string `yaml:"pingInterval"`    // 15s
	WriteTimeout    string `yaml:"writeTimeout"`    // 5s
	MaxMessageBytes int64  `yaml:"maxMessageBytes"` // 1048576
}

type Relay struct {
	TypingTTL           string `yaml:"typingTTL"`           // 5s
	TypingSweepInterval string `yaml:"typingSweepInterval"` // 1s
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"` // пусто = любые (dev)
}

type Config struct {
	HTTP    HTTP    `yaml:"http"`
	Logging Logging `yaml:"logging"`
	WS      WS      `yaml:"ws"`
	Relay   Relay   `yaml:"relay"`
	CORS    CORS    `yaml:"cors"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "relay-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	return nil
}

func (w WS) PingIntervalDur() time.Duration {
	return parseDurationOr(15*time.Second, w.PingInterval)
}

func (w WS) WriteTimeoutDur() time.Duration {
	return parseDurationOr(5*time.Second, w.WriteTimeout)
}

func (r Relay) TypingTTLDur() time.Duration {
	return parseDurationOr(5*time.Second, r.TypingTTL)
}

func (r Relay) TypingSweepIntervalDur() time.Duration {
	return parseDurationOr(time.Second, r.TypingSweepInterval)
}

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
