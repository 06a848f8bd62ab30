package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	Port           string        `yaml:"port"`
	AppEnv         string        `yaml:"app_env"`
	RedisAddr      string        `yaml:"redis_addr"`
	KafkaBroker    string        `yaml:"kafka_broker"`
	AuditTopic     string        `yaml:"audit_topic"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	RememberTTL    time.Duration `yaml:"remember_ttl"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	// RBACPolicyFile kosong berarti memakai policy bawaan yang di-embed.
	RBACPolicyFile string `yaml:"rbac_policy_file"`
}

func Default() Config {
	return Config{
		Port:           "3000",
		AppEnv:         EnvDevelopment,
		AuditTopic:     "dashboard.audit",
		BackendTimeout: 10 * time.Second,
		SessionTTL:     12 * time.Hour,
		RememberTTL:    30 * 24 * time.Hour,
		CORSOrigins:    []string{"http://localhost:3000"},
	}
}

// Load membaca file YAML (opsional, boleh tidak ada) lalu menimpa nilainya
// dengan environment variable. Urutan prioritas: env > file > default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	backend := getenvFirst("NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL")
	if backend != "" {
		cfg.BackendURL = backend
	}
	setString(&cfg.Port, "PORT")
	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.KafkaBroker, "KAFKA_BROKER")
	setString(&cfg.AuditTopic, "AUDIT_TOPIC")
	setString(&cfg.RBACPolicyFile, "RBAC_POLICY_FILE")

	for key, dst := range map[string]*time.Duration{
		"BACKEND_TIMEOUT": &cfg.BackendTimeout,
		"SESSION_TTL":     &cfg.SessionTTL,
		"REMEMBER_TTL":    &cfg.RememberTTL,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}

	if v := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.AppEnv = strings.ToLower(cfg.AppEnv)
	return nil
}

func (c Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("NEXT_PUBLIC_BACKEND_URL is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("NEXT_PUBLIC_BACKEND_URL must be an absolute http(s) url, got %q", c.BackendURL)
	}
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}
	if c.SessionTTL <= 0 || c.RememberTTL <= 0 {
		return errors.New("session ttl values must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getenvFirst(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
