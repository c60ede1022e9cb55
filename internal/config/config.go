// Package config loads service configuration from a yaml file with
// APP_-prefixed environment overrides.
package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string
		// BaseURL is the externally visible address used to build
		// quote-approval links.
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	SMTP struct {
		Host     string
		Port     int
		User     string
		Password string
		From     string
	} `mapstructure:"smtp"`

	Storage struct {
		UploadDir string `mapstructure:"upload_dir"`
	} `mapstructure:"storage"`

	Log struct {
		Level string
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	CEP struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"cep"`

	mu sync.RWMutex
	v  *viper.Viper
}

// Load reads configuration from path. Environment variables with the APP_
// prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("cep.base_url", "https://viacep.com.br")
	v.SetDefault("cep.timeout", 5*time.Second)

	c := &Config{v: v}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

// SMTPConfig is the snapshot handed to the mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPSnapshot returns the current mail credentials. The mailer resolves
// credentials through this method so a Reload takes effect without restart.
func (c *Config) SMTPSnapshot() SMTPConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		User:     c.SMTP.User,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
	}
}

// Reload re-reads the configuration file in place. Only mail credentials are
// expected to change at runtime; structural settings require a restart.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.v.ReadInConfig(); err != nil {
		return err
	}
	return c.v.Unmarshal(c)
}
