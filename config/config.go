package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Email     EmailConfig     `mapstructure:"email"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig selects the ledger store. Driver is one of mysql, postgres, sqlite.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"`
	LogLevel     string `mapstructure:"log_level"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// JWTConfig bearer token settings
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// LogConfig logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig limits login/register attempts per client IP
type RateLimitConfig struct {
	LoginAttempts int           `mapstructure:"login_attempts"`
	WindowSeconds int           `mapstructure:"window_seconds"`
	Window        time.Duration `mapstructure:"-"`
}

// EmailConfig SMTP settings for debt reminders
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LedgerConfig domain defaults
type LedgerConfig struct {
	DefaultCurrency string `mapstructure:"default_currency"`
	ReminderDays    int    `mapstructure:"reminder_days"`
}

var (
	// GlobalConfig process-wide configuration
	GlobalConfig *Config
)

// LoadConfig loads configuration.
// Precedence: environment (LEDGER_*) > external file > embedded defaults.
// A .env file in the working directory is loaded into the environment first.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			logrus.Warnf("cannot read config file %s: %v", configPath, err)
		} else {
			logrus.Infof("merged config file: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/ledgerapi")
		externalViper.AddConfigPath("$HOME/.ledgerapi")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				logrus.Warnf("merge external config: %v", err)
			} else {
				logrus.Infof("merged config file: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	GlobalConfig = &cfg

	return &cfg, nil
}

func (cfg *Config) normalize() {
	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 24
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour

	if cfg.RateLimit.LoginAttempts <= 0 {
		cfg.RateLimit.LoginAttempts = 5
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	cfg.RateLimit.Window = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	if cfg.Ledger.DefaultCurrency == "" {
		cfg.Ledger.DefaultCurrency = "UZS"
	}
	if cfg.Ledger.ReminderDays <= 0 {
		cfg.Ledger.ReminderDays = 3
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
}

// MustLoadConfig panics when configuration cannot be loaded
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialized, call LoadConfig first")
	}
	return GlobalConfig
}

// DefaultCurrency returns the configured currency, or UZS before config is loaded.
func DefaultCurrency() string {
	if GlobalConfig == nil || GlobalConfig.Ledger.DefaultCurrency == "" {
		return "UZS"
	}
	return GlobalConfig.Ledger.DefaultCurrency
}

// PrintConfig logs the active configuration with secrets omitted
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	db := GlobalConfig.Database
	target := fmt.Sprintf("%s@%s:%s/%s", db.Username, db.Host, db.Port, db.DBName)
	if db.Driver == "sqlite" {
		target = db.Path
	}
	logrus.WithFields(logrus.Fields{
		"port":     GlobalConfig.Server.Port,
		"mode":     GlobalConfig.Server.Mode,
		"driver":   db.Driver,
		"database": target,
		"email":    GlobalConfig.Email.Enabled,
		"currency": GlobalConfig.Ledger.DefaultCurrency,
	}).Info("active configuration")
}
