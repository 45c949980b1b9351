package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SeedAccount struct {
	CardNumber string `mapstructure:"card_number"`
	PIN        string `mapstructure:"pin"`
	Balance    string `mapstructure:"balance"`
}

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	JWT struct {
		SecretKey string        `mapstructure:"secret_key"`
		TTL       time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Admin struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"admin"`
	Limits struct {
		DailyWithdrawal string `mapstructure:"daily_withdrawal"`
		DailyDeposit    string `mapstructure:"daily_deposit"`
	} `mapstructure:"limits"`
	SeedAccounts []SeedAccount `mapstructure:"seed_accounts"`
}

var AppConfig Config

var defaultSeedAccounts = []map[string]any{
	{"card_number": "1234567890123456", "pin": "1234", "balance": "1000"},
	{"card_number": "2345678901234567", "pin": "2345", "balance": "2500"},
	{"card_number": "3456789012345678", "pin": "3456", "balance": "500"},
	{"card_number": "4567890123456789", "pin": "4567", "balance": "10000"},
	{"card_number": "5678901234567890", "pin": "5678", "balance": "750"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.secret_key", "change-me")
	v.SetDefault("jwt.ttl", "15m")
	v.SetDefault("admin.secret", "9999")
	v.SetDefault("limits.daily_withdrawal", "500")
	v.SetDefault("limits.daily_deposit", "10000")
	v.SetDefault("seed_accounts", defaultSeedAccounts)
}

// LoadConfig reads config.yml from path into AppConfig. A missing file is not
// an error; defaults and ATM_* environment variables still apply.
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}

// Load builds a Config without touching AppConfig.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("ATM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
