package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type UploadConfig struct {
	MaxRows      int      `yaml:"max_rows"`
	RequiredCols []string `yaml:"required_cols"`
}

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	OpsChatID int64  `yaml:"ops_chat_id"`
	Enabled   bool   `yaml:"enabled"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		AccessTTLMins int    `yaml:"access_ttl_minutes"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		HREmail      string `yaml:"hr_email"`
	} `yaml:"email"`
	Reports struct {
		Dir string `yaml:"dir"` // where exported PDFs land
	} `yaml:"reports"`
	Upload   UploadConfig   `yaml:"upload"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Auth.AccessTTLMins <= 0 {
		cfg.Auth.AccessTTLMins = 15
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = "./reports"
	}
	if cfg.Upload.MaxRows <= 0 {
		cfg.Upload.MaxRows = 5000
	}
	return &cfg
}
