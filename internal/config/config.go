package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HTTPPort           int     `yaml:"http_port"`
	JwtTTLSeconds      int     `yaml:"jwt_ttl_seconds"`
	OtpLength          int     `yaml:"otp_length"`
	OtpTTLSeconds      int     `yaml:"otp_ttl_seconds"`
	AllowedEmailDomain string  `yaml:"allowed_email_domain"` // e.g. "@webknot.in"
	CORSOrigin         string  `yaml:"cors_origin"`
	LogLevel           string  `yaml:"log_level"`
	LogJSON            bool    `yaml:"log_json"`
	Scoring            Scoring `yaml:"scoring"`
}

// Scoring configures the external AI webhook. An empty URL disables forwarding.
type Scoring struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
	Smtp   Smtp   `yaml:"smtp"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Smtp struct {
	Server         string `yaml:"server"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	SenderName     string `yaml:"sender_name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	if c.Public.JwtTTLSeconds == 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Public.JwtTTLSeconds) * time.Second
}

func (c *Config) OtpTTL() time.Duration {
	if c.Public.OtpTTLSeconds == 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Public.OtpTTLSeconds) * time.Second
}

func (c *Config) OtpLength() int {
	if c.Public.OtpLength == 0 {
		return 6
	}
	return c.Public.OtpLength
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// Missing secrets are a fatal misconfiguration, not a per-request error.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if private.JwtKey == "" {
		panic("jwt_key missing from private config")
	}
	if private.Smtp.Username == "" || private.Smtp.Password == "" {
		panic("smtp credentials missing from private config")
	}

	return &Config{public, private}
}
