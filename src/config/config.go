package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	AWS             AWSConfig            `mapstructure:"aws"`
	Report          ReportConfig         `mapstructure:"report"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// DSN builds the postgres connection string, preferring an explicit one.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type ExternalClientConfig struct {
	Backend BackendConfig `mapstructure:"backend"`
}

type BackendConfig struct {
	BaseURL      string        `mapstructure:"baseUrl"`
	ServiceToken string        `mapstructure:"serviceToken"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwtSecret"`
	JWTSecretID string `mapstructure:"jwtSecretId"`
}

type AWSConfig struct {
	Region       string `mapstructure:"region"`
	ReportBucket string `mapstructure:"reportBucket"`
}

type ReportConfig struct {
	Locale         string        `mapstructure:"locale"`
	CurrencySymbol string        `mapstructure:"currencySymbol"`
	ChartWidth     int           `mapstructure:"chartWidth"`
	ChartHeight    int           `mapstructure:"chartHeight"`
	ChartCacheTTL  time.Duration `mapstructure:"chartCacheTTL"`
	Layout         LayoutConfig  `mapstructure:"layout"`
}

type LayoutConfig struct {
	OverflowThreshold float64 `mapstructure:"overflowThreshold"`
	CustomerChunkSize int     `mapstructure:"customerChunkSize"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.allowedOrigins", []string{"*"})
	v.SetDefault("databases.sql.driver", "postgres")
	v.SetDefault("externalClients.backend.timeout", 15*time.Second)
	v.SetDefault("report.locale", "id-ID")
	v.SetDefault("report.currencySymbol", "Rp")
	v.SetDefault("report.chartWidth", 600)
	v.SetDefault("report.chartHeight", 300)
	v.SetDefault("report.chartCacheTTL", 10*time.Minute)
	v.SetDefault("report.layout.overflowThreshold", 250.0)
	v.SetDefault("report.layout.customerChunkSize", 20)
	v.SetDefault("logging.level", "info")
}

// LoadConfig reads settings/appsettings.yaml and, when env is set, merges
// appsettings.{env}.yaml on top. REPORTS_* environment variables win over both.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("REPORTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
