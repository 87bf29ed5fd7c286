package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the designer configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	History HistoryConfig `mapstructure:"history"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"gte=0,lte=65535"`
	APIPrefix       string        `mapstructure:"api_prefix" validate:"required,startswith=/,endsnotwith=/"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// AuthConfig enables bearer token authentication when Secret is set
type AuthConfig struct {
	Secret   string        `mapstructure:"secret" validate:"omitempty,min=16"`
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// HistoryConfig bounds the undo history of each session
type HistoryConfig struct {
	Depth int `mapstructure:"depth" validate:"gte=1,lte=1000"`
}

// OutputConfig controls where generated notebooks are written
type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// Address returns host:port for the HTTP listener.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	return v
}

// Load loads the configuration from designer.yml or designer.yaml in the
// current directory, or from path when it is not empty. Environment
// variables prefixed with DESIGNER_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.api_prefix", "/api/v1")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 5<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("history.depth", 50)
	v.SetDefault("output.dir", ".")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("designer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DESIGNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration and reports every invalid key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	problems := make([]string, len(verrs))
	for i, fe := range verrs {
		problems[i] = fmt.Sprintf("%s failed %s", configKey(fe.Namespace()), fe.Tag())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// configKey turns "Config.server.api_prefix" into "server.api_prefix".
func configKey(namespace string) string {
	return strings.TrimPrefix(namespace, "Config.")
}
