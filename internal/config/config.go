// Package config loads runtime settings from defaults, an optional
// portfolio.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/gksrikar/portfolio/internal/contact"
)

const envPrefix = "PORTFOLIO"

type Config struct {
	Addr      string  `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Port      string  `mapstructure:"port" validate:"required,numeric"`
	Mode      string  `mapstructure:"mode" validate:"oneof=debug release test"`
	DataDir   string  `mapstructure:"data_dir" validate:"required"`
	StaticDir string  `mapstructure:"static_dir"`
	OutputDir string  `mapstructure:"output_dir" validate:"required"`
	LogLevel  string  `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Contact   Contact `mapstructure:"contact"`
	SMTP      SMTP    `mapstructure:"smtp"`
	Sentry    Sentry  `mapstructure:"sentry"`
}

type Contact struct {
	Endpoint      string `mapstructure:"endpoint" validate:"required"`
	FallbackEmail string `mapstructure:"fallback_email" validate:"omitempty,email"`
}

type SMTP struct {
	Host string `mapstructure:"host" validate:"omitempty,hostname"`
	Port string `mapstructure:"port" validate:"omitempty,numeric"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to" validate:"omitempty,email"`
}

type Sentry struct {
	DSN         string `mapstructure:"dsn" validate:"omitempty,url"`
	Environment string `mapstructure:"environment"`
}

// ListenAddr prefers an explicit addr and otherwise listens on every
// interface at Port.
func (c *Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}

	return net.JoinHostPort("", c.Port)
}

// SMTPSettings converts the SMTP block for the contact mailer.
func (c *Config) SMTPSettings() contact.SMTPSettings {
	return contact.SMTPSettings{
		Host: c.SMTP.Host,
		Port: c.SMTP.Port,
		User: c.SMTP.User,
		Pass: c.SMTP.Pass,
		To:   c.SMTP.To,
	}
}

// Load reads file when given, otherwise ./portfolio.yaml if it exists.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "")
	v.SetDefault("port", "8080")
	v.SetDefault("mode", "release")
	v.SetDefault("data_dir", "data")
	v.SetDefault("static_dir", "static")
	v.SetDefault("output_dir", "public")
	v.SetDefault("log_level", "info")

	v.SetDefault("contact.endpoint", "/api/contact")
	v.SetDefault("contact.fallback_email", contact.DefaultRecipient)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", "")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

// bindLegacyEnv keeps the unprefixed variable names used by earlier
// deployments working next to the PORTFOLIO_ ones.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"port":       "PORT",
		"mode":       "GIN_MODE",
		"smtp.host":  "SMTP_HOST",
		"smtp.port":  "SMTP_PORT",
		"smtp.user":  "SMTP_USER",
		"smtp.pass":  "SMTP_PASS",
		"smtp.to":    "TO_EMAIL",
		"sentry.dsn": "SENTRY_DSN",
	}

	for key, legacy := range bindings {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	return nil
}
