package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/iamLuCat/portfolio/internal/contact"
	"github.com/iamLuCat/portfolio/internal/data"
	"github.com/iamLuCat/portfolio/internal/models"
)

const (
	DefaultServerAddr       = ":8080"
	DefaultBasePath         = "/"
	DefaultContactRateLimit = 5 // per minute
	DefaultContactBurst     = 2
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mail      MailConfig      `mapstructure:"mail"`
	Recaptcha RecaptchaConfig `mapstructure:"recaptcha"`
	Site      SiteConfig      `mapstructure:"site"`
	Contact   ContactConfig   `mapstructure:"contact"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// TrustedProxies are CIDRs or addresses whose X-Forwarded-For is believed
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// MailConfig holds the email relay credentials
type MailConfig struct {
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	Key        string `mapstructure:"key"`
	Endpoint   string `mapstructure:"endpoint"`
}

// Credentials converts the relay settings for the contact package
func (m MailConfig) Credentials() contact.Credentials {
	return contact.Credentials{ServiceID: m.ServiceID, TemplateID: m.TemplateID, PublicKey: m.Key}
}

// String masks the public key
func (m MailConfig) String() string {
	return fmt.Sprintf("MailConfig{ServiceID:%s, TemplateID:%s, Key:%s, Endpoint:%s}",
		m.ServiceID, m.TemplateID, maskSecret(m.Key), m.Endpoint)
}

// RecaptchaConfig holds human-verification settings. The site key is public;
// the secret key enables server-side verification when set.
type RecaptchaConfig struct {
	SiteKey        string `mapstructure:"site_key"`
	SecretKey      string `mapstructure:"secret_key"`
	VerifyEndpoint string `mapstructure:"verify_endpoint"`
}

// String masks the secret key
func (r RecaptchaConfig) String() string {
	return fmt.Sprintf("RecaptchaConfig{SiteKey:%s, SecretKey:%s}", r.SiteKey, maskSecret(r.SecretKey))
}

// SiteConfig holds content and hosting settings
type SiteConfig struct {
	BasePath string `mapstructure:"base_path"`
	// DataPath overrides the embedded portfolio data when set
	DataPath string `mapstructure:"data_path"`
	// GeminiAPIKey is carried through from the build environment but unused
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
}

// ContactConfig throttles contact submissions per client
type ContactConfig struct {
	RateLimit int `mapstructure:"rate_limit"`
	Burst     int `mapstructure:"burst"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env (if present), an optional portfolio.yaml and the
// environment. envFile may be empty to use ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	v := viper.New()

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("mail.endpoint", contact.DefaultRelayEndpoint)
	v.SetDefault("recaptcha.verify_endpoint", contact.DefaultVerifyEndpoint)
	v.SetDefault("site.base_path", DefaultBasePath)
	v.SetDefault("contact.rate_limit", DefaultContactRateLimit)
	v.SetDefault("contact.burst", DefaultContactBurst)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetConfigName("portfolio")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Build-time names are kept so an existing .env works unchanged
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("server.trusted_proxies", "TRUSTED_PROXIES")
	_ = v.BindEnv("mail.service_id", "MAIL_JS_SERVICE_ID")
	_ = v.BindEnv("mail.template_id", "MAIL_JS_TEMPLATE_ID")
	_ = v.BindEnv("mail.key", "MAIL_JS_KEY")
	_ = v.BindEnv("mail.endpoint", "RELAY_ENDPOINT")
	_ = v.BindEnv("recaptcha.site_key", "VITE_RECAPTCHA_SITE_KEY")
	_ = v.BindEnv("recaptcha.secret_key", "RECAPTCHA_SECRET_KEY")
	_ = v.BindEnv("recaptcha.verify_endpoint", "RECAPTCHA_VERIFY_ENDPOINT")
	_ = v.BindEnv("site.base_path", "VITE_BASE_PATH")
	_ = v.BindEnv("site.data_path", "DATA_PATH")
	_ = v.BindEnv("site.gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("contact.rate_limit", "CONTACT_RATE_LIMIT")
	_ = v.BindEnv("contact.burst", "CONTACT_BURST")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Site.BasePath = NormalizeBasePath(cfg.Site.BasePath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations. Missing relay credentials are
// allowed: the contact form reports them when a message is sent.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Contact.RateLimit <= 0 {
		return fmt.Errorf("contact.rate_limit must be greater than 0")
	}
	if c.Contact.Burst <= 0 {
		return fmt.Errorf("contact.burst must be greater than 0")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console")
	}
	if !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("site.base_path must start with /")
	}
	return nil
}

// RelayReady reports whether every relay credential is set
func (c *Config) RelayReady() bool {
	return c.Mail.Credentials().Complete()
}

// LoadPortfolio returns the site content: DataPath when set, otherwise the
// embedded copy
func (c *Config) LoadPortfolio() (*models.PortfolioData, error) {
	if c.Site.DataPath != "" {
		return data.LoadFile(c.Site.DataPath)
	}
	return data.Load()
}

// String returns a safe representation with secrets masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr:%s, BasePath:%s, %s, %s, GeminiAPIKey:%s, Logging:%s/%s}",
		c.Server.Addr, c.Site.BasePath, c.Mail, c.Recaptcha,
		maskSecret(c.Site.GeminiAPIKey), c.Logging.Level, c.Logging.Format)
}

// NormalizeBasePath makes p start and end with a slash
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "." || p == "./" {
		return DefaultBasePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// maskSecret shows the first and last 4 characters
func maskSecret(s string) string {
	const visible = 4
	if s == "" {
		return ""
	}
	if len(s) <= visible*2 {
		return "***"
	}
	return s[:visible] + "****" + s[len(s)-visible:]
}
