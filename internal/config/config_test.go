package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, "/", cfg.Site.BasePath)
	assert.Equal(t, DefaultContactRateLimit, cfg.Contact.RateLimit)
	assert.Equal(t, DefaultContactBurst, cfg.Contact.Burst)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.emailjs.com/api/v1.0/email/send", cfg.Mail.Endpoint)
	assert.False(t, cfg.RelayReady())
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoad_BuildEnvironmentNames(t *testing.T) {
	t.Setenv("MAIL_JS_SERVICE_ID", "service_abc")
	t.Setenv("MAIL_JS_TEMPLATE_ID", "template_xyz")
	t.Setenv("MAIL_JS_KEY", "publickey123456")
	t.Setenv("VITE_RECAPTCHA_SITE_KEY", "site-key")
	t.Setenv("VITE_BASE_PATH", "portfolio")
	t.Setenv("GEMINI_API_KEY", "12345")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.7")

	cfg, err := Load(missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.7"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "service_abc", cfg.Mail.ServiceID)
	assert.Equal(t, "template_xyz", cfg.Mail.TemplateID)
	assert.Equal(t, "publickey123456", cfg.Mail.Key)
	assert.Equal(t, "site-key", cfg.Recaptcha.SiteKey)
	assert.Equal(t, "/portfolio/", cfg.Site.BasePath)
	assert.Equal(t, "12345", cfg.Site.GeminiAPIKey)
	assert.True(t, cfg.RelayReady())
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTACT_BURST=7\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CONTACT_BURST")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Contact.Burst)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := Load(missingEnv(t))
	assert.ErrorContains(t, err, "logging.level")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Addr: ":8080"},
			Site:    SiteConfig{BasePath: "/"},
			Contact: ContactConfig{RateLimit: 5, Burst: 2},
			Logging: LoggingConfig{Level: "info", Format: "json"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero rate", func(c *Config) { c.Contact.RateLimit = 0 }, "contact.rate_limit"},
		{"zero burst", func(c *Config) { c.Contact.Burst = 0 }, "contact.burst"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"relative base", func(c *Config) { c.Site.BasePath = "x/" }, "site.base_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":            "/",
		"./":          "/",
		"/":           "/",
		"portfolio":   "/portfolio/",
		"/portfolio":  "/portfolio/",
		"/portfolio/": "/portfolio/",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBasePath(in), in)
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Mail:      MailConfig{ServiceID: "svc", Key: "abcd1234efgh5678"},
		Recaptcha: RecaptchaConfig{SiteKey: "site", SecretKey: "short"},
		Site:      SiteConfig{GeminiAPIKey: "gemini-secret-key"},
	}
	s := cfg.String()
	assert.Contains(t, s, "abcd****5678")
	assert.NotContains(t, s, "abcd1234efgh5678")
	assert.NotContains(t, s, "gemini-secret-key")
	assert.Contains(t, s, "SecretKey:***")
}

func TestLoadPortfolio(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.LoadPortfolio()
	require.NoError(t, err)
	assert.NotEmpty(t, d.Projects)

	cfg.Site.DataPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = cfg.LoadPortfolio()
	assert.Error(t, err)
}
