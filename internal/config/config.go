package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Backend string

const (
	BackendEmailJS Backend = "emailjs"
	BackendSMTP    Backend = "smtp"
	BackendLog     Backend = "log"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Port    string
	GinMode string // "debug", "release" or "test"

	DeliveryBackend Backend
	DeliveryTimeout time.Duration // zero means no client-side timeout

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSEndpoint   string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	SessionTTL      time.Duration
	LogFailDelivery bool // log backend only: fail every send
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a valid duration", ErrInvalid, key, v)
	}
	return d, nil
}

// Load reads all env vars and builds the config
func Load() (*Config, error) {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DeliveryBackend: Backend(strings.ToLower(getEnv("DELIVERY_BACKEND", string(BackendLog)))),

		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		EmailJSPrivateKey: os.Getenv("EMAILJS_PRIVATE_KEY"),
		EmailJSEndpoint:   os.Getenv("EMAILJS_ENDPOINT"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		ToEmail:  os.Getenv("TO_EMAIL"),

		LogFailDelivery: getBoolEnv("LOG_FAIL_DELIVERY", false),
	}

	var err error
	if cfg.DeliveryTimeout, err = getDurationEnv("DELIVERY_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDurationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: GIN_MODE must be debug, release or test, got %q", ErrInvalid, c.GinMode)
	}

	switch c.DeliveryBackend {
	case BackendEmailJS:
		var missing []string
		if c.EmailJSServiceID == "" {
			missing = append(missing, "EMAILJS_SERVICE_ID")
		}
		if c.EmailJSTemplateID == "" {
			missing = append(missing, "EMAILJS_TEMPLATE_ID")
		}
		if c.EmailJSPublicKey == "" {
			missing = append(missing, "EMAILJS_PUBLIC_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: emailjs backend needs %s", ErrInvalid, strings.Join(missing, ", "))
		}
	case BackendSMTP:
		if c.SMTPUser == "" || c.SMTPPass == "" {
			return fmt.Errorf("%w: smtp backend needs SMTP_USER and SMTP_PASS", ErrInvalid)
		}
	case BackendLog:
	default:
		return fmt.Errorf("%w: unknown DELIVERY_BACKEND %q", ErrInvalid, string(c.DeliveryBackend))
	}
	return nil
}
