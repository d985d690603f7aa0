package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// StoreDriver selects the Store implementation
type StoreDriver string

const (
	DriverMemory   StoreDriver = "memory"
	DriverPostgres StoreDriver = "postgres"
	DriverMongo    StoreDriver = "mongo"
)

type Config struct {
	Bot      *BotCfg
	HTTP     *HTTPCfg
	Store    *StoreCfg
	Redis    *RedisCfg
	Twilio   *TwilioCfg
	Env      string
	LogLevel string
}

type BotCfg struct {
	Token         string
	AdminID       int64
	MiniAppURL    string
	WebhookURL    string // public base url, "/webhook" is appended
	WebhookSecret string
}

type HTTPCfg struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreCfg struct {
	Driver StoreDriver
	URL    string
}

type RedisCfg struct {
	URL        string // empty keeps wizard sessions in memory
	SessionTTL time.Duration
}

type TwilioCfg struct {
	AccountSID    string
	AuthToken     string
	WhatsAppFrom  string
	AdminWhatsApp string
}

// Enabled reports whether order notifications are mirrored to WhatsApp
func (t *TwilioCfg) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppFrom != "" && t.AdminWhatsApp != ""
}

// LoadDotEnv loads .env for local development. A missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return true
		}
	}
	return false
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	bot, err := loadBotCfg()
	if err != nil {
		return nil, err
	}

	http, err := loadHTTPCfg()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreCfg()
	if err != nil {
		return nil, err
	}

	redis, err := loadRedisCfg()
	if err != nil {
		return nil, err
	}

	return &Config{
		Bot:   bot,
		HTTP:  http,
		Store: store,
		Redis: redis,
		Twilio: &TwilioCfg{
			AccountSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:     os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom:  os.Getenv("TWILIO_WHATSAPP_FROM"),
			AdminWhatsApp: os.Getenv("ADMIN_WHATSAPP"),
		},
		Env:      getEnv("ENVIRONMENT", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func loadBotCfg() (*BotCfg, error) {
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("%w: BOT_TOKEN is required", e.ErrInvalidConfig)
	}

	rawAdmin := os.Getenv("ADMIN_ID")
	if rawAdmin == "" {
		return nil, fmt.Errorf("%w: ADMIN_ID is required", e.ErrInvalidConfig)
	}
	adminID, err := strconv.ParseInt(rawAdmin, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: ADMIN_ID must be an integer user id", e.ErrInvalidConfig)
	}

	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL == "" {
		if host := os.Getenv("RAILWAY_STATIC_URL"); host != "" {
			webhookURL = "https://" + host
		}
	}

	return &BotCfg{
		Token:         token,
		AdminID:       adminID,
		MiniAppURL:    os.Getenv("MINI_APP_URL"),
		WebhookURL:    strings.TrimSuffix(webhookURL, "/"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
	}, nil
}

func loadHTTPCfg() (*HTTPCfg, error) {
	read, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	write, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return &HTTPCfg{
		Port:         getEnv("PORT", "3000"),
		ReadTimeout:  read,
		WriteTimeout: write,
	}, nil
}

func loadStoreCfg() (*StoreCfg, error) {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return &StoreCfg{Driver: DriverMemory}, nil
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = os.Getenv("MONGODB_URI")
	}

	switch {
	case url == "":
		return nil, fmt.Errorf("%w: DATABASE_URL is required unless USE_MEMORY_STORE=true", e.ErrInvalidConfig)
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return &StoreCfg{Driver: DriverMongo, URL: url}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"), strings.Contains(url, "host="):
		return &StoreCfg{Driver: DriverPostgres, URL: url}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported DATABASE_URL scheme", e.ErrInvalidConfig)
	}
}

func loadRedisCfg() (*RedisCfg, error) {
	ttl, err := getDuration("SESSION_TTL", 0)
	if err != nil {
		return nil, err
	}
	return &RedisCfg{URL: os.Getenv("REDIS_URL"), SessionTTL: ttl}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", e.ErrInvalidConfig, key, err)
	}
	return d, nil
}
