package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "REVIEW_SCANNER_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	storageDirEnv     = "STORAGE_DIR"
	mlInferenceEnv    = "ML_INFERENCE_URL"
	mlAPIKeyEnv       = "ML_API_KEY"
	storeURLEnv       = "PLAY_STORE_URL"
	reviewFeedEnv     = "REVIEW_FEED_URL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Storage       StorageConfig      `yaml:"storage"`
	Provider      ProviderConfig     `yaml:"provider"`
	ML            MLConfig           `yaml:"ml"`
	Notifications NotificationConfig `yaml:"notifications"`
	Retention     RetentionConfig    `yaml:"retention"`
	Target        TargetConfig       `yaml:"target"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details. Leave the DSN empty
// to persist job artifacts on the filesystem instead.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// StorageConfig configures the filesystem artifact store.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// ProviderConfig groups settings for the review platform adapter.
type ProviderConfig struct {
	StoreURL      string `yaml:"storeUrl"`
	ReviewFeedURL string `yaml:"reviewFeedUrl"`
	PageSize      int    `yaml:"pageSize"`
}

// MLConfig describes the sentiment-inference service integration.
type MLConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// RetentionConfig controls job-artifact cleanup.
type RetentionConfig struct {
	Enabled  bool          `yaml:"enabled"`
	MaxAge   time.Duration `yaml:"maxAge"`
	Interval time.Duration `yaml:"interval"`
}

// TargetConfig is the analysis request the binary submits on start.
type TargetConfig struct {
	AppID    string `yaml:"appId"`
	Country  string `yaml:"country"`
	Language string `yaml:"language"`
	Count    int    `yaml:"count"`
	Sort     string `yaml:"sort"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. A .env file in the working directory is honored first.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(storageDirEnv); v != "" {
		c.Storage.Dir = v
	}

	if v := os.Getenv(mlInferenceEnv); v != "" {
		c.ML.InferenceURL = v
	}
	if v := os.Getenv(mlAPIKeyEnv); v != "" {
		c.ML.APIKey = v
	}

	if v := os.Getenv(storeURLEnv); v != "" {
		c.Provider.StoreURL = v
	}
	if v := os.Getenv(reviewFeedEnv); v != "" {
		c.Provider.ReviewFeedURL = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Storage.Dir != "" {
		base.Storage = override.Storage
	}

	if override.Provider.StoreURL != "" {
		base.Provider.StoreURL = override.Provider.StoreURL
	}
	if override.Provider.ReviewFeedURL != "" {
		base.Provider.ReviewFeedURL = override.Provider.ReviewFeedURL
	}
	if override.Provider.PageSize > 0 {
		base.Provider.PageSize = override.Provider.PageSize
	}

	if override.ML.InferenceURL != "" {
		base.ML.InferenceURL = override.ML.InferenceURL
	}
	if override.ML.APIKey != "" {
		base.ML.APIKey = override.ML.APIKey
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Retention.Enabled {
		base.Retention.Enabled = true
	}
	if override.Retention.MaxAge > 0 {
		base.Retention.MaxAge = override.Retention.MaxAge
	}
	if override.Retention.Interval > 0 {
		base.Retention.Interval = override.Retention.Interval
	}

	if override.Target.AppID != "" {
		base.Target = override.Target
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Storage:  StorageConfig{Dir: "shared_data"},
		Provider: ProviderConfig{
			StoreURL:      "https://play.google.com",
			ReviewFeedURL: "https://collector.example.org/reviews",
			PageSize:      200,
		},
		ML: MLConfig{InferenceURL: "", APIKey: ""},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Retention: RetentionConfig{
			Enabled:  false,
			MaxAge:   7 * 24 * time.Hour,
			Interval: 24 * time.Hour,
		},
		Target: TargetConfig{
			AppID:    "com.whatsapp",
			Country:  "tr",
			Language: "tr",
			Count:    1000,
			Sort:     "newest",
		},
	}
}
