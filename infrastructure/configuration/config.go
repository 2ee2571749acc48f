package configuration

import (
	"fmt"
	"os"
	"strconv"

	"music-contest/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App       App       `json:"app"`
	Database  Database  `json:"database"`
	RateLimit RateLimit `json:"rateLimit"`
	Request   Request   `json:"request"`
	Redis     Redis     `json:"redis"`
	Pubsub    Pubsub    `json:"pubsub"`
	YouTube   YouTube   `json:"youtube"`
	Poster    Poster    `json:"poster"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Path            string `json:"path"`
	BackupDir       string `json:"backupDir"`
	BackupRetention int    `json:"backupRetention"`
}

// RateLimit holds the two limiter tuples: one for submission actions and one
// for deletion actions. Persisted switches from the in-process limiter to the
// database-backed one so several replicas share the same windows.
type RateLimit struct {
	SubmitCalls  int  `json:"submitCalls"`
	SubmitWindow int  `json:"submitWindowSeconds"`
	DeleteCalls  int  `json:"deleteCalls"`
	DeleteWindow int  `json:"deleteWindowSeconds"`
	Persisted    bool `json:"persisted"`
}

// Request bounds every outbound metadata fetch.
type Request struct {
	TimeoutSeconds  int    `json:"timeoutSeconds"`
	MaxResponseSize int64  `json:"maxResponseSize"`
	UserAgent       string `json:"userAgent"`
}

type Redis struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

// Poster configures the webhook endpoints the display payloads are posted to.
// Both empty means posting is disabled and submissions complete without the
// side-effect step.
type Poster struct {
	PublicWebhookURL string `json:"publicWebhookURL"`
	ReviewWebhookURL string `json:"reviewWebhookURL"`
}

var C Config

func init() {
	LoadConfig()
	applyDefaults(&C)
	applyEnvOverrides(&C)
}

// LoadConfig reads config.json (or config-<ENV>.json) from the usual places.
// A missing file is fine; env overrides and defaults still apply.
func LoadConfig() {
	name := configName()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().WithField("config", name).Warn("Config file not found, using defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
		return
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func configName() string {
	name := "config"
	if env := os.Getenv("ENV"); env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func applyDefaults(c *Config) {
	if c.App.Port == 0 {
		c.App.Port = 8090
	}
	if c.Database.Path == "" {
		c.Database.Path = "contests.db"
	}
	if c.Database.BackupDir == "" {
		c.Database.BackupDir = "backups"
	}
	if c.Database.BackupRetention == 0 {
		c.Database.BackupRetention = 10
	}
	if c.RateLimit.SubmitCalls == 0 {
		c.RateLimit.SubmitCalls = 5
	}
	if c.RateLimit.SubmitWindow == 0 {
		c.RateLimit.SubmitWindow = 60
	}
	if c.RateLimit.DeleteCalls == 0 {
		c.RateLimit.DeleteCalls = 10
	}
	if c.RateLimit.DeleteWindow == 0 {
		c.RateLimit.DeleteWindow = 60
	}
	if c.Request.TimeoutSeconds == 0 {
		c.Request.TimeoutSeconds = 5
	}
	if c.Request.MaxResponseSize == 0 {
		c.Request.MaxResponseSize = 1 << 20
	}
	if c.Request.UserAgent == "" {
		c.Request.UserAgent = "MusicContestBot/2.0"
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.App.SecretKey = v
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("BACKUP_DIR"); v != "" {
		c.Database.BackupDir = v
	}
	if v := os.Getenv("MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Database.BackupRetention = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_SUBMISSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimit.SubmitCalls = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimit.SubmitWindow = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_DELETIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimit.DeleteCalls = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_PERSISTED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RateLimit.Persisted = b
		}
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		c.Pubsub.ProjectID = v
	}
	if c.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; authenticated routes will reject every token. Provide SECRET_KEY via environment.")
	}
}
