// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Inventory InventoryConfig
	Export    ExportConfig
	Odoo      OdooConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	SeriesTTLSeconds int
}

// InventoryConfig controls the optional out-of-band inventory re-sync.
// SyncWebhookURL may be empty; the feature is simply absent then.
type InventoryConfig struct {
	SyncWebhookURL     string
	SyncSettleSeconds  int
	SyncTimeoutSeconds int
}

// ExportConfig holds the optional S3-compatible target for published
// all-products CSV exports.
type ExportConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type OdooConfig struct {
	URL      string
	DB       string
	Username string
	Password string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "kisaan")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SERIES_TTL_SECONDS", 60)
		viper.SetDefault("INVENTORY_SYNC_WEBHOOK_URL", "")
		viper.SetDefault("INVENTORY_SYNC_SETTLE_SECONDS", 2)
		viper.SetDefault("INVENTORY_SYNC_TIMEOUT_SECONDS", 30)
		viper.SetDefault("EXPORT_ENABLED", false)
		viper.SetDefault("EXPORT_ENDPOINT", "")
		viper.SetDefault("EXPORT_ACCESS_KEY", "")
		viper.SetDefault("EXPORT_SECRET_KEY", "")
		viper.SetDefault("EXPORT_BUCKET", "demand-exports")
		viper.SetDefault("EXPORT_USE_SSL", true)
		viper.SetDefault("ODOO_URL", "")
		viper.SetDefault("ODOO_DB", "")
		viper.SetDefault("ODOO_USERNAME", "")
		viper.SetDefault("ODOO_PASSWORD", "")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				SeriesTTLSeconds: viper.GetInt("CACHE_SERIES_TTL_SECONDS"),
			},
			Inventory: InventoryConfig{
				SyncWebhookURL:     viper.GetString("INVENTORY_SYNC_WEBHOOK_URL"),
				SyncSettleSeconds:  viper.GetInt("INVENTORY_SYNC_SETTLE_SECONDS"),
				SyncTimeoutSeconds: viper.GetInt("INVENTORY_SYNC_TIMEOUT_SECONDS"),
			},
			Export: ExportConfig{
				Enabled:   viper.GetBool("EXPORT_ENABLED"),
				Endpoint:  viper.GetString("EXPORT_ENDPOINT"),
				AccessKey: viper.GetString("EXPORT_ACCESS_KEY"),
				SecretKey: viper.GetString("EXPORT_SECRET_KEY"),
				Bucket:    viper.GetString("EXPORT_BUCKET"),
				UseSSL:    viper.GetBool("EXPORT_USE_SSL"),
			},
			Odoo: OdooConfig{
				URL:      viper.GetString("ODOO_URL"),
				DB:       viper.GetString("ODOO_DB"),
				Username: viper.GetString("ODOO_USERNAME"),
				Password: viper.GetString("ODOO_PASSWORD"),
			},
		}
	})

	return instance
}
