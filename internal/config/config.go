package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Store     StoreConfig
	Printer   PrinterConfig
	Storage   StorageConfig
	Cart      CartConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// AuthConfig holds the shared passphrase. A bcrypt hash takes precedence
// over the plain value.
type AuthConfig struct {
	Passphrase     string
	PassphraseHash string
}

// StoreConfig seeds the receipt header and footer on first start.
type StoreConfig struct {
	Name       string
	Tagline    string
	Address    string
	Services   string
	ThankYou   string
	Notice     string
	PaperWidth int
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
}

type StorageConfig struct {
	Driver         string
	LocalRoot      string
	BaseURL        string
	ArchiveExports bool
	S3Bucket       string
	S3Region       string
	S3Key          string
	S3Secret       string
	S3Endpoint     string
}

type CartConfig struct {
	Store         string // memory or redis
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type CatalogConfig struct {
	RefreshInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Auth: AuthConfig{
			Passphrase:     viper.GetString("AUTH_PASSPHRASE"),
			PassphraseHash: viper.GetString("AUTH_PASSPHRASE_HASH"),
		},
		Store: StoreConfig{
			Name:       viper.GetString("STORE_NAME"),
			Tagline:    viper.GetString("STORE_TAGLINE"),
			Address:    viper.GetString("STORE_ADDRESS"),
			Services:   viper.GetString("STORE_SERVICES"),
			ThankYou:   viper.GetString("STORE_THANK_YOU"),
			Notice:     viper.GetString("STORE_NOTICE"),
			PaperWidth: viper.GetInt("RECEIPT_PAPER_WIDTH"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		Storage: StorageConfig{
			Driver:         viper.GetString("STORAGE_DRIVER"),
			LocalRoot:      viper.GetString("STORAGE_LOCAL_ROOT"),
			BaseURL:        viper.GetString("STORAGE_URL"),
			ArchiveExports: viper.GetBool("STORAGE_ARCHIVE_EXPORTS"),
			S3Bucket:       viper.GetString("S3_BUCKET"),
			S3Region:       viper.GetString("S3_REGION"),
			S3Key:          viper.GetString("S3_KEY"),
			S3Secret:       viper.GetString("S3_SECRET"),
			S3Endpoint:     viper.GetString("S3_ENDPOINT"),
		},
		Cart: CartConfig{
			Store:         viper.GetString("CART_STORE"),
			TTL:           time.Duration(viper.GetInt("CART_TTL_HOURS")) * time.Hour,
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			RefreshInterval: time.Duration(viper.GetInt("CATALOG_REFRESH_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: viper.GetInt("RATE_LIMIT_LOGIN_PER_MINUTE"),
			LoginBurst:     viper.GetInt("RATE_LIMIT_LOGIN_BURST"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "bukusaku-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "bukusaku")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("DB_SQLITE_PATH", "bukusaku.db")

	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 720)
	viper.SetDefault("AUTH_PASSPHRASE", "change-this-passphrase")

	viper.SetDefault("STORE_NAME", "28 POINT")
	viper.SetDefault("STORE_TAGLINE", "Store & Management")
	viper.SetDefault("STORE_ADDRESS", "Jl. Kali Brantas No. 28, RT 003/RW 002\nBendo, Kepanjenkidul, Kota Blitar\nJawa Timur, 66116")
	viper.SetDefault("STORE_SERVICES", "Tarik & Setor Tunai - Transfer Bank\nPulsa & Token Listrik - Bayar Tagihan")
	viper.SetDefault("STORE_THANK_YOU", "TERIMA KASIH")
	viper.SetDefault("STORE_NOTICE", "Barang yang sudah dibeli\ntidak dapat ditukar/dikembalikan.")
	viper.SetDefault("RECEIPT_PAPER_WIDTH", 58)

	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")

	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_ROOT", "./storage")
	viper.SetDefault("STORAGE_URL", "/api/v1/files")
	viper.SetDefault("STORAGE_ARCHIVE_EXPORTS", true)
	viper.SetDefault("S3_REGION", "ap-southeast-3")

	viper.SetDefault("CART_STORE", "memory")
	viper.SetDefault("CART_TTL_HOURS", 12)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("CATALOG_REFRESH_SECONDS", 60)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_LOGIN_PER_MINUTE", 10)
	viper.SetDefault("RATE_LIMIT_LOGIN_BURST", 5)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
