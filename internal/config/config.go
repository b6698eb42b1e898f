package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Shop      ShopConfig
	Printer   PrinterConfig
	Poll      PollConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points the terminal at the remote sales API that owns all
// business data. Token is a pre-issued static bearer token; the terminal
// never mints credentials itself.
type BackendConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// ShopConfig is the identity block printed on every receipt.
type ShopConfig struct {
	Name         string
	Tagline      string
	Phones       []string
	SystemName   string
	Website      string
	SupportPhone string
	CashierName  string
}

type PrinterConfig struct {
	Type    string // usb, network, or none
	USBPath string
	Address string
	Width   int // characters per line: 32 for 58mm paper, 48 for 80mm
}

// PollConfig controls the pending-order poll for the kassa screen.
type PollConfig struct {
	Interval     time.Duration
	PendingLimit int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "stroypos-terminal")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8090")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("BACKEND_TOKEN", "")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SHOP_NAME", "STROYCRM")
	viper.SetDefault("SHOP_TAGLINE", "QURILISH MOLLARI DO'KONI")
	viper.SetDefault("SHOP_PHONES", []string{"+998 90 078 08 00", "+998 88 856 13 33"})
	viper.SetDefault("SHOP_SYSTEM_NAME", "STROY CRM tizimi")
	viper.SetDefault("SHOP_WEBSITE", "www.ardentsoft.uz")
	viper.SetDefault("SHOP_SUPPORT_PHONE", "+998 90 557 75 11")
	viper.SetDefault("SHOP_CASHIER_NAME", "admin")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("POLL_INTERVAL_SECONDS", 10)
	viper.SetDefault("POLL_PENDING_LIMIT", 100)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Token:   viper.GetString("BACKEND_TOKEN"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Shop: ShopConfig{
			Name:         viper.GetString("SHOP_NAME"),
			Tagline:      viper.GetString("SHOP_TAGLINE"),
			Phones:       viper.GetStringSlice("SHOP_PHONES"),
			SystemName:   viper.GetString("SHOP_SYSTEM_NAME"),
			Website:      viper.GetString("SHOP_WEBSITE"),
			SupportPhone: viper.GetString("SHOP_SUPPORT_PHONE"),
			CashierName:  viper.GetString("SHOP_CASHIER_NAME"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Poll: PollConfig{
			Interval:     time.Duration(viper.GetInt("POLL_INTERVAL_SECONDS")) * time.Second,
			PendingLimit: viper.GetInt("POLL_PENDING_LIMIT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}
