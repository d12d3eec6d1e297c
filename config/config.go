package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName     string        `json:"appname"`
	AppEnv      string        `json:"appenv"`
	AppPort     uint16        `json:"appport"`
	GinMode     string        `json:"ginmode"`
	DBDriver    string        `json:"dbdriver"`
	DBHost      string        `json:"dbhost"`
	DBPort      uint16        `json:"dbport"`
	DBName      string        `json:"dbname"`
	DBUSER      string        `json:"dbuser"`
	DBPass      string        `json:"dbpass"`
	JWTSecret   string        `json:"-"`
	RateLimit   int           `json:"ratelimit"`
	RateWindow  time.Duration `json:"ratewindow"`
	UploadDir   string        `json:"uploaddir"`
	GeoIPDBPath string        `json:"geoipdbpath"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is only fatal in production, where every value must be explicit.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			if os.Getenv("APPENV") == "production" {
				log.Fatalf("Error loading .env file: %v", err)
			}
			log.Printf("No .env file loaded, using process environment: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)
		rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT", "60"))
		rateWindow, err := time.ParseDuration(getEnv("RATE_WINDOW", "1m"))
		if err != nil {
			rateWindow = time.Minute
		}

		config = &Config{
			AppName:     getEnv("APPNAME", "Pilates Studio API"),
			AppEnv:      os.Getenv("APPENV"),
			AppPort:     uint16(appPort),
			GinMode:     getEnv("GINMODE", "debug"),
			DBDriver:    getEnv("DBDRIVER", "mysql"),
			DBHost:      os.Getenv("DBHOST"),
			DBPort:      uint16(dbPort),
			DBName:      os.Getenv("DBNAME"),
			DBUSER:      os.Getenv("DBUSER"),
			DBPass:      os.Getenv("DBPASS"),
			JWTSecret:   os.Getenv("JWTSECRET"),
			RateLimit:   rateLimit,
			RateWindow:  rateWindow,
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// dialector picks the gorm dialect for the configured driver. APPENV=test always
// uses a private in-memory sqlite database.
func dialector(cfg *Config) (gorm.Dialector, error) {
	if cfg.AppEnv == "test" {
		dsn := fmt.Sprintf("file:studio_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return sqlite.Open(dsn), nil
	}

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

// ConnectDatabase opens the database configured by DBDRIVER (mysql or postgres).
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()

	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.AppEnv == "test" {
		logLevel = logger.Silent
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
