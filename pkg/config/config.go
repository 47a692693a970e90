package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// DBConfig holds database configuration
type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	MongoURI        string
	MongoDatabase   string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// MediaConfig holds image hosting configuration
type MediaConfig struct {
	CloudName      string
	APIKey         string
	APISecret      string
	Folder         string
	MaxUploadBytes int64
}

// Enabled reports whether Cloudinary credentials are present.
func (c *MediaConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// CacheConfig holds Redis listing cache configuration
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// EventsConfig holds RabbitMQ publisher configuration
type EventsConfig struct {
	URL      string
	Exchange string
}

// SiteConfig holds the fixed address values every listing carries
type SiteConfig struct {
	State string
	City  string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Media       MediaConfig
	Cache       CacheConfig
	Events      EventsConfig
	Site        SiteConfig
}

// Load loads configuration from the optional .env file and environment variables
func Load(serviceName string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", serviceName),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("SQLITE_PATH", serviceName+".db"),
			MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase:   getEnv("MONGODB_DATABASE", serviceName),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "5000"),
			Env:         getEnv("APP_ENV", "development"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24*30),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", strings.ReplaceAll(serviceName, "-", "_")),
		},
		Media: MediaConfig{
			CloudName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:         getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:      getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:         getEnv("CLOUDINARY_FOLDER", "equity-properties"),
			MaxUploadBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Cache: CacheConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Events: EventsConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "property.events"),
		},
		Site: SiteConfig{
			State: getEnv("SITE_STATE", "Uttar Pradesh"),
			City:  getEnv("SITE_CITY", "Meerut"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWT.ExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", c.JWT.ExpirationHours)
	}
	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Media.MaxUploadBytes)
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	fields := []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_driver", c.DB.Driver),
		zap.String("server_port", c.Server.Port),
		zap.Bool("media_cloudinary", c.Media.Enabled()),
		zap.Bool("cache_enabled", c.Cache.Addr != ""),
		zap.Bool("events_enabled", c.Events.URL != ""),
	}
	switch c.DB.Driver {
	case DriverPostgres:
		fields = append(fields,
			zap.String("db_host", c.DB.Host),
			zap.String("db_port", c.DB.Port),
			zap.String("db_user", c.DB.User),
			zap.String("db_name", c.DB.DBName))
	case DriverSQLite:
		fields = append(fields, zap.String("sqlite_path", c.DB.SQLitePath))
	case DriverMongo:
		fields = append(fields, zap.String("mongo_database", c.DB.MongoDatabase))
	}
	return fields
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get comma separated environment variables
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// Helper function to get gorm log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch strings.ToLower(getEnv(key, "")) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
