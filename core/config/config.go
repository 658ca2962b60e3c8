package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/logger"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Media       MediaConfig
	GoogleDrive GoogleDriveConfig
	S3          S3Config
	Bridge      BridgeConfig
	Log         LogConfig
	EventSource string
}

type ServerConfig struct {
	Host            string
	Port            int
	BaseURL         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	SessionSecret string
	SecureCookie  bool
	Users         []User
}

// User is one entry of AUTH_USERS: "email|Display Name|bcrypt-hash".
type User struct {
	Email        string
	Name         string
	PasswordHash string
}

type MediaConfig struct {
	Backend   string
	PublicDir string
}

// GoogleDriveConfig holds the service-account fields of a Google credentials file.
type GoogleDriveConfig struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
	TokenURI     string
	FolderID     string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
	Prefix          string
}

type BridgeConfig struct {
	BaseURL string
	APIKey  string
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "0.0.0.0")
	v.SetDefault("APP_PORT", 3001)
	v.SetDefault("APP_BASE_URL", "http://localhost:3001")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("EVENT_SOURCE", constants.EventSourceDatabase)

	v.SetDefault("DB_DRIVER", constants.DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "travel_app")
	v.SetDefault("DB_SSL_MODE", constants.DatabaseSSLMode)
	v.SetDefault("DB_MAX_OPEN_CONNS", constants.DatabaseMaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", constants.DatabaseMaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME", fmt.Sprintf("%dm", constants.DatabaseConnMaxLifetime))
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUTH_SESSION_SECRET", "")
	v.SetDefault("AUTH_SECURE_COOKIE", false)
	v.SetDefault("AUTH_USERS", "")

	v.SetDefault("MEDIA_BACKEND", constants.MediaBackendLocal)
	v.SetDefault("MEDIA_PUBLIC_DIR", "public")

	v.SetDefault("GOOGLE_PROJECT_ID", "")
	v.SetDefault("GOOGLE_PRIVATE_KEY_ID", "")
	v.SetDefault("GOOGLE_PRIVATE_KEY", "")
	v.SetDefault("GOOGLE_CLIENT_EMAIL", "")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_TOKEN_URI", constants.GoogleDefaultTokenURI)
	v.SetDefault("GOOGLE_DRIVE_FOLDER_ID", constants.GoogleDriveFolderID)

	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_PUBLIC_BASE_URL", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("S3_PREFIX", "")

	v.SetDefault("BRIDGE_BASE_URL", constants.DefaultBridgeBaseURL)
	v.SetDefault("BRIDGE_API_KEY", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("Config:Load:DotenvSkipped", "reason", err.Error())
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	users, err := parseUsers(v.GetString("AUTH_USERS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		EventSource: strings.ToLower(v.GetString("EVENT_SOURCE")),
		Server: ServerConfig{
			Host:            v.GetString("APP_HOST"),
			Port:            v.GetInt("APP_PORT"),
			BaseURL:         v.GetString("APP_BASE_URL"),
			ShutdownTimeout: v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			SessionSecret: v.GetString("AUTH_SESSION_SECRET"),
			SecureCookie:  v.GetBool("AUTH_SECURE_COOKIE"),
			Users:         users,
		},
		Media: MediaConfig{
			Backend:   strings.ToLower(v.GetString("MEDIA_BACKEND")),
			PublicDir: v.GetString("MEDIA_PUBLIC_DIR"),
		},
		GoogleDrive: GoogleDriveConfig{
			ProjectID:    v.GetString("GOOGLE_PROJECT_ID"),
			PrivateKeyID: v.GetString("GOOGLE_PRIVATE_KEY_ID"),
			// keys pasted into env files keep their newlines escaped
			PrivateKey:  strings.ReplaceAll(v.GetString("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
			ClientEmail: v.GetString("GOOGLE_CLIENT_EMAIL"),
			ClientID:    v.GetString("GOOGLE_CLIENT_ID"),
			TokenURI:    v.GetString("GOOGLE_TOKEN_URI"),
			FolderID:    v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		},
		S3: S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("S3_PUBLIC_BASE_URL"),
			UsePathStyle:    v.GetBool("S3_USE_PATH_STYLE"),
			Prefix:          v.GetString("S3_PREFIX"),
		},
		Bridge: BridgeConfig{
			BaseURL: strings.TrimRight(v.GetString("BRIDGE_BASE_URL"), "/"),
			APIKey:  v.GetString("BRIDGE_API_KEY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.EventSource {
	case constants.EventSourceDatabase, constants.EventSourceBridge:
	default:
		return fmt.Errorf("EVENT_SOURCE must be %q or %q, got %q", constants.EventSourceDatabase, constants.EventSourceBridge, c.EventSource)
	}

	switch c.Media.Backend {
	case constants.MediaBackendLocal, constants.MediaBackendDrive, constants.MediaBackendS3:
	default:
		return fmt.Errorf("MEDIA_BACKEND must be one of local, drive, s3, got %q", c.Media.Backend)
	}

	if c.EventSource == constants.EventSourceDatabase {
		switch c.Database.Driver {
		case constants.DriverPostgres, constants.DriverMySQL:
		default:
			return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", constants.DriverPostgres, constants.DriverMySQL, c.Database.Driver)
		}
	}

	if c.EventSource == constants.EventSourceBridge && c.Bridge.APIKey == "" {
		return fmt.Errorf("BRIDGE_API_KEY is required when EVENT_SOURCE=%s", constants.EventSourceBridge)
	}

	if c.Media.Backend == constants.MediaBackendS3 && c.S3.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when MEDIA_BACKEND=%s", constants.MediaBackendS3)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("APP_PORT out of range: %d", c.Server.Port)
	}
	return nil
}

// parseUsers reads "email|Name|hash" entries separated by commas.
func parseUsers(raw string) ([]User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var users []User
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("AUTH_USERS entry %q must be email|name|bcrypt-hash", entry)
		}
		users = append(users, User{
			Email:        strings.TrimSpace(parts[0]),
			Name:         strings.TrimSpace(parts[1]),
			PasswordHash: strings.TrimSpace(parts[2]),
		})
	}
	return users, nil
}

// DSN builds the driver-specific connection string with credentials escaped.
func (d DatabaseConfig) DSN() string {
	if d.Driver == constants.DriverMySQL {
		return d.mysqlConfig().FormatDSN()
	}
	return d.postgresURL()
}

// MigrateURL builds the golang-migrate database URL.
func (d DatabaseConfig) MigrateURL() string {
	if d.Driver == constants.DriverMySQL {
		return "mysql://" + d.mysqlConfig().FormatDSN()
	}
	return d.postgresURL()
}

func (d DatabaseConfig) mysqlConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	cfg.DBName = d.DBName
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg
}

func (d DatabaseConfig) postgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
