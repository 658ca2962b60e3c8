package constants

import "time"

const (
	DefaultRequestTimeout = 15 * time.Second
)

// Database
const (
	DatabaseMaxOpenConns    = 10
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Event filters
const (
	FilterUpcoming = "upcoming"
	FilterPrevious = "previous"
)

// Media
const (
	MediaKindPhoto = "photo"
	MediaKindQR    = "qr"

	UploadsDirName = "uploads"
	QRCodesDirName = "qr-codes"

	MaxUploadBytes = 20 << 20
	// MaxUploadBody bounds a request carrying a base64 data URL of MaxUploadBytes.
	MaxUploadBody = "28M"
)

// Session
const (
	SessionCookieName = "session"
	SessionTTL        = 7 * 24 * time.Hour

	RedisKeyTokenBlacklist = "session:blacklist:"
)

// Bridge
const (
	HeaderAPIKey          = "x-api-key"
	DefaultBridgeBaseURL  = "https://isshun.site/bridge"
	EventSourceDatabase   = "database"
	EventSourceBridge     = "bridge"
	MediaBackendLocal     = "local"
	MediaBackendDrive     = "drive"
	MediaBackendS3        = "s3"
	DriverPostgres        = "postgres"
	DriverMySQL           = "mysql"
	GoogleDriveFolderID   = "11IBbJ_JMWeSX-TzwkQLCPNNSDfl2lkKk"
	GoogleDefaultTokenURI = "https://oauth2.googleapis.com/token"
)
