package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Upload     UploadConfig
	Pagination PaginationConfig
	Trash      TrashConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite only
}

type JWTConfig struct {
	Secret      string
	Expiration  string
	UserScoping bool
}

type StorageConfig struct {
	Path string
}

type UploadConfig struct {
	MaxUploadSize    int64
	AllowAllTypes    bool
	AllowedMimeTypes []string
}

type PaginationConfig struct {
	PerPageDefault int
	PerPageMax     int
}

type TrashConfig struct {
	FolderName string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// defaultMimeTypes is the allow-list used when MEDIA_ALLOWED_MIME_TYPES is unset.
var defaultMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"video/mp4",
	"video/avi",
	"video/quicktime",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "media_library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "media_library.db"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key"),
			Expiration:  getEnv("JWT_EXPIRATION", "24h"),
			UserScoping: getEnvAsBool("MEDIA_USER_SCOPING", false),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "./storage/upload"),
		},
		Upload: UploadConfig{
			MaxUploadSize:    int64(getEnvAsInt("MEDIA_MAX_UPLOAD_SIZE", 10485760)),
			AllowAllTypes:    getEnvAsBool("MEDIA_ALLOW_ALL_TYPES", false),
			AllowedMimeTypes: getEnvAsList("MEDIA_ALLOWED_MIME_TYPES", defaultMimeTypes),
		},
		Pagination: PaginationConfig{
			PerPageDefault: getEnvAsInt("MEDIA_PER_PAGE_DEFAULT", 20),
			PerPageMax:     getEnvAsInt("MEDIA_PER_PAGE_MAX", 100),
		},
		Trash: TrashConfig{
			FolderName: getEnv("MEDIA_TRASH_FOLDER_NAME", "Trash"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	return config, nil
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MimeTypeAllowed reports whether the upload allow-list accepts the given MIME type.
func (u *UploadConfig) MimeTypeAllowed(mimeType string) bool {
	if u.AllowAllTypes {
		return true
	}
	for _, allowed := range u.AllowedMimeTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

// ClampPerPage bounds a requested page size to the configured limits.
func (p *PaginationConfig) ClampPerPage(perPage int) int {
	if perPage < 1 {
		return p.PerPageDefault
	}
	if perPage > p.PerPageMax {
		return p.PerPageMax
	}
	return perPage
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
