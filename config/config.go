package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// CORS modes.
const (
	CORSOpen      = "open"
	CORSAllowList = "allowlist"
)

// Image storage strategies.
const (
	ImageInline = "inline"
	ImageCloud  = "cloud"
)

// DefaultAllowedOrigins are the storefront and admin front-ends served in production.
var DefaultAllowedOrigins = []string{
	"https://astraautomax.in",
	"https://www.astraautomax.in",
	"https://adminastraautomax.in",
	"https://www.adminastraautomax.in",
	"http://localhost:3000",
}

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	MongoURI         string
	MongoDatabase    string
	PartNumberUnique bool

	CORSMode       string
	AllowedOrigins []string

	ImageStorage     string
	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string
	CloudinaryAPI    string

	AuthEnabled  bool
	AuthRequired bool
	JWTSecret    string

	RateLimitRPS   float64
	RateLimitBurst int

	BodyLimit       int64
	ShutdownTimeout time.Duration

	Log LogConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Mode       string // production or development
	Level      string
	FileEnable bool
	Filename   string
}

// Load reads the configuration from the process environment.
// Call godotenv.Load beforehand if a .env file should be honored.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:             get("PORT", "5000"),
		MongoURI:         get("MONGODB_URI", ""),
		MongoDatabase:    get("MONGODB_DATABASE", "automax"),
		PartNumberUnique: cast.ToBool(get("PART_NUMBER_UNIQUE", "true")),
		CORSMode:         strings.ToLower(get("CORS_MODE", CORSAllowList)),
		ImageStorage:     strings.ToLower(get("IMAGE_STORAGE", ImageInline)),
		CloudinaryCloud:  get("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    get("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: get("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: get("CLOUDINARY_FOLDER", "products"),
		CloudinaryAPI:    get("CLOUDINARY_API_URL", "https://api.cloudinary.com/v1_1"),
		AuthEnabled:      cast.ToBool(get("AUTH_ENABLED", "true")),
		AuthRequired:     cast.ToBool(get("AUTH_REQUIRED", "false")),
		JWTSecret:        get("JWT_SECRET", ""),
		RateLimitRPS:     cast.ToFloat64(get("RATE_LIMIT_RPS", "0")),
		RateLimitBurst:   cast.ToInt(get("RATE_LIMIT_BURST", "0")),
		BodyLimit:        cast.ToInt64(get("BODY_LIMIT_BYTES", "10485760")),
		ShutdownTimeout:  cast.ToDuration(get("SHUTDOWN_TIMEOUT", "10s")),
		Log: LogConfig{
			Mode:       get("LOG_MODE", "development"),
			Level:      get("LOG_LEVEL", "info"),
			FileEnable: cast.ToBool(get("LOG_FILE_ENABLE", "false")),
			Filename:   get("LOG_FILE", "logs/automax.log"),
		},
	}

	if origins := get("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else {
		cfg.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}

	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = int(cfg.RateLimitRPS)
		if cfg.RateLimitBurst < 1 {
			cfg.RateLimitBurst = 1
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option combinations that cannot work at runtime.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI must be set"))
	}
	switch c.CORSMode {
	case CORSOpen:
	case CORSAllowList:
		if len(c.AllowedOrigins) == 0 {
			errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must not be empty in allowlist mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CORS_MODE %q", c.CORSMode))
	}
	switch c.ImageStorage {
	case ImageInline:
	case ImageCloud:
		if c.CloudinaryCloud == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET must be set for cloud image storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IMAGE_STORAGE %q", c.ImageStorage))
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set when AUTH_ENABLED is true"))
	}
	if c.AuthRequired && !c.AuthEnabled {
		errs = append(errs, errors.New("AUTH_REQUIRED needs AUTH_ENABLED"))
	}
	if c.BodyLimit <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
