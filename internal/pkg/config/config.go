package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// ClientURI is the single origin allowed by CORS. Empty allows any origin.
	ClientURI string `env:"CLIENT_URI"`

	Auth    AuthConfig
	Posts   PostsConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type AuthConfig struct {
	JWTSecret                string        `env:"JWT_ACCESS_TOKEN_SECRET, required"`
	TokenTTL                 time.Duration `env:"TOKEN_TTL,                  default=24h"`
	BcryptCost               int           `env:"BCRYPT_COST,                default=16"`
	RegistrationRequiresAuth bool          `env:"REGISTRATION_REQUIRES_AUTH, default=true"`
	LoginRateLimit           float64       `env:"LOGIN_RATE_LIMIT,           default=5"`
	LoginRateBurst           int           `env:"LOGIN_RATE_BURST,           default=10"`
}

type PostsConfig struct {
	EnforceOwnership bool `env:"ENFORCE_POST_OWNERSHIP, default=false"`
}

type MongoConfig struct {
	URI      string `env:"DATABASE_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,     default=blog"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type StorageConfig struct {
	Bucket          string `env:"FIREBASE_STORAGEBUCKET"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	DraftPrefix     string `env:"STORAGE_DRAFT_PREFIX,     default=files/uploads/images/draft"`
	PublishedPrefix string `env:"STORAGE_PUBLISHED_PREFIX, default=files/uploads/images"`
	WebPQuality     int    `env:"WEBP_QUALITY,             default=80"`
	UploadMaxSize   string `env:"UPLOAD_MAX_SIZE,          default=10M"`
	CleanupWorkers  int    `env:"CLEANUP_WORKERS,          default=4"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGEBUCKET is required")
	}
	return &cfg, nil
}
