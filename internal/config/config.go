package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	PricePolicyClient  = "client"
	PricePolicyCatalog = "catalog"
)

// Config is decoded from the environment. A .env file, when present, is loaded first.
type Config struct {
	Port     string `env:"PORT,default=8080"`
	GoEnv    string `env:"GO_ENV,default=dev"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// DatabaseURL wins over the POSTGRES_* parts when set.
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST,default=localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT,default=5432"`
	PostgresUser     string `env:"POSTGRES_USER,default=postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,default=postgres"`
	PostgresDB       string `env:"POSTGRES_DB,default=store"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE,default=disable"`

	JWTSecret          string        `env:"JWT_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL,default=15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL,default=336h"`
	ActivationTokenTTL time.Duration `env:"ACTIVATION_TOKEN_TTL,default=72h"`
	BcryptCost         int           `env:"BCRYPT_COST,default=12"`

	FEURL       string   `env:"FE_URL,default=http://localhost:5173"`
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS,default=http://localhost:5173"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"DEFAULT_FROM_EMAIL,default=Cortex Store <no-reply@cortex.store>"`

	OutboxInterval    time.Duration `env:"MAIL_OUTBOX_INTERVAL,default=30s"`
	OutboxMaxAttempts int           `env:"MAIL_OUTBOX_MAX_ATTEMPTS,default=8"`
	OutboxBatchSize   int           `env:"MAIL_OUTBOX_BATCH_SIZE,default=20"`

	OrderPricePolicy    string `env:"ORDER_PRICE_POLICY,default=client"`
	OrderDecrementStock bool   `env:"ORDER_DECREMENT_STOCK,default=false"`

	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS,default=1"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST,default=10"`

	SeedFile          string `env:"SEED_FILE"`
	SuperuserUsername string `env:"SUPERUSER_USERNAME"`
	SuperuserEmail    string `env:"SUPERUSER_EMAIL"`
	SuperuserPassword string `env:"SUPERUSER_PASSWORD"`
}

// Load reads .env (if any) and the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing file is fine; real deployments set the environment directly
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProd() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in prod")
	}
	switch c.OrderPricePolicy {
	case PricePolicyClient, PricePolicyCatalog:
	default:
		return fmt.Errorf("ORDER_PRICE_POLICY must be %q or %q", PricePolicyClient, PricePolicyCatalog)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 || c.ActivationTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.OutboxInterval <= 0 {
		return fmt.Errorf("MAIL_OUTBOX_INTERVAL must be positive")
	}
	if c.OutboxMaxAttempts < 1 {
		return fmt.Errorf("MAIL_OUTBOX_MAX_ATTEMPTS must be >= 1")
	}
	if c.SuperuserUsername != "" && c.SuperuserPassword == "" {
		return fmt.Errorf("SUPERUSER_PASSWORD is required when SUPERUSER_USERNAME is set")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// Addr returns the listen address, accepting PORT with or without a leading colon.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}
