package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Shipping     ShippingConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
}

// Load reads the environment and reports every invalid setting at once.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	err := multierr.Combine(
		cfg.DB.resolve(cfg.FeatureFlags.UseSQLite),
		cfg.RateLimit.validate(),
		cfg.Pricing.validate(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"SCENTVAULT_APP_ENV" required:"true"`
	Port         string   `envconfig:"SCENTVAULT_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"SCENTVAULT_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"SCENTVAULT_LOG_FORMAT" default:"json"`
	LogWarnStack bool     `envconfig:"SCENTVAULT_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"SCENTVAULT_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool  { return strings.EqualFold(a.Env, AppEnvDev) }
func (a AppConfig) IsProd() bool { return strings.EqualFold(a.Env, AppEnvProd) }

// DBConfig accepts either a full DSN or discrete postgres connection parts.
type DBConfig struct {
	DSN    string `envconfig:"SCENTVAULT_DB_DSN"`
	Driver string `envconfig:"SCENTVAULT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SCENTVAULT_DB_HOST"`
	Port     int    `envconfig:"SCENTVAULT_DB_PORT" default:"5432"`
	User     string `envconfig:"SCENTVAULT_DB_USER"`
	Password string `envconfig:"SCENTVAULT_DB_PASSWORD"`
	Name     string `envconfig:"SCENTVAULT_DB_NAME"`
	SSLMode  string `envconfig:"SCENTVAULT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SCENTVAULT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SCENTVAULT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SCENTVAULT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SCENTVAULT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	// SlowQuery is the duration above which statements are logged at warn.
	SlowQuery time.Duration `envconfig:"SCENTVAULT_DB_SLOW_QUERY" default:"500ms"`
}

func (d *DBConfig) resolve(useSQLite bool) error {
	switch {
	case d.DSN != "":
		return nil
	case useSQLite:
		d.Driver, d.DSN = "sqlite", sqliteFallbackDSN
		return nil
	}

	var missing []string
	for env, v := range map[string]string{EnvDBHost: d.Host, EnvDBUser: d.User, EnvDBName: d.Name} {
		if v == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("set %s or provide %s", EnvDBDSN, strings.Join(missing, ", "))
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.User(d.User),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SCENTVAULT_REDIS_URL"`
	Address      string        `envconfig:"SCENTVAULT_REDIS_ADDR"`
	Password     string        `envconfig:"SCENTVAULT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCENTVAULT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCENTVAULT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCENTVAULT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCENTVAULT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCENTVAULT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCENTVAULT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. Without one the
// shipping snapshot cache and quote rate limiting are skipped.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SCENTVAULT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SCENTVAULT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SCENTVAULT_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration is the lifetime of minted admin tokens.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type RateLimitConfig struct {
	QuoteWindow time.Duration `envconfig:"SCENTVAULT_RATE_LIMIT_QUOTE_WINDOW" default:"1m"`
	QuoteLimit  int           `envconfig:"SCENTVAULT_RATE_LIMIT_QUOTE_LIMIT" default:"60"`
}

func (r RateLimitConfig) validate() error {
	if r.QuoteLimit > 0 && r.QuoteWindow < time.Second {
		return fmt.Errorf("quote rate limit window must be at least 1s, got %s", r.QuoteWindow)
	}
	return nil
}

type ShippingConfig struct {
	SnapshotTTL         time.Duration `envconfig:"SCENTVAULT_SHIPPING_SNAPSHOT_TTL" default:"5m"`
	DefaultMultiAddress bool          `envconfig:"SCENTVAULT_SHIPPING_DEFAULT_MULTI_ADDRESS" default:"false"`
}

type PricingConfig struct {
	DefaultPairSample int `envconfig:"SCENTVAULT_PRICING_DEFAULT_PAIR_SAMPLE" default:"20"`
	MaxPairSample     int `envconfig:"SCENTVAULT_PRICING_MAX_PAIR_SAMPLE" default:"60"`
	DealsPageSize     int `envconfig:"SCENTVAULT_PRICING_DEALS_PAGE_SIZE" default:"10"`
	CatalogLimit      int `envconfig:"SCENTVAULT_PRICING_CATALOG_LIMIT" default:"200"`
}

func (p PricingConfig) validate() (err error) {
	if p.MaxPairSample < 0 || p.DefaultPairSample < 0 {
		err = multierr.Append(err, fmt.Errorf("pair sample sizes must be non-negative"))
	}
	if p.DefaultPairSample > p.MaxPairSample {
		err = multierr.Append(err, fmt.Errorf("default pair sample %d exceeds %s %d", p.DefaultPairSample, EnvPricingMaxPairSample, p.MaxPairSample))
	}
	if p.DealsPageSize <= 0 || p.CatalogLimit <= 0 {
		err = multierr.Append(err, fmt.Errorf("deals page size and catalog limit must be positive"))
	}
	return err
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SCENTVAULT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SCENTVAULT_AUTO_MIGRATE" default:"false"`
}
