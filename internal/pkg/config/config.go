package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=0"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Twilio    TwilioConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fastfix"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// TwilioConfig holds the notification gateway credentials. All three
// credential fields must be set for the gateway to place calls; otherwise
// contact endpoints respond 503.
type TwilioConfig struct {
	AccountSID    string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken     string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber    string `env:"TWILIO_PHONE_NUMBER"`
	CountryPrefix string `env:"TWILIO_COUNTRY_PREFIX, default=+91"`
}

type RateLimitConfig struct {
	Limit  int           `env:"RATE_LIMIT,        default=20"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
