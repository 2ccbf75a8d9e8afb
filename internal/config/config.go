package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	S3         S3         `yaml:"s3"`
	LinkedIn   LinkedIn   `yaml:"linkedin"`
	Anthropic  Anthropic  `yaml:"anthropic"`
	Perplexity Perplexity `yaml:"perplexity"`
	Scheduler  Scheduler  `yaml:"scheduler"`
	Timezone   string     `yaml:"timezone" env:"APP_TIMEZONE" env-default:"Europe/Paris"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"60s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Address returns the full server address
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// Database holds database configuration
type Database struct {
	PostgresDSN string `yaml:"postgres_dsn" env:"DATABASE_URL"`

	MaxOpenConns int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnLifetime time.Duration `yaml:"conn_lifetime" env:"DB_CONN_LIFETIME" env-default:"5m"`
}

// Redis holds Redis cache configuration
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// S3 holds S3/MinIO storage configuration for post image assets
type S3 struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-default:"assets"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL" env-default:"http://localhost:9000/assets"`
}

// LinkedIn holds LinkedIn OAuth and REST API configuration
type LinkedIn struct {
	ClientID     string `yaml:"client_id" env:"LINKEDIN_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"LINKEDIN_CLIENT_SECRET"`
	RedirectURI  string `yaml:"redirect_uri" env:"LINKEDIN_REDIRECT_URI" env-default:"http://localhost:3000/linkedin-callback"`
	AuthBaseURL  string `yaml:"auth_base_url" env:"LINKEDIN_AUTH_BASE_URL" env-default:"https://www.linkedin.com/oauth/v2"`
	APIBaseURL   string `yaml:"api_base_url" env:"LINKEDIN_API_BASE_URL" env-default:"https://api.linkedin.com"`
}

// Anthropic holds Claude API configuration
type Anthropic struct {
	APIKey  string  `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	BaseURL string  `yaml:"base_url" env:"ANTHROPIC_BASE_URL" env-default:"https://api.anthropic.com"`
	Model   string  `yaml:"model" env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-20250514"`
	RPS     float64 `yaml:"rps" env:"ANTHROPIC_RPS" env-default:"1"`
}

// Perplexity holds Perplexity API configuration
type Perplexity struct {
	APIKey  string  `yaml:"api_key" env:"PERPLEXITY_API_KEY"`
	BaseURL string  `yaml:"base_url" env:"PERPLEXITY_BASE_URL" env-default:"https://api.perplexity.ai"`
	Model   string  `yaml:"model" env:"PERPLEXITY_MODEL" env-default:"sonar"`
	RPS     float64 `yaml:"rps" env:"PERPLEXITY_RPS" env-default:"1"`
}

// Scheduler holds scheduled-post worker configuration
type Scheduler struct {
	Enabled  bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
	Interval time.Duration `yaml:"interval" env:"SCHEDULER_INTERVAL" env-default:"1m"`
}

// MustLoad loads configuration from environment and panics on error
func MustLoad() Config {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
