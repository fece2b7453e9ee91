package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Notification transports.
const (
	TransportLog   = "log"
	TransportKafka = "kafka"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	StoreDriver        string
	MigrationsPath     string
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
	TemplateSeedFile   string

	Documents    DocumentConfig
	S3           S3Config
	Notification NotificationConfig
}

// DocumentConfig controls decision-letter generation.
type DocumentConfig struct {
	Dir      string        // Local output directory when S3 is disabled
	Required bool          // Generation failure blocks the transition when true
	Timeout  time.Duration // Upper bound on one generation call
}

// S3Config points document storage at an S3-compatible bucket.
type S3Config struct {
	Enabled         bool
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

// NotificationConfig is handed to the notification bridge at construction.
type NotificationConfig struct {
	EmailEnabled bool
	SMSEnabled   bool
	Transport    string
	Timeout      time.Duration
	Async        bool
	Workers      int
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "plan-approval-app")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("TEMPLATE_SEED_FILE", "configs/message_templates.yaml")
	viper.SetDefault("DOCUMENT_DIR", "generated_documents")
	viper.SetDefault("DOCUMENT_REQUIRED", false)
	viper.SetDefault("DOCUMENT_TIMEOUT", "10s")
	viper.SetDefault("S3_ENABLED", false)
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("NOTIFY_EMAIL_ENABLED", true)
	viper.SetDefault("NOTIFY_SMS_ENABLED", true)
	viper.SetDefault("NOTIFY_TRANSPORT", TransportLog)
	viper.SetDefault("NOTIFY_TIMEOUT", "5s")
	viper.SetDefault("NOTIFY_ASYNC", false)
	viper.SetDefault("NOTIFY_WORKERS", 4)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "plan-notifications")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.TemplateSeedFile = viper.GetString("TEMPLATE_SEED_FILE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		log.Printf("Warning: Invalid value for STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", 8*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.Documents = DocumentConfig{
		Dir:      viper.GetString("DOCUMENT_DIR"),
		Required: viper.GetBool("DOCUMENT_REQUIRED"),
		Timeout:  parseDuration("DOCUMENT_TIMEOUT", 10*time.Second),
	}

	cfg.S3 = S3Config{
		Enabled:         viper.GetBool("S3_ENABLED"),
		Endpoint:        viper.GetString("S3_ENDPOINT"),
		Region:          viper.GetString("S3_REGION"),
		AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
		SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
		BucketName:      viper.GetString("S3_BUCKET"),
	}
	if cfg.S3.Enabled && cfg.S3.BucketName == "" {
		log.Println("Warning: S3_ENABLED is set but S3_BUCKET is empty. Falling back to local document storage.")
		cfg.S3.Enabled = false
	}

	cfg.Notification = NotificationConfig{
		EmailEnabled: viper.GetBool("NOTIFY_EMAIL_ENABLED"),
		SMSEnabled:   viper.GetBool("NOTIFY_SMS_ENABLED"),
		Transport:    strings.ToLower(viper.GetString("NOTIFY_TRANSPORT")),
		Timeout:      parseDuration("NOTIFY_TIMEOUT", 5*time.Second),
		Async:        viper.GetBool("NOTIFY_ASYNC"),
		Workers:      viper.GetInt("NOTIFY_WORKERS"),
		KafkaBrokers: splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaTopic:   viper.GetString("KAFKA_TOPIC"),
	}
	if cfg.Notification.Workers <= 0 {
		cfg.Notification.Workers = 1
	}
	if cfg.Notification.Transport != TransportLog && cfg.Notification.Transport != TransportKafka {
		log.Printf("Warning: Invalid value for NOTIFY_TRANSPORT ('%s'). Defaulting to %s.\n", cfg.Notification.Transport, TransportLog)
		cfg.Notification.Transport = TransportLog
	}

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
