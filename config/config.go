package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultCheckInterval = 3600 * time.Second
	DefaultPingInterval  = 600 * time.Second
	DefaultPort          = "8080"
	DefaultCohereModel   = "command-r-08-2024"
)

// Config holds the full process configuration, read once at startup.
type Config struct {
	// Required
	SubstackURL   string
	CohereAPIKey  string
	PostmarkToken string
	SenderEmail   string
	Recipients    []string

	// Optional with defaults
	CheckInterval time.Duration
	PingInterval  time.Duration
	Port          string
	PublicURL     string
	CohereModel   string

	// Optional collaborators (empty means disabled)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from the environment. It returns an error listing
// every missing required variable so the process can refuse to start.
func Load() (*Config, error) {
	cfg := &Config{
		SubstackURL:   strings.TrimSpace(os.Getenv("SUBSTACK_BLOG_URL")),
		CohereAPIKey:  strings.TrimSpace(os.Getenv("COHERE_API_KEY")),
		PostmarkToken: strings.TrimSpace(os.Getenv("POSTMARK_API_TOKEN")),
		SenderEmail:   strings.TrimSpace(os.Getenv("EMAIL_SENDER")),
		Recipients:    splitRecipients(os.Getenv("EMAIL_RECEIVERS")),

		CheckInterval: durationFromEnv("CHECK_INTERVAL", DefaultCheckInterval),
		PingInterval:  durationFromEnv("PING_INTERVAL", DefaultPingInterval),
		Port:          getEnvOrDefault("PORT", DefaultPort),
		CohereModel:   getEnvOrDefault("COHERE_MODEL", DefaultCohereModel),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),

		KafkaTopic: getEnvOrDefault("KAFKA_TOPIC", "monitor.summaries"),
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	cfg.PublicURL = getEnvOrDefault("PUBLIC_URL", "http://localhost:"+cfg.Port)
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	var missing []string
	if cfg.SubstackURL == "" {
		missing = append(missing, "SUBSTACK_BLOG_URL")
	}
	if cfg.CohereAPIKey == "" {
		missing = append(missing, "COHERE_API_KEY")
	}
	if cfg.PostmarkToken == "" {
		missing = append(missing, "POSTMARK_API_TOKEN")
	}
	if cfg.SenderEmail == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if len(cfg.Recipients) == 0 {
		missing = append(missing, "EMAIL_RECEIVERS")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

// durationFromEnv reads a whole-seconds value, falling back on the default
// when unset or unparsable.
func durationFromEnv(key string, defaultVal time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func splitRecipients(raw string) []string {
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
