package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"listdist/internal/distribution"
)

const defaultMaxUploadBytes = 5 << 20

// defaultRoster is used when AGENT_ROSTER is unset.
var defaultRoster = []string{
	"John Doe",
	"Jane Smith",
	"Mike Johnson",
	"Sarah Wilson",
	"David Brown",
}

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	ObjectStoreType  string
	LocalStoreDir    string
	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	SSEKMSKeyID      string
	DatabaseURL      string
	Env              string
	AgentRoster      []string
	AllowedMimeTypes []string
	ParserMode       string
	MaxUploadBytes   int64
	UploadRateLimit  RateLimit
}

// RateLimit is a token bucket setting; zero values disable limiting.
type RateLimit struct {
	Rate  float64
	Burst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is empty in production; list history will not survive restarts")
	}

	roster := splitAndTrim(os.Getenv("AGENT_ROSTER"))
	if len(roster) == 0 {
		roster = append([]string(nil), defaultRoster...)
	}
	mimeTypes := splitAndTrim(os.Getenv("ALLOWED_MIME_TYPES"))
	if len(mimeTypes) == 0 {
		mimeTypes = append([]string(nil), distribution.DefaultMimeTypes...)
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:  normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:    getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Prefix:         getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:      dbURL,
		Env:              env,
		AgentRoster:      roster,
		AllowedMimeTypes: mimeTypes,
		ParserMode:       normalizeParserMode(getEnv("PARSER_MODE", distribution.ParserModeNaive)),
		MaxUploadBytes:   getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		UploadRateLimit: RateLimit{
			Rate:  getEnvFloat("RATE_LIMIT_UPLOAD_RPS", 1),
			Burst: int(getEnvInt64("RATE_LIMIT_UPLOAD_BURST", 5)),
		},
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val < 0 {
		log.Printf("config env %s invalid int: %q", key, raw)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config env %s invalid number: %q", key, raw)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "none", "off":
		return "none"
	default:
		return "local"
	}
}

func normalizeParserMode(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), distribution.ParserModeQuoted) {
		return distribution.ParserModeQuoted
	}
	return distribution.ParserModeNaive
}
