package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	PublicBaseURL   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	DatabaseURL     string
	Env             string

	// External workflow endpoints. The browser-based predecessor hardcoded
	// these (plus a bearer token) in client code; here they are injected.
	ConvertServiceURL string
	VectorWorkflowURL string
	ChatWorkflowURL   string
	CivicWorkflowURL  string
	WorkflowAuthToken string
	WorkflowTimeout   time.Duration
}

// defaultWorkflowTimeout bounds workflow calls; vectorization of two PDFs
// routinely runs over a minute.
const defaultWorkflowTimeout = 120 * time.Second

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:   normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		DatabaseURL:       dbURL,
		Env:               env,
		ConvertServiceURL: getEnv("CONVERT_SERVICE_URL", ""),
		VectorWorkflowURL: getEnv("VECTOR_WORKFLOW_URL", ""),
		ChatWorkflowURL:   getEnv("CHAT_WORKFLOW_URL", ""),
		CivicWorkflowURL:  getEnv("CIVIC_WORKFLOW_URL", ""),
		WorkflowAuthToken: getEnv("WORKFLOW_AUTH_TOKEN", ""),
		WorkflowTimeout:   workflowTimeoutFromEnv(),
	}
}

func workflowTimeoutFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("WORKFLOW_TIMEOUT_SECONDS"))
	if raw == "" {
		return defaultWorkflowTimeout
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("WORKFLOW_TIMEOUT_SECONDS invalid (%q), using default", raw)
		return defaultWorkflowTimeout
	}
	return time.Duration(parsed) * time.Second
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
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
	default:
		return "local"
	}
}
