package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Saved-jobs backends accepted by SAVED_STORE
const (
	StoreMemory   = "memory"
	StoreNeo4j    = "neo4j"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config contains runtime settings for the catalog server
type Config struct {
	LogLevel  string
	LogFormat string // json or console
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	Catalog struct {
		DataDir      string
		IndexFile    string
		RawDir       string // optional, raw_job_<id>.json documents
		Revalidate   time.Duration
		Retry        time.Duration
		WarmSpec     string // cron spec; empty disables the warmer
		Timezone     string
		Location     *time.Location
		FormsBaseURL string
		Parallelism  int
	}

	SavedStore string
	Neo4j      struct {
		URI      string
		Username string
		Password string
		Database string
	}
	Postgres struct {
		URL string
	}
	Redis struct {
		URL       string
		KeyPrefix string
	}

	Session struct {
		Key  string
		Name string
	}

	Sheets struct {
		CredentialsPath string
	}
}

// Load populates config from environment variables, reading .env first when present
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		LogLevel:   "info",
		LogFormat:  "json",
		Host:       "0.0.0.0",
		Port:       "8080",
		SavedStore: StoreMemory,
	}
	cfg.Catalog.DataDir = "data"
	cfg.Catalog.IndexFile = "jobs-index.json"
	cfg.Catalog.Revalidate = time.Hour
	cfg.Catalog.Retry = 30 * time.Second
	cfg.Catalog.Timezone = "Asia/Kolkata"
	cfg.Catalog.Parallelism = 8

	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set("LOG_LEVEL", &cfg.LogLevel)
	set("LOG_FORMAT", &cfg.LogFormat)
	set("HOST", &cfg.Host)
	set("PORT", &cfg.Port)

	set("DATA_DIR", &cfg.Catalog.DataDir)
	set("INDEX_FILE", &cfg.Catalog.IndexFile)
	set("RAW_DIR", &cfg.Catalog.RawDir)
	set("CATALOG_WARM_SPEC", &cfg.Catalog.WarmSpec)
	set("TIMEZONE", &cfg.Catalog.Timezone)
	set("FORMS_BASE_URL", &cfg.Catalog.FormsBaseURL)

	set("SAVED_STORE", &cfg.SavedStore)
	cfg.SavedStore = strings.ToLower(cfg.SavedStore)

	cfg.Neo4j.URI = getenv("NEO4J_URI")
	cfg.Neo4j.Username = getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = getenv("NEO4J_DATABASE")
	cfg.Postgres.URL = getenv("DATABASE_URL")
	cfg.Redis.URL = getenv("REDIS_URL")
	cfg.Redis.KeyPrefix = getenv("REDIS_KEY_PREFIX")

	cfg.Session.Key = getenv("SESSION_KEY")
	cfg.Session.Name = getenv("SESSION_NAME")

	cfg.Sheets.CredentialsPath = getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var problems []string

	parseDuration := func(key string, dst *time.Duration) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			problems = append(problems, fmt.Sprintf("%s: invalid duration %q", key, v))
			return
		}
		*dst = d
	}
	parseDuration("CATALOG_REVALIDATE", &cfg.Catalog.Revalidate)
	parseDuration("CATALOG_RETRY", &cfg.Catalog.Retry)

	if v := strings.TrimSpace(getenv("CATALOG_PARALLELISM")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			problems = append(problems, fmt.Sprintf("CATALOG_PARALLELISM: invalid value %q", v))
		} else {
			cfg.Catalog.Parallelism = n
		}
	}

	loc, err := time.LoadLocation(cfg.Catalog.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE: %v", err))
	} else {
		cfg.Catalog.Location = loc
	}

	var missingVars []string
	switch cfg.SavedStore {
	case StoreMemory:
	case StoreNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	case StorePostgres:
		if cfg.Postgres.URL == "" {
			missingVars = append(missingVars, "DATABASE_URL")
		}
	case StoreRedis:
		if cfg.Redis.URL == "" {
			missingVars = append(missingVars, "REDIS_URL")
		}
	default:
		problems = append(problems, fmt.Sprintf("SAVED_STORE: unknown backend %q", cfg.SavedStore))
	}

	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Addr returns host:port for the HTTP listener
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
