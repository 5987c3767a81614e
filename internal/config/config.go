package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oracle-bridge/oracle-bridge/internal/domain/pricepair"
)

// Config holds service configuration.
type Config struct {
	ServerAddr     string
	StorageBackend string
	BoltPath       string
	DatabaseURL    string
	HostRPCURL     string

	// OwnerTokenHash is the bcrypt hash of the owner bearer token. An
	// empty hash leaves state-mutating endpoints open, mirroring the
	// anonymous-owner mode of the bridge.
	OwnerTokenHash string

	PriceFeedSource      string
	PriceRefreshInterval time.Duration
	AnswerPushInterval   time.Duration
	MaxPriceHistory      int

	AlertRules []pricepair.AlertRule
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "oracle_bridge")
		pass := getenv("POSTGRES_PASSWORD", "oracle_bridge_pass")
		db := getenv("POSTGRES_DB", "oracle_bridge")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	backend := strings.ToLower(getenv("STORAGE_BACKEND", "bolt"))
	if backend != "bolt" && backend != "postgres" {
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", backend)
	}

	source := strings.ToLower(getenv("PRICE_FEED_SOURCE", "coingecko"))
	if source != "coinbase" && source != "coingecko" {
		return nil, fmt.Errorf("unsupported PRICE_FEED_SOURCE %q", source)
	}

	rules, err := parseAlertRules(os.Getenv("ALERT_RULES"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerAddr:           getenv("SERVER_ADDR", "0.0.0.0:8080"),
		StorageBackend:       backend,
		BoltPath:             getenv("BOLT_PATH", "oracle-bridge.db"),
		DatabaseURL:          dsn,
		HostRPCURL:           getenv("HOST_RPC_URL", "http://localhost:8545"),
		OwnerTokenHash:       os.Getenv("OWNER_TOKEN_HASH"),
		PriceFeedSource:      source,
		PriceRefreshInterval: parseDuration(getenv("PRICE_REFRESH_INTERVAL", "5m"), 5*time.Minute),
		AnswerPushInterval:   parseDuration(getenv("ANSWER_PUSH_INTERVAL", "5m"), 5*time.Minute),
		MaxPriceHistory:      parseInt(getenv("MAX_PRICE_HISTORY", "1000"), 1000),
		AlertRules:           rules,
	}, nil
}

// parseAlertRules parses "name=expression;name=expression".
func parseAlertRules(raw string) ([]pricepair.AlertRule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var rules []pricepair.AlertRule
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, expr, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(expr) == "" {
			return nil, fmt.Errorf("invalid ALERT_RULES entry %q", part)
		}
		rules = append(rules, pricepair.AlertRule{
			Name:       strings.TrimSpace(name),
			Expression: strings.TrimSpace(expr),
		})
	}
	return rules, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
