package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig controls the Redis-backed admission gate applied ahead of
// all routes.  The external contract is a request ceiling per window per IP;
// internally the middleware runs a token bucket whose capacity is the
// ceiling and which refills completely once per window.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // request ceiling per window
    RefillTokens   int           // tokens restored per refill interval
    RefillInterval time.Duration // length of one window
    TTL            time.Duration // idle lifetime of a bucket key in Redis
    KeyStrategy    string        // what identifies a caller; default per-IP
    Prefix         string        // Redis key namespace
    Debug          bool
}

// LoadRateLimitConfig builds the limiter settings from the environment.
// RATE_LIMIT_MAX and RATE_LIMIT_WINDOW express the public ceiling and
// window; the remaining variables tune the underlying bucket directly.
func LoadRateLimitConfig() RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_MAX", 100),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 0),
        RefillInterval: envDur("RATE_LIMIT_WINDOW", 15*time.Minute),
        TTL:            envDur("RATE_LIMIT_TTL", time.Hour),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    // A full refill every window gives fixed-window semantics by default.
    if def.RefillTokens < 1 {
        def.RefillTokens = def.Capacity
    }
    if def.Capacity < 1 {
        def.Capacity = 1
    }
    if def.RefillInterval <= 0 {
        def.RefillInterval = time.Minute
    }
    minTTL := 2 * def.RefillInterval
    if def.TTL < minTTL {
        def.TTL = minTTL
    }
    return def
}

func envStr(k, d string) string { if v := os.Getenv(k); v != "" { return v }; return d }
func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" { return d }
    switch v {
    case "1","true","TRUE","True","yes","YES","on","ON": return true
    case "0","false","FALSE","False","no","NO","off","OFF": return false
    }
    return d
}
func envInt(k string, d int) int {
    v := os.Getenv(k); if v == "" { return d }
    if n, err := strconv.Atoi(v); err == nil { return n }
    return d
}
func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k); if v == "" { return d }
    if dur, err := time.ParseDuration(v); err == nil { return dur }
    return d
}
