package config // package config loads application configuration from environment variables

import (
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
// Every value carries a local-development default so the server can start
// with an empty environment.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign JWTs
    AccessTTLDays  int    // access token time-to-live in days
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
    CORSOrigin     string // allowed CORS origin for browser clients
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing variables fall back to defaults suitable for local
// development; production deployments are expected to supply all of them.
func Load() Config {
    return Config{
        Env:            getenv("APP_ENV", "dev"),                       // environment (dev/test/prod)
        Port:           getenv("APP_PORT", "8080"),                     // port to bind the HTTP server
        DBUser:         getenv("DB_USER", "skillpath"),                 // database user
        DBPass:         os.Getenv("DB_PASS"),                           // database password (empty allowed)
        DBHost:         getenv("DB_HOST", "localhost"),                 // database host
        DBPort:         getenv("DB_PORT", "3306"),                      // database port
        DBName:         getenv("DB_NAME", "skillpath"),                 // database name
        JWTSecret:      getenv("JWT_SECRET", "dev-secret-change-me"),   // secret used for signing JWTs
        AccessTTLDays:  envIntDef("ACCESS_TOKEN_TTL_DAYS", 7),          // TTL for access tokens in days
        RefreshTTLDays: envIntDef("REFRESH_TOKEN_TTL_DAYS", 30),        // TTL for refresh tokens in days
        BcryptCost:     envIntDef("BCRYPT_COST", 10),                   // bcrypt cost factor
        CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:5173"), // SPA origin allowed by CORS
    }
}

// envIntDef converts an environment variable into an integer, falling back
// to the default when the variable is unset or malformed.
func envIntDef(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
