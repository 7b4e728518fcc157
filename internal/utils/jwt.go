package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/sha256" // SHA-256 hashing for stored refresh tokens
    "encoding/hex"  // hex encoding for the digest
    "errors"        // sentinel errors distinguishing failure causes
    "strings"       // bearer header parsing
    "time"          // expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Issuer and audience embedded in every token and checked on verification.
const (
    tokenIssuer   = "skillpath"
    tokenAudience = "skillpath-api"
)

// Sentinel errors let callers map verification failures to distinct
// machine-readable codes: an expired token is reported differently from a
// malformed one or a token that fails signature/claim checks.
var (
    ErrTokenExpired   = errors.New("token expired")
    ErrTokenMalformed = errors.New("token malformed")
    ErrTokenInvalid   = errors.New("token invalid")
)

// AccessClaims is the payload of an access token: the user's identity plus
// the registered claims.
type AccessClaims struct {
    jwt.RegisteredClaims
    UserID   uint64 `json:"id"`
    Username string `json:"username"`
    Email    string `json:"email"`
    Role     string `json:"role"`
}

// RefreshClaims is the payload of a refresh token.  It deliberately carries
// only the user id; VerifyRefresh rejects tokens that also carry identity
// claims so an access token cannot be replayed as a refresh token.
type RefreshClaims struct {
    jwt.RegisteredClaims
    UserID uint64 `json:"id"`
}

// TokenPair bundles the two tokens returned by every authentication flow.
type TokenPair struct {
    AccessToken      string    `json:"accessToken"`
    AccessExpiresAt  time.Time `json:"accessExpiresAt"`
    RefreshToken     string    `json:"refreshToken"`
    RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// NewAccessToken builds and signs an HS256 access token carrying the user's
// id, username, email and role.  The TTL is expressed in days.
func NewAccessToken(secret string, userID uint64, username, email, role string, ttlDays int) (string, time.Time, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
    claims := AccessClaims{
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    tokenIssuer,
            Audience:  jwt.ClaimStrings{tokenAudience},
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
        UserID:   userID,
        Username: username,
        Email:    email,
        Role:     role,
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// NewRefreshToken builds and signs an HS256 refresh token carrying only the
// user id.  The TTL is expressed in days and is expected to exceed the
// access token's.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (string, time.Time, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
    claims := RefreshClaims{
        RegisteredClaims: jwt.RegisteredClaims{
            Issuer:    tokenIssuer,
            Audience:  jwt.ClaimStrings{tokenAudience},
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
        UserID: userID,
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// NewTokenPair mints a matched access/refresh pair for a user.
func NewTokenPair(secret string, userID uint64, username, email, role string, accessTTLDays, refreshTTLDays int) (TokenPair, error) {
    access, accessExp, err := NewAccessToken(secret, userID, username, email, role, accessTTLDays)
    if err != nil {
        return TokenPair{}, err
    }
    refresh, refreshExp, err := NewRefreshToken(secret, userID, refreshTTLDays)
    if err != nil {
        return TokenPair{}, err
    }
    return TokenPair{
        AccessToken:      access,
        AccessExpiresAt:  accessExp,
        RefreshToken:     refresh,
        RefreshExpiresAt: refreshExp,
    }, nil
}

// VerifyAccess parses and validates an access token, returning its claims.
// Expired, malformed and otherwise invalid tokens map to distinct errors.
func VerifyAccess(raw, secret string) (*AccessClaims, error) {
    claims := &AccessClaims{}
    if err := parseInto(raw, secret, claims); err != nil {
        return nil, err
    }
    return claims, nil
}

// VerifyRefresh parses and validates a refresh token.  A structurally valid
// token that carries username or email claims is an access token being
// replayed and is rejected.
func VerifyRefresh(raw, secret string) (*RefreshClaims, error) {
    // Parse into AccessClaims first so identity claims, when present,
    // survive decoding and can be checked.
    wide := &AccessClaims{}
    if err := parseInto(raw, secret, wide); err != nil {
        return nil, err
    }
    if wide.Username != "" || wide.Email != "" {
        return nil, ErrTokenInvalid
    }
    return &RefreshClaims{RegisteredClaims: wide.RegisteredClaims, UserID: wide.UserID}, nil
}

// parseInto runs the shared verification pipeline: HMAC-only signing
// method, signature, expiry, issuer and audience.
func parseInto(raw, secret string, claims jwt.Claims) error {
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenInvalid
        }
        return []byte(secret), nil
    }, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
    switch {
    case err == nil && tok.Valid:
        return nil
    case errors.Is(err, jwt.ErrTokenExpired):
        return ErrTokenExpired
    case errors.Is(err, jwt.ErrTokenMalformed):
        return ErrTokenMalformed
    default:
        return ErrTokenInvalid
    }
}

// ExtractBearer returns the token portion of an "Authorization: Bearer
// <token>" header value, or "" when the header is absent or not a bearer.
func ExtractBearer(header string) string {
    if !strings.HasPrefix(header, "Bearer ") {
        return ""
    }
    return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// HashRefreshRaw returns the SHA-256 hash of a refresh token as a hex
// string.  Only the hash is persisted so stolen database rows cannot be
// used to refresh sessions.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
