package model

import "time"

// Roles assignable to a user account.  Admins bypass ownership checks on
// roadmaps and may mutate any record.
const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

// Preferences stores per-user UI and notification settings.  It is
// persisted as a JSON column on the users row and returned verbatim to
// clients.
//
// Fields:
//  Theme              – UI theme name ("light", "dark" or "system").
//  EmailNotifications – whether the user receives email notifications.
//  PushNotifications  – whether the user receives push notifications.
type Preferences struct {
    Theme              string `json:"theme"`
    EmailNotifications bool   `json:"emailNotifications"`
    PushNotifications  bool   `json:"pushNotifications"`
}

// DefaultPreferences returns the settings applied to a freshly registered
// account.
func DefaultPreferences() Preferences {
    return Preferences{Theme: "system", EmailNotifications: true, PushNotifications: false}
}

// User represents an application user record as stored in the `users`
// table.  The struct doubles as the public API projection: PasswordHash is
// excluded from serialization so the hash can never leak through a
// response, and repositories are the only readers of that field.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Username      – unique handle, 3–30 chars, alphanumeric plus underscore.
//  Email         – unique email address, stored lower-cased.
//  PasswordHash  – bcrypt hashed password; never serialized.
//  FirstName     – optional given name.
//  LastName      – optional family name.
//  AvatarURL     – optional profile image URL.
//  EmailVerified – whether the address has been confirmed.
//  Role          – "user" or "admin".
//  Preferences   – theme and notification settings (JSON column).
//  LastLoginAt   – timestamp of the most recent successful login.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
    ID            uint64      `json:"id"`            // users.id
    Username      string      `json:"username"`      // users.username
    Email         string      `json:"email"`         // users.email
    PasswordHash  string      `json:"-"`             // users.password_hash
    FirstName     string      `json:"firstName"`     // users.first_name
    LastName      string      `json:"lastName"`      // users.last_name
    AvatarURL     string      `json:"avatarUrl"`     // users.avatar_url
    EmailVerified bool        `json:"emailVerified"` // users.email_verified
    Role          string      `json:"role"`          // users.role
    Preferences   Preferences `json:"preferences"`   // users.preferences (JSON)
    LastLoginAt   *time.Time  `json:"lastLoginAt"`   // users.last_login_at (nullable)
    CreatedAt     time.Time   `json:"createdAt"`     // users.created_at
    UpdatedAt     time.Time   `json:"updatedAt"`     // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each user
// keeps at most the five most recently issued tokens; the plain token is
// not stored, only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the refresh JWT.
//  ExpiresAt – expiration timestamp of the token.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64    // refresh_tokens.id
    UserID    uint64    // refresh_tokens.user_id
    TokenHash string    // refresh_tokens.token_hash
    ExpiresAt time.Time // refresh_tokens.expires_at
    CreatedAt time.Time // refresh_tokens.created_at
}
