package utils

import (
    "net/mail"
    "regexp"
    "strings"
    "unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// ValidUsername reports whether s is 3–30 characters of letters, digits and
// underscores.
func ValidUsername(s string) bool {
    return usernameRe.MatchString(s)
}

// NormalizeEmail lower-cases and trims an email address.  The normalized
// form is what gets persisted and compared for uniqueness.
func NormalizeEmail(s string) string {
    return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether s parses as an address per RFC 5322.
func ValidEmail(s string) bool {
    a, err := mail.ParseAddress(s)
    return err == nil && a.Address == s
}

// ValidPassword enforces the password policy: at least 6 characters with at
// least one upper-case letter, one lower-case letter and one digit.
func ValidPassword(s string) bool {
    if len(s) < 6 {
        return false
    }
    var upper, lower, digit bool
    for _, r := range s {
        switch {
        case unicode.IsUpper(r):
            upper = true
        case unicode.IsLower(r):
            lower = true
        case unicode.IsDigit(r):
            digit = true
        }
    }
    return upper && lower && digit
}
