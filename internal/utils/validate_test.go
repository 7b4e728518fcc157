package utils

import "testing"

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "alice", true},
		{"with digits and underscore", "alice_42", true},
		{"minimum length", "abc", true},
		{"too short", "ab", false},
		{"too long", "a234567890123456789012345678901", false},
		{"empty", "", false},
		{"spaces", "alice smith", false},
		{"punctuation", "alice!", false},
		{"hyphen", "alice-smith", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUsername(tt.in); got != tt.want {
				t.Errorf("ValidUsername(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain", "alice@example.com", true},
		{"subdomain", "alice@mail.example.com", true},
		{"plus tag", "alice+tag@example.com", true},
		{"missing at", "alice.example.com", false},
		{"missing domain", "alice@", false},
		{"empty", "", false},
		{"display name form", "Alice <alice@example.com>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidEmail(tt.in); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"meets policy", "Abc123", true},
		{"longer", "Sup3rSecret", true},
		{"too short", "Ab1", false},
		{"no upper", "abc123", false},
		{"no lower", "ABC123", false},
		{"no digit", "Abcdef", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPassword(tt.in); got != tt.want {
				t.Errorf("ValidPassword(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
