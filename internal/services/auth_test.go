package services

import (
	"testing"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!pass", false},
		{"too short", "A1!b2@c", true},
		{"no digits", "Strong!pass", true},
		{"no symbols", "Strong1pass", true},
		{"no letters", "12345678!@", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected %q to be rejected", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected %q to pass, got %v", tc.password, err)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+tag@sub.example.co"}
	for _, email := range valid {
		if !emailRegex.MatchString(email) {
			t.Fatalf("expected %q to be accepted", email)
		}
	}

	invalid := []string{"", "alice", "alice@", "@example.com", "alice@example"}
	for _, email := range invalid {
		if emailRegex.MatchString(email) {
			t.Fatalf("expected %q to be rejected", email)
		}
	}
}
