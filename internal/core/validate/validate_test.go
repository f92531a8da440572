package validate

import (
	"testing"
)

func TestSessionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b5f2a4e-6c1d-4f8e-9a3b-2d7c1e0f4a56", false},
		{"default", "default", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"inner space", "my session", true},
		{"trailing newline", "abc\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SessionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("SessionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "users", false},
		{"with spaces", "order items", false},
		{"with dots", "users.v2", false},
		{"backtick", "a`b", true},
		{"quoted", "`users`", true},
		{"empty string", "", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name("table", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Name(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
