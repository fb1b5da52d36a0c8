package config

import (
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		def       string
		expected  string
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			def:       "default",
			expected:  "test_value",
		},
		{
			name:     "variable not set",
			key:      "TEST_VAR_MISSING",
			def:      "default",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if result := getenv(tt.key, tt.def); result != tt.expected {
				t.Errorf("getenv() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		def       time.Duration
		expected  time.Duration
	}{
		{
			name:      "valid duration",
			key:       "TEST_DURATION",
			value:     "30s",
			shouldSet: true,
			def:       5 * time.Second,
			expected:  30 * time.Second,
		},
		{
			name:      "invalid duration falls back to default",
			key:       "TEST_DURATION_INVALID",
			value:     "not_a_duration",
			shouldSet: true,
			def:       5 * time.Second,
			expected:  5 * time.Second,
		},
		{
			name:     "unset falls back to default",
			key:      "TEST_DURATION_MISSING",
			def:      5 * time.Second,
			expected: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if result := mustDuration(tt.key, tt.def); result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		def       bool
		expected  bool
	}{
		{
			name:      "explicit false",
			key:       "TEST_BOOL",
			value:     "false",
			shouldSet: true,
			def:       true,
			expected:  false,
		},
		{
			name:      "invalid value falls back to default",
			key:       "TEST_BOOL_INVALID",
			value:     "yep",
			shouldSet: true,
			def:       true,
			expected:  true,
		},
		{
			name:     "unset falls back to default",
			key:      "TEST_BOOL_MISSING",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if result := mustBool(tt.key, tt.def); result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8008" {
		t.Errorf("ListenPort = %v, want :8008", cfg.ListenPort)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.SeedFile != "" {
		t.Errorf("SeedFile = %v, want empty", cfg.SeedFile)
	}
}
