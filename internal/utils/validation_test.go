package utils

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "error with field",
			err: ValidationError{
				Field:   "schema",
				Value:   "",
				Message: "cannot be empty",
			},
			expected: "validation error for field 'schema': cannot be empty",
		},
		{
			name: "error without field",
			err: ValidationError{
				Message: "invalid format",
			},
			expected: "validation error: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNotEmpty(t *testing.T) {
	validator := NotEmpty("test_field")

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid string", "hello", false},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NotEmpty(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidGoIdentifier(t *testing.T) {
	validator := IsValidGoIdentifier("name")

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"Writer", false},
		{"enumWriter", false},
		{"_private", false},
		{"", true},
		{"123abc", true},
		{"foo-bar", true},
		{"func", true},
	}

	for _, tt := range tests {
		err := validator(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("IsValidGoIdentifier(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(NotEmpty("field")).Add(IsValidGoIdentifier("field"))

	if err := chain.Validate("golang"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := chain.Validate(""); err == nil {
		t.Error("expected first validator to fail")
	}
	if err := chain.Validate("not valid"); err == nil {
		t.Error("expected second validator to fail")
	}
}

func TestValidateUnionName(t *testing.T) {
	validator := ValidateUnionName("union")

	if err := validator("Writer"); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := validator(""); err == nil {
		t.Error("expected error for empty name")
	}
	if err := validator("not valid"); err == nil {
		t.Error("expected error for invalid identifier")
	}
	if err := validator("select"); err == nil {
		t.Error("expected error for keyword")
	}
}
