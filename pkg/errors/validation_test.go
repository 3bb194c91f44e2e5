package errors

import (
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "n0", false},
		{"valid with dash", "node-17", false},
		{"valid with underscore", "my_node", false},
		{"valid with dot", "a.b", false},
		{"valid with space", "node one", false},
		{"valid unicode", "nœud", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "graphs/karate.json", false},
		{"valid absolute", "/tmp/layout.json", false},
		{"valid dotted", "./out.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 501)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	valid := map[string]bool{"full": true, "sparse": true, "omega": true}

	if err := ValidateChoice("strategy", "full", valid); err != nil {
		t.Errorf("ValidateChoice(full) error = %v, want nil", err)
	}

	err := ValidateChoice("strategy", "bogus", valid)
	if err == nil {
		t.Fatal("ValidateChoice(bogus) error = nil, want error")
	}
	if !Is(err, ErrCodeInvalidParameter) {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidParameter)
	}

	// Option list in the message is sorted for stable output.
	expected := `INVALID_PARAMETER: invalid strategy: "bogus" (valid: full, omega, sparse)`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidNodeIndex,
		ErrCodeInvalidGeometry,
		ErrCodeInvalidParameter,
		ErrCodeInvalidFormat,
		ErrCodeInvalidGraph,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeLayoutNotFound,
		ErrCodeFileNotFound,
		ErrCodeParse,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeStore,
		ErrCodeCache,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
