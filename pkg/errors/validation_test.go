package errors

import (
	"testing"
)

func TestValidateArgument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "cam1", false},
		{"path", "../../mip/ennis.mip", false},
		{"number", "-0.5", false},

		{"empty", "", true},
		{"space", "my cam", true},
		{"tab", "a\tb", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
		{"null byte", "foo\x00bar", true},
		{"non-breaking space", "a\u00a0b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgument(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgument(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedInvocation) {
				t.Errorf("ValidateArgument(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeMalformedInvocation)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"sentence", "1 dragon with 1 point light", false},
		{"empty", "", false},
		{"tab", "a\tb", false},

		{"newline", "line1\nline2", true},
		{"carriage return", "line1\rline2", true},
		{"bell", "ding\x07", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "mesh/dragon.ply", false},
		{"absolute", "/tmp/out.exr", false},
		{"parent", "../../mesh/floor.mesh", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"space", "my scene/out.fb", true},
		{"newline", "out\n.fb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
