package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/fjscene/internal/cli"
	"github.com/matzehuels/fjscene/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   int
		output string
	}{
		{"nil", nil, 0, ""},
		{"renderer status", &cli.ExitError{Code: 3}, 3, ""},
		{"renderer signal", fmt.Errorf("run: %w", &cli.ExitError{Code: 139}), 139, ""},
		{"interrupted", errors.Wrap(errors.ErrCodeInterrupted, context.Canceled, "Rendering terminated"), 130, "Rendering terminated: context canceled\n"},
		{"bare cancel", context.Canceled, 130, "context canceled\n"},
		{"config", errors.New(errors.ErrCodeConfig, "FJ_LIBRARY_PATH is not set"), 1, "Error: FJ_LIBRARY_PATH is not set\n"},
		{"plain", fmt.Errorf("open scene.fjs: no such file"), 1, "Error: open scene.fjs: no such file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitCode(&buf, tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if buf.String() != tt.output {
				t.Errorf("output = %q, want %q", buf.String(), tt.output)
			}
		})
	}
}
