// Package pipeline runs a built scene: conversions, renderer, conversions.
//
// # Architecture
//
// A run has three sequential stages:
//
//  1. Pre: run every pre-conversion job in the order it was scheduled
//  2. Render: start the renderer and stream the protocol to its stdin
//  3. Post: run every post-conversion job in order
//
// Any failing conversion aborts the run. The renderer's exit status is not
// an error: it is returned in [Result.Status] so callers can mirror it.
// Post conversions run whatever that status is, so a failed render is
// usually followed by a converter failing on a missing intermediate file.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(pipeline.Config{
//	    LibraryPath: os.Getenv("FJ_LIBRARY_PATH"),
//	    Logger:      logger,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Run(ctx, builder)
//	if err != nil {
//	    return err
//	}
//	os.Exit(result.Status.Code)
//
// [Print] writes the same plan as a replayable script instead of running it.
package pipeline

import (
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fjscene/pkg/config"
	"github.com/matzehuels/fjscene/pkg/convert"
	"github.com/matzehuels/fjscene/pkg/errors"
)

// =============================================================================
// Config
// =============================================================================

// Config configures a Runner.
type Config struct {
	// LibraryPath is the renderer's native library directory. Required.
	LibraryPath string

	// Renderer is the renderer executable (default "scene").
	Renderer string

	// Converters maps converter names to executables. Names missing from the
	// map are run as-is and looked up on PATH.
	Converters map[string]string

	// Timeout bounds each subprocess. Zero waits forever.
	Timeout time.Duration

	// GOOS selects the library path variable. Empty means runtime.GOOS.
	GOOS string

	// Environ is the base environment of child processes.
	// Nil means os.Environ().
	Environ []string

	// Stdout and Stderr receive subprocess output (default os.Stdout, os.Stderr).
	Stdout io.Writer
	Stderr io.Writer

	Logger   *log.Logger
	Executor Executor
}

// FromConfig builds a runner Config from loaded settings.
func FromConfig(c *config.Config, libraryPath string) Config {
	return Config{
		LibraryPath: libraryPath,
		Renderer:    c.Renderer,
		Converters:  c.Converters,
		Timeout:     c.Timeout.Duration,
	}
}

// =============================================================================
// Result
// =============================================================================

// Status is the exit status of a subprocess.
type Status struct {
	// Code is the exit code; for signal terminations it is 128+signal.
	Code int

	// Signaled reports a termination by signal.
	Signaled bool

	// Signal is the signal description, e.g. "segmentation fault".
	Signal string
}

// Success reports a zero exit code.
func (s Status) Success() bool { return s.Code == 0 }

// Describe returns a one-line description for operators.
func (s Status) Describe() string {
	if s.Signaled && s.Signal != "" {
		return strings.ToUpper(s.Signal[:1]) + s.Signal[1:]
	}
	if s.Code == 0 {
		return "exited normally"
	}
	return "exit status " + strconv.Itoa(s.Code)
}

// Result describes a completed run.
type Result struct {
	// Status is the renderer's exit status.
	Status Status

	// Commands is the number of protocol lines sent.
	Commands int

	PreJobs  []convert.Job
	PostJobs []convert.Job

	Stats Stats
}

// Stats contains per-stage timings.
type Stats struct {
	PreTime    time.Duration
	RenderTime time.Duration
	PostTime   time.Duration
}

// =============================================================================
// Environment
// =============================================================================

// LibraryPathVar returns the variable the dynamic loader of goos reads.
func LibraryPathVar(goos string) (string, error) {
	switch goos {
	case "darwin":
		return "DYLD_LIBRARY_PATH", nil
	case "windows":
		return "PATH", nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix", "android":
		return "LD_LIBRARY_PATH", nil
	}
	return "", errors.New(errors.ErrCodeConfig, "unknown platform %q", goos)
}

// childEnv returns base with key set to value. On windows the library
// directory is prepended to PATH so executables stay reachable.
func childEnv(base []string, goos, key, value string) []string {
	out := make([]string, 0, len(base)+1)
	prefix := key + "="
	old := ""
	for _, kv := range base {
		if envKeyMatch(kv, prefix, goos) {
			old = kv[len(prefix):]
			continue
		}
		out = append(out, kv)
	}
	if goos == "windows" && old != "" {
		value = value + ";" + old
	}
	return append(out, prefix+value)
}

func envKeyMatch(kv, prefix, goos string) bool {
	if len(kv) < len(prefix) {
		return false
	}
	if goos == "windows" {
		return strings.EqualFold(kv[:len(prefix)], prefix)
	}
	return kv[:len(prefix)] == prefix
}

func defaultGOOS(goos string) string {
	if goos == "" {
		return runtime.GOOS
	}
	return goos
}
