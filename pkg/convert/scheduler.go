// Package convert decides when a scene resource needs a format conversion
// and records the conversion jobs the pipeline runs around the renderer.
//
// The renderer reads textures as .mip, meshes as .mesh and writes
// framebuffers as .fb. Any other known format is bridged by an external
// converter: inputs are converted before rendering (pre phase), outputs
// after (post phase). Converted files live in a [workspace.Workspace]
// under a unique name "<token>_<stem><ext>", so two resources with the same
// base name never collide.
//
//	s := convert.NewScheduler(ws)
//	path, err := s.Resolve(convert.RoleTexture, "sky.hdr")
//	// path == "<workspace>/<token>_sky.mip"
//	// s.PreJobs() == [{hdr2mip sky.hdr <workspace>/<token>_sky.mip pre}]
//
// Resolving the same file twice schedules two independent jobs.
package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fjscene/pkg/errors"
	"github.com/matzehuels/fjscene/pkg/observability"
	"github.com/matzehuels/fjscene/pkg/workspace"
)

// Job is one converter invocation: "Converter Source Dest".
type Job struct {
	Converter string
	Source    string
	Dest      string
	Phase     Phase
}

// Args returns the converter command line.
func (j Job) Args() []string {
	return []string{j.Converter, j.Source, j.Dest}
}

// String renders the invocation as a shell line.
func (j Job) String() string {
	return strings.Join(j.Args(), " ")
}

// Diagnostic is a non-fatal finding recorded while building a scene.
type Diagnostic struct {
	Code    errors.Code
	Role    Role
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Role != "" {
		return fmt.Sprintf("%s: %s %s: %s", d.Code, d.Role, d.Path, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTokens replaces the uuid token source used in workspace file names.
func WithTokens(next func() string) Option {
	return func(s *Scheduler) {
		if next != nil {
			s.token = next
		}
	}
}

// WithLogger sets the logger for scheduling warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler resolves resource paths and accumulates conversion jobs.
// It is not safe for concurrent use.
type Scheduler struct {
	ws     *workspace.Workspace
	token  func() string
	logger *log.Logger

	pre   []Job
	post  []Job
	diags []Diagnostic
}

// NewScheduler returns a scheduler that places converted files in ws.
func NewScheduler(ws *workspace.Workspace, opts ...Option) *Scheduler {
	s := &Scheduler{
		ws:     ws,
		token:  uuid.NewString,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the path the renderer should reference for a resource of
// the given role, scheduling a conversion job when the file is not in the
// role's native format.
//
// Native and unrecognized extensions are returned unchanged. An
// unrecognized extension also records an UNSUPPORTED_FORMAT diagnostic;
// the renderer is left to reject the file.
func (s *Scheduler) Resolve(role Role, path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	f, ok := Lookup(role)
	if !ok {
		return "", errors.New(errors.ErrCodeInternal, "unknown resource role %q", role)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if f.IsNative(ext) {
		return path, nil
	}

	conv, ok := f.Find(ext)
	if !ok {
		s.warnUnsupported(role, path, ext)
		return path, nil
	}

	dir, err := s.ws.Dir()
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(base, ext)
	tmp := filepath.Join(dir, s.token()+"_"+stem+f.Native)

	job := Job{Converter: conv.Converter, Phase: conv.Phase}
	switch conv.Phase {
	case PhasePost:
		job.Source, job.Dest = tmp, path
		s.post = append(s.post, job)
	default:
		job.Source, job.Dest = path, tmp
		s.pre = append(s.pre, job)
	}
	s.logger.Debug("scheduled conversion", "phase", job.Phase, "job", job.String())
	observability.Scheduler().OnJobScheduled(context.Background(), job.Phase.String(), job.Converter)

	return tmp, nil
}

func (s *Scheduler) warnUnsupported(role Role, path, ext string) {
	d := Diagnostic{
		Code:    errors.ErrCodeUnsupportedFormat,
		Role:    role,
		Path:    path,
		Message: fmt.Sprintf("non supported %s file format %q", role, ext),
	}
	s.diags = append(s.diags, d)
	s.logger.Warn("non supported file format", "role", role, "path", path)
	observability.Scheduler().OnUnsupportedFormat(context.Background(), string(role), ext)
}

// PreJobs returns the pre-conversion jobs in scheduling order.
func (s *Scheduler) PreJobs() []Job { return append([]Job(nil), s.pre...) }

// PostJobs returns the post-conversion jobs in scheduling order.
func (s *Scheduler) PostJobs() []Job { return append([]Job(nil), s.post...) }

// Diagnostics returns the warnings recorded so far.
func (s *Scheduler) Diagnostics() []Diagnostic { return append([]Diagnostic(nil), s.diags...) }
