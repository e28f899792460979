package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fjscene/pkg/config"
	"github.com/matzehuels/fjscene/pkg/convert"
	"github.com/matzehuels/fjscene/pkg/errors"
	"github.com/matzehuels/fjscene/pkg/observability"
	"github.com/matzehuels/fjscene/pkg/protocol"
	"github.com/matzehuels/fjscene/pkg/scene"
)

// Runner executes drained scenes. A Runner holds no per-run state, so one
// value can run many scenes in sequence.
type Runner struct {
	cfg    Config
	env    []string
	exec   Executor
	logger *log.Logger
}

// NewRunner validates cfg and prepares the child environment.
// A missing LibraryPath is a CONFIG error.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.LibraryPath == "" {
		return nil, errors.New(errors.ErrCodeConfig, "%s environment variable is not set up properly", config.DefaultLibraryPathEnv)
	}
	goos := defaultGOOS(cfg.GOOS)
	key, err := LibraryPathVar(goos)
	if err != nil {
		return nil, err
	}
	if cfg.Renderer == "" {
		cfg.Renderer = config.DefaultRenderer
	}
	if cfg.Timeout < 0 {
		return nil, errors.New(errors.ErrCodeConfig, "timeout cannot be negative: %s", cfg.Timeout)
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Executor == nil {
		cfg.Executor = ExecExecutor{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	base := cfg.Environ
	if base == nil {
		base = os.Environ()
	}

	return &Runner{
		cfg:    cfg,
		env:    childEnv(base, goos, key, cfg.LibraryPath),
		exec:   cfg.Executor,
		logger: logger,
	}, nil
}

// Env returns the environment passed to every child process.
func (r *Runner) Env() []string {
	return append([]string(nil), r.env...)
}

// Run drains b and executes its plan: pre conversions, renderer, post
// conversions. The renderer's exit status is returned in the result, not
// as an error. A failing conversion, a renderer that cannot be started,
// a timeout or a cancelled ctx return an error; the partial result is
// returned alongside it.
//
// Run does not remove the workspace; the caller closes b.
func (r *Runner) Run(ctx context.Context, b *scene.Builder) (*Result, error) {
	plan, err := b.Drain()
	if err != nil {
		return nil, err
	}
	result := &Result{
		Commands: len(plan.Commands),
		PreJobs:  plan.Pre,
		PostJobs: plan.Post,
	}

	// Stage 1: Pre conversions
	start := time.Now()
	if err := r.convertAll(ctx, convert.PhasePre, plan.Pre); err != nil {
		return result, err
	}
	result.Stats.PreTime = time.Since(start)

	// Stage 2: Render
	start = time.Now()
	status, err := r.render(ctx, plan.Commands)
	result.Stats.RenderTime = time.Since(start)
	if err != nil {
		return result, err
	}
	result.Status = status

	// Stage 3: Post conversions
	start = time.Now()
	if err := r.convertAll(ctx, convert.PhasePost, plan.Post); err != nil {
		return result, err
	}
	result.Stats.PostTime = time.Since(start)

	return result, nil
}

func (r *Runner) convertAll(ctx context.Context, phase convert.Phase, jobs []convert.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	r.logger.Info("Running " + phase.String() + " conversions")
	for _, job := range jobs {
		if err := r.convert(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) convert(ctx context.Context, job convert.Job) error {
	hooks := observability.Pipeline()
	phase := job.Phase.String()
	hooks.OnConversionStart(ctx, phase, job.Converter, job.Source, job.Dest)

	r.logger.Info(job.String())
	start := time.Now()
	status, err := r.execute(ctx, "Conversion", Process{
		Name:   r.converterPath(job.Converter),
		Args:   []string{job.Source, job.Dest},
		Env:    r.env,
		Stdout: r.cfg.Stdout,
		Stderr: r.cfg.Stderr,
	})
	err = conversionError(job, status, err)
	hooks.OnConversionComplete(ctx, phase, job.Converter, time.Since(start), err)
	return err
}

func conversionError(job convert.Job, status Status, err error) error {
	switch {
	case err != nil && isRunError(err):
		return err
	case err != nil:
		return errors.Wrap(errors.ErrCodeConverterFailure, err, "%s %s: cannot start converter", job.Converter, job.Source)
	case !status.Success():
		return errors.New(errors.ErrCodeConverterFailure, "%s %s: %s", job.Converter, job.Source, status.Describe())
	}
	return nil
}

func (r *Runner) render(ctx context.Context, cmds []protocol.Command) (Status, error) {
	hooks := observability.Pipeline()
	renderer := r.cfg.Renderer
	hooks.OnRenderStart(ctx, renderer, len(cmds))

	r.logger.Info("Running renderer", "renderer", renderer, "commands", len(cmds))
	start := time.Now()
	status, err := r.execute(ctx, "Rendering", Process{
		Name:   renderer,
		Env:    r.env,
		Stdin:  strings.NewReader(protocol.EncodeString(cmds)),
		Stdout: r.cfg.Stdout,
		Stderr: r.cfg.Stderr,
	})
	if err != nil && !isRunError(err) {
		err = errors.Wrap(errors.ErrCodeRendererLaunchFailure, err, "cannot start renderer %s", renderer)
	}
	hooks.OnRenderComplete(ctx, renderer, status.Code, time.Since(start), err)
	if err != nil {
		return status, err
	}

	switch {
	case status.Signaled:
		r.logger.Error(status.Describe(), "renderer", renderer, "status", status.Code)
	case !status.Success():
		r.logger.Warn("Renderer failed", "renderer", renderer, "status", status.Code)
	}
	return status, nil
}

// execute runs p under the configured timeout. stage names the phase in
// interruption messages ("Rendering terminated").
func (r *Runner) execute(ctx context.Context, stage string, p Process) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, r.runError(stage, err)
	}
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	status, err := r.exec.Execute(ctx, p)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return status, r.runError(stage, ctxErr)
	}
	return status, err
}

func (r *Runner) runError(stage string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s timed out after %s", stage, r.cfg.Timeout)
	}
	return errors.Wrap(errors.ErrCodeInterrupted, err, "%s terminated", stage)
}

func isRunError(err error) bool {
	return errors.Is(err, errors.ErrCodeInterrupted) || errors.Is(err, errors.ErrCodeTimeout)
}

func (r *Runner) converterPath(name string) string {
	if bin, ok := r.cfg.Converters[name]; ok && bin != "" {
		return bin
	}
	return name
}

// Print drains b and writes its plan as text: the pre-conversion command
// lines, then the protocol, then the post-conversion command lines.
// Nothing is executed.
func Print(w io.Writer, b *scene.Builder) error {
	plan, err := b.Drain()
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, job := range plan.Pre {
		sb.WriteString(job.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(protocol.EncodeString(plan.Commands))
	for _, job := range plan.Post {
		sb.WriteString(job.String())
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}
