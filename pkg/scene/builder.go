// Package scene provides the scene-authoring surface: a [Builder] that
// turns declarative calls into renderer commands.
//
// Every protocol verb has a method. Resource arguments (textures, meshes,
// saved framebuffers) are resolved through a [convert.Scheduler], so a
// texture given as .hdr is referenced by its converted .mip path and a
// framebuffer saved as .exr is written as .fb and converted afterwards.
//
//	b := scene.NewBuilder(scene.Options{})
//	defer b.Close()
//
//	b.OpenPlugin("PlasticShader")
//	b.NewCamera("cam1", "PerspectiveCamera")
//	b.SetProperty3("cam1", "translate", 0, 2, 6)
//	b.NewTexture("tex1", "sky.hdr")
//	...
//	b.RenderScene("ren1")
//	b.SaveFrameBuffer("fb1", "out.exr")
//
// The typed methods panic on malformed arguments (for example a name with
// whitespace) and on any call after the builder has been drained: both are
// programming errors. [Builder.Exec], [Builder.Apply] and [Builder.Load]
// return errors instead and are meant for scripted input.
package scene

import (
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fjscene/pkg/convert"
	"github.com/matzehuels/fjscene/pkg/errors"
	"github.com/matzehuels/fjscene/pkg/protocol"
	"github.com/matzehuels/fjscene/pkg/workspace"
)

// State is the builder life cycle.
type State int

const (
	// Building accepts calls.
	Building State = iota
	// Drained has handed its commands to a runner; no further calls.
	Drained
)

func (s State) String() string {
	if s == Drained {
		return "drained"
	}
	return "building"
}

// Options configures a Builder.
type Options struct {
	// WorkspaceRoot is the parent of the scratch directory.
	// Empty means the system temporary directory.
	WorkspaceRoot string

	// GOOS selects the plugin extension. Empty means runtime.GOOS.
	GOOS string

	// Tokens overrides the random token source for converted file names.
	Tokens func() string

	Logger *log.Logger
}

// Plan is the drained content of a builder, ready to run.
type Plan struct {
	Commands []protocol.Command
	Pre      []convert.Job
	Post     []convert.Job
}

// Builder accumulates renderer commands and conversion jobs for one scene.
// It is not safe for concurrent use.
type Builder struct {
	commands  []protocol.Command
	ws        *workspace.Workspace
	scheduler *convert.Scheduler
	diags     []convert.Diagnostic
	state     State
	err       error
	dsoExt    string
	logger    *log.Logger
}

// NewBuilder returns an empty builder.
func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	ws := workspace.New(opts.WorkspaceRoot, logger)
	return &Builder{
		ws:        ws,
		scheduler: convert.NewScheduler(ws, convert.WithTokens(opts.Tokens), convert.WithLogger(logger)),
		dsoExt:    PluginExt(goos),
		logger:    logger,
	}
}

// PluginExt returns the dynamic library extension for goos.
func PluginExt(goos string) string {
	if goos == "windows" {
		return ".dll"
	}
	return ".so"
}

// Exec builds a command from raw string arguments, resolving resource
// paths like the typed methods do, and appends it.
func (b *Builder) Exec(verb protocol.Verb, args ...string) error {
	if b.state == Drained {
		return errors.New(errors.ErrCodeMalformedInvocation, "%s called after the scene was drained", verb)
	}
	if b.err != nil {
		return b.err
	}

	s, ok := protocol.Lookup(verb)
	if !ok {
		return errors.New(errors.ErrCodeMalformedInvocation, "unknown verb %q", verb)
	}
	// Check shape before resolving so a bad call never schedules a job.
	if len(args) < s.MinArgs() || len(args) > s.MaxArgs() {
		_, err := protocol.New(verb, args...)
		return err
	}

	resolved, err := b.resolve(verb, args)
	if err != nil {
		if errors.Is(err, errors.ErrCodeWorkspace) {
			b.err = err
		}
		return err
	}

	cmd, err := protocol.New(verb, resolved...)
	if err != nil {
		return err
	}
	b.commands = append(b.commands, cmd)
	return nil
}

// Apply appends a command read from a script, resolving its resources.
func (b *Builder) Apply(cmd protocol.Command) error {
	return b.Exec(cmd.Verb(), cmd.Args()...)
}

// resolve substitutes resource arguments. args is not modified.
func (b *Builder) resolve(verb protocol.Verb, args []string) ([]string, error) {
	var (
		role convert.Role
		idx  int
	)
	switch verb {
	case protocol.VerbOpenPlugin:
		if err := errors.ValidatePath(args[0]); err != nil {
			return nil, argError(verb, 0, err)
		}
		out := append([]string(nil), args...)
		out[0] = b.pluginPath(args[0])
		return out, nil
	case protocol.VerbNewTexture:
		role, idx = convert.RoleTexture, 1
	case protocol.VerbNewMesh:
		role, idx = convert.RoleMesh, 1
	case protocol.VerbSaveFrameBuffer:
		role, idx = convert.RoleFrameBuffer, 1
	default:
		return args, nil
	}

	// Validate the other arguments first: a failure must not leave a job
	// behind for a command that is never emitted.
	shape := append([]string(nil), args...)
	shape[idx] = "x"
	if _, err := protocol.New(verb, shape...); err != nil {
		return nil, err
	}

	before := len(b.scheduler.Diagnostics())
	path, err := b.scheduler.Resolve(role, args[idx])
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidPath) {
			return nil, argError(verb, idx, err)
		}
		return nil, err
	}
	b.diags = append(b.diags, b.scheduler.Diagnostics()[before:]...)

	out := append([]string(nil), args...)
	out[idx] = path
	return out, nil
}

// argError reports a bad argument the way protocol.New does.
func argError(verb protocol.Verb, idx int, err error) error {
	label := "path"
	if s, ok := protocol.Lookup(verb); ok && idx < len(s.Labels) {
		label = s.Labels[idx]
	}
	return errors.Wrap(errors.ErrCodeMalformedInvocation, err, "%s: argument %d (%s)", verb, idx+1, label)
}

// pluginPath appends the platform library extension unless present.
func (b *Builder) pluginPath(path string) string {
	if strings.HasSuffix(path, b.dsoExt) {
		return path
	}
	return path + b.dsoExt
}

// emit is the typed-method entry point: failures are programming errors.
func (b *Builder) emit(verb protocol.Verb, args ...string) {
	err := b.Exec(verb, args...)
	if err == nil || err == b.err {
		return
	}
	panic(err)
}

// Err returns the first runtime failure, such as a workspace that could
// not be created. Once set, further calls are ignored.
func (b *Builder) Err() error { return b.err }

// State returns the builder state.
func (b *Builder) State() State { return b.state }

// Commands returns the commands accumulated so far.
func (b *Builder) Commands() []protocol.Command {
	return append([]protocol.Command(nil), b.commands...)
}

// PreJobs returns the scheduled pre-conversion jobs.
func (b *Builder) PreJobs() []convert.Job { return b.scheduler.PreJobs() }

// PostJobs returns the scheduled post-conversion jobs.
func (b *Builder) PostJobs() []convert.Job { return b.scheduler.PostJobs() }

// Diagnostics returns warnings recorded while building and closing.
func (b *Builder) Diagnostics() []convert.Diagnostic {
	return append([]convert.Diagnostic(nil), b.diags...)
}

// Workspace returns the scratch directory path, or "" if none was needed.
func (b *Builder) Workspace() string { return b.ws.Path() }

// Drain moves the builder to the Drained state and returns its plan.
// It fails if the builder was already drained or holds a runtime error.
func (b *Builder) Drain() (Plan, error) {
	if b.state == Drained {
		return Plan{}, errors.New(errors.ErrCodeMalformedInvocation, "scene already drained")
	}
	if b.err != nil {
		return Plan{}, b.err
	}
	b.state = Drained
	plan := Plan{
		Commands: b.Commands(),
		Pre:      b.scheduler.PreJobs(),
		Post:     b.scheduler.PostJobs(),
	}
	b.logger.Debug("scene drained", "commands", len(plan.Commands), "pre", len(plan.Pre), "post", len(plan.Post))
	return plan, nil
}

// Close removes the workspace. A workspace removed by someone else is
// recorded as a diagnostic, not returned as an error.
func (b *Builder) Close() error {
	warn, err := b.ws.Close()
	if warn != nil {
		b.diags = append(b.diags, convert.Diagnostic{
			Code:    warn.Code,
			Path:    b.ws.Path(),
			Message: warn.Message,
		})
	}
	return err
}

// Load reads a scene script and applies each command in order.
func (b *Builder) Load(r io.Reader) error {
	sc := protocol.NewScanner(r)
	for sc.Scan() {
		if err := b.Apply(sc.Command()); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "line %d", sc.Line())
		}
	}
	return sc.Err()
}
