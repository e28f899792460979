package protocol

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/fjscene/pkg/errors"
)

// Command is one renderer instruction. Commands are immutable once built;
// use [New] or [MustNew] to construct them.
type Command struct {
	verb Verb
	args []string
}

// New validates the verb and its arguments and returns the command.
// Numeric arguments are re-formatted with [FormatNumber] unless they are
// enum symbols such as ORDER_SRT, which pass unchanged; comment text is
// truncated to [MaxCommentLength] characters. Any violation is reported as
// an [errors.ErrCodeMalformedInvocation] error.
func New(verb Verb, args ...string) (Command, error) {
	s, ok := Lookup(verb)
	if !ok {
		return Command{}, errors.New(errors.ErrCodeMalformedInvocation, "unknown verb %q", verb)
	}
	if len(args) < s.MinArgs() || len(args) > s.MaxArgs() {
		return Command{}, arityError(s, len(args))
	}

	out := make([]string, len(args))
	for i, arg := range args {
		v, err := normalize(s.Args[i], arg)
		if err != nil {
			return Command{}, errors.Wrap(errors.ErrCodeMalformedInvocation, err,
				"%s: argument %d (%s)", verb, i+1, s.Labels[i])
		}
		out[i] = v
	}
	return Command{verb: verb, args: out}, nil
}

// MustNew is like [New] but panics on invalid input. It is meant for
// callers whose argument shape is fixed at compile time, where a violation
// is a programming error.
func MustNew(verb Verb, args ...string) Command {
	cmd, err := New(verb, args...)
	if err != nil {
		panic(err)
	}
	return cmd
}

func arityError(s Spec, n int) error {
	if s.Optional > 0 {
		return errors.New(errors.ErrCodeMalformedInvocation,
			"%s takes %d to %d arguments, got %d (usage: %s)", s.Verb, s.MinArgs(), s.MaxArgs(), n, s.Usage())
	}
	return errors.New(errors.ErrCodeMalformedInvocation,
		"%s takes %d arguments, got %d (usage: %s)", s.Verb, s.MaxArgs(), n, s.Usage())
}

func normalize(k Kind, arg string) (string, error) {
	switch k {
	case KindText:
		if err := errors.ValidateText(arg); err != nil {
			return "", err
		}
		return truncate(arg, MaxCommentLength), nil
	case KindNumber:
		if IsSymbol(arg) {
			return arg, nil
		}
		v, err := ParseNumber(arg)
		if err != nil {
			return "", err
		}
		return FormatNumber(v), nil
	case KindPath:
		if err := errors.ValidatePath(arg); err != nil {
			return "", err
		}
		return arg, nil
	}
	if err := errors.ValidateArgument(arg); err != nil {
		return "", err
	}
	return arg, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// FormatNumber writes v in the canonical protocol form: the shortest
// decimal that round-trips, with no locale-dependent separators.
// Negative zero is written as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseNumber parses a numeric argument. NaN and infinities are rejected
// since the renderer cannot read them back.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeMalformedInvocation, "%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeMalformedInvocation, "%q is not a finite number", s)
	}
	return v, nil
}

// Verb returns the command verb.
func (c Command) Verb() Verb { return c.verb }

// Args returns a copy of the command arguments.
func (c Command) Args() []string {
	out := make([]string, len(c.args))
	copy(out, c.args)
	return out
}

// Arg returns the i-th argument.
func (c Command) Arg(i int) string { return c.args[i] }

// NumArgs returns the number of arguments.
func (c Command) NumArgs() int { return len(c.args) }

// IsZero reports whether c was never built.
func (c Command) IsZero() bool { return c.verb == "" }

// String renders the wire line without a trailing newline.
func (c Command) String() string {
	if c.verb == VerbComment {
		if len(c.args) == 0 || c.args[0] == "" {
			return commentPrefix
		}
		return commentPrefix + " " + c.args[0]
	}
	if len(c.args) == 0 {
		return string(c.verb)
	}
	return string(c.verb) + " " + strings.Join(c.args, " ")
}

// Encode writes cmds as newline-terminated protocol lines.
func Encode(w io.Writer, cmds []Command) error {
	bw := bufio.NewWriter(w)
	for _, c := range cmds {
		if _, err := bw.WriteString(c.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeString returns the protocol text for cmds.
func EncodeString(cmds []Command) string {
	var b strings.Builder
	for _, c := range cmds {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}
