package protocol

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/fjscene/pkg/errors"
)

// Scanner reads commands from a scene script. Lines are split on
// whitespace; blank lines are skipped and lines starting with "#" become
// comments.
//
//	sc := protocol.NewScanner(f)
//	for sc.Scan() {
//	    use(sc.Command())
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
type Scanner struct {
	s    *bufio.Scanner
	line int
	cmd  Command
	err  error
}

// NewScanner returns a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next command. It returns false at the end of the
// input or on the first error.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	for sc.s.Scan() {
		sc.line++
		text := strings.TrimSpace(sc.s.Text())
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, commentPrefix) {
			body := strings.TrimSpace(strings.TrimPrefix(text, commentPrefix))
			sc.cmd, sc.err = New(VerbComment, body)
		} else {
			fields := strings.Fields(text)
			sc.cmd, sc.err = New(Verb(fields[0]), fields[1:]...)
		}
		if sc.err != nil {
			sc.err = errors.Wrap(errors.ErrCodeMalformedInvocation, sc.err, "line %d", sc.line)
			return false
		}
		return true
	}
	if err := sc.s.Err(); err != nil {
		sc.err = errors.Wrap(errors.ErrCodeMalformedInvocation, err, "line %d", sc.line+1)
	}
	return false
}

// Command returns the most recent command read by Scan.
func (sc *Scanner) Command() Command { return sc.cmd }

// Line returns the line number of the most recent command.
func (sc *Scanner) Line() int { return sc.line }

// Err returns the first error encountered.
func (sc *Scanner) Err() error { return sc.err }

// Decode reads every command from r.
func Decode(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := NewScanner(r)
	for sc.Scan() {
		cmds = append(cmds, sc.Command())
	}
	return cmds, sc.Err()
}
