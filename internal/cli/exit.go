package cli

import "strconv"

// ExitError asks main to exit with Code. It carries the renderer's exit
// status so fjscene can mirror it; Err describes the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
