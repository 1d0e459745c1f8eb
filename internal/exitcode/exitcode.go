package exitcode

import "errors"

const (
	Success = 0
	Failure = 1

	// The command line couldn't be understood
	Usage = 2
)

// Coder is an interface to control what value Get returns.
type Coder interface {
	error
	ExitCode() int
}

// Get gets the exit code associated with an error. Cases:
//
//	nil => Success
//	errors implementing Coder => value returned by ExitCode
//	all other errors => Failure
func Get(err error) int {
	if err == nil {
		return Success
	}

	if coder := Coder(nil); errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return Failure
}

// Set wraps an error in a Coder, setting its exit code.
func Set(err error, code int) error {
	if err == nil {
		return nil
	}
	return coder{err, code}
}

var _ Coder = coder{}

type coder struct {
	error
	code int
}

func (co coder) ExitCode() int {
	return co.code
}

func (co coder) Unwrap() error {
	return co.error
}
