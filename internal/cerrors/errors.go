package cerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds the CLI distinguishes. Commands wrap
// these with context via Wrap or fmt.Errorf so main can classify the final
// error into a process exit code.
var (
	ErrSourceNotFound    = errors.New("source not found")
	ErrDestinationExists = errors.New("destination already exists")
	ErrMissingTool       = errors.New("required tool missing")
	ErrProbe             = errors.New("probe failed")
	ErrConfiguration     = errors.New("configuration error")

	// ErrConversionNeeded is the non-failure signal the info command returns
	// when at least one stream or the container requires conversion.
	ErrConversionNeeded = errors.New("conversion needed")
)

// Exit codes shared between commands and tests. Encode failures do not appear
// here: their exit code is whatever the encoder process returned.
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitUnavailable      = 2
	ExitConversionNeeded = 3
	ExitMissingTool      = 4
)

// EncodeError carries a failed encoder invocation's exit code so it can be
// propagated verbatim as the process exit status.
type EncodeError struct {
	Stage string
	Code  int
	Err   error
}

func (e *EncodeError) Error() string {
	stage := strings.TrimSpace(e.Stage)
	if stage == "" {
		stage = "encode"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed with exit code %d: %v", stage, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed with exit code %d", stage, e.Code)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Wrap tags err with the given sentinel while keeping both in the chain.
func Wrap(marker error, detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status. A nil error is success.
// Encoder exit codes pass through unchanged, even when they collide with the
// reserved codes above.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var encodeErr *EncodeError
	if errors.As(err, &encodeErr) {
		if encodeErr.Code <= 0 {
			return ExitFailure
		}
		return encodeErr.Code
	}
	switch {
	case errors.Is(err, ErrConversionNeeded):
		return ExitConversionNeeded
	case errors.Is(err, ErrSourceNotFound), errors.Is(err, ErrDestinationExists):
		return ExitUnavailable
	case errors.Is(err, ErrMissingTool):
		return ExitMissingTool
	default:
		return ExitFailure
	}
}
