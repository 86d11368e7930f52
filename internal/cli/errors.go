package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage error.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	// ErrNoMatch means a record reference matched nothing.
	ErrNoMatch = errors.New("no matching record")
	// ErrAmbiguous means an id prefix matched more than one record.
	ErrAmbiguous = errors.New("ambiguous record reference")
)

// usageError marks errors that should exit with code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsage(err error) bool {
	var ue usageError
	return errors.As(err, &ue) || errors.Is(err, ErrNoMatch) || errors.Is(err, ErrAmbiguous)
}

// usageArgs wraps a cobra.PositionalArgs so its failures exit with code 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
