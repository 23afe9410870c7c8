package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// usageError marks bad input; Run maps it to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

type notFoundError struct {
	ref string
	n   int
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("no item %q (have %d; use a 1-based index or an id)", e.ref, e.n)
}

func isUsage(err error) bool {
	var ue usageError
	var nf notFoundError
	return errors.As(err, &ue) || errors.As(err, &nf)
}

// usageArgs turns cobra's positional-argument errors into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
