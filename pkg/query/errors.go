package query

import "github.com/pkg/errors"

// Validation failures raised while building or compiling a statement. Compilation is
// all or nothing: when one of these is returned no SQL is produced. Callers match with
// errors.Is since they are usually wrapped with context.
var (
	// ErrMissingTable is returned when INSERT or DELETE has no target table.
	ErrMissingTable = errors.New("missing table")

	// ErrMissingPredicate is returned when DELETE has an empty WHERE clause.
	ErrMissingPredicate = errors.New("missing predicate")

	// ErrAmbiguousJoin is returned when a join declares both USING and ON.
	ErrAmbiguousJoin = errors.New("ambiguous join")

	// ErrInvalidJoin is returned when a join has no table or sub-select, or no join keys.
	ErrInvalidJoin = errors.New("invalid join")

	// ErrInvalidFrom is returned when FROM has neither a table nor a sub-select.
	ErrInvalidFrom = errors.New("invalid from")

	// ErrInvalidArgument is returned when a builder method received arguments it can't
	// interpret. The first such error is kept and surfaced at compile time.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation is returned by operations ClickHouse doesn't offer, such
	// as transactions.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
