package errors

import "fmt"

// Error is a coded application error. Code identifies the failure class,
// Message is a human-readable description and Details carries the specifics
// of the failing operation (column name, requested statistic, ...).
type Error struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, ErrInvalidStatistic) matches every INVALID_STATISTIC
// error regardless of details.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates a new Error with the given code and message
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithDetails creates a new Error with additional details
func NewWithDetails(code, message, details string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// Predefined error values for the failure classes of the toolkit
var (
	// Requested statistic name is not in the recognized set for the operation.
	ErrInvalidStatistic = New("INVALID_STATISTIC", "invalid statistic")

	// The operation requires a column of a specific kind.
	ErrWrongColumnType = New("WRONG_COLUMN_TYPE", "wrong column type")

	// A column has no non-null values to derive an imputation statistic from.
	ErrImputationImpossible = New("IMPUTATION_IMPOSSIBLE", "no non-null values to impute from")

	// The named column does not exist in the dataset.
	ErrColumnNotFound = New("COLUMN_NOT_FOUND", "column not found")

	// A required database credential key is absent.
	ErrMissingCredential = New("MISSING_CREDENTIAL", "missing database credential")
)

// Helper constructors for common scenarios

// InvalidStatistic creates an INVALID_STATISTIC error naming the rejected
// statistic and the recognized set.
func InvalidStatistic(statistic string, allowed ...string) *Error {
	return NewWithDetails("INVALID_STATISTIC", "invalid statistic",
		fmt.Sprintf("%q is not one of %v", statistic, allowed))
}

// WrongColumnType creates a WRONG_COLUMN_TYPE error for a column that is
// not of the kind the operation requires.
func WrongColumnType(column, want, got string) *Error {
	return NewWithDetails("WRONG_COLUMN_TYPE", "wrong column type",
		fmt.Sprintf("column %q is %s, operation requires %s", column, got, want))
}

// ImputationImpossible creates an IMPUTATION_IMPOSSIBLE error for a column
// with no non-null values.
func ImputationImpossible(column string) *Error {
	return NewWithDetails("IMPUTATION_IMPOSSIBLE", "no non-null values to impute from",
		fmt.Sprintf("column %q is entirely null", column))
}

// ColumnNotFound creates a COLUMN_NOT_FOUND error for the named column.
func ColumnNotFound(column string) *Error {
	return NewWithDetails("COLUMN_NOT_FOUND", "column not found", column)
}

// MissingCredential creates a MISSING_CREDENTIAL error naming the key.
func MissingCredential(key string) *Error {
	return NewWithDetails("MISSING_CREDENTIAL", "missing database credential", key)
}
