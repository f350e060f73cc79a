// Package fault defines the error kinds shared by every bounded context.
//
// Domain packages declare their own sentinel errors on top of these kinds so that
// callers can match either the precise failure (clients.ErrTaxIDTaken) or the broad
// category (fault.ErrConflict) with errors.Is.
package fault

import "errors"

var (
	// ErrValidation marks input that has the wrong shape.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness or referential violation.
	ErrConflict = errors.New("conflict")
	// ErrCapacity marks a request exceeding an item's stock ceiling.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrStorage marks a failure of the persistence collaborator.
	ErrStorage = errors.New("storage failure")
)

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// New returns an error of the given kind carrying msg.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Wrap attaches kind and msg to cause. A nil cause yields nil.
func Wrap(kind error, msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: kind, msg: msg, cause: cause}
}

// Storage wraps a collaborator failure unless it already carries a kind.
func Storage(msg string, cause error) error {
	if cause == nil {
		return nil
	}
	if Kind(cause) != nil {
		return cause
	}
	return Wrap(ErrStorage, msg, cause)
}

// Kind reports which of the shared kinds err belongs to, or nil.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrCapacity, ErrStorage} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

var kindNames = map[error]string{
	ErrValidation: "validation",
	ErrNotFound:   "not_found",
	ErrConflict:   "conflict",
	ErrCapacity:   "capacity",
	ErrStorage:    "storage",
}

// Name returns a stable identifier for the kind of err, used when errors
// cross a serialisation boundary. Errors without a kind report "storage".
func Name(err error) string {
	if kind := Kind(err); kind != nil {
		return kindNames[kind]
	}
	return kindNames[ErrStorage]
}

// FromName is the inverse of Name. Unknown names map to ErrStorage.
func FromName(name string) error {
	for kind, n := range kindNames {
		if n == name {
			return kind
		}
	}
	return ErrStorage
}
