package tagmint

import "fmt"

// ValidationError reports a tag failing the grammar required by its
// branch context. Terminal for the current invocation.
type ValidationError struct {
	Tag    string
	Branch string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tag %q on branch %q: %s", e.Tag, e.Branch, e.Detail)
}

// ConflictError reports a tag name that already exists in the local or
// remote inventory. Terminal; no partial tag is left behind.
type ConflictError struct {
	Tag   string
	Where string // "local" or "remote"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tag %q already exists (%s)", e.Tag, e.Where)
}

// NotFoundError reports a target commit reference that does not resolve.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("commit reference %q does not resolve", e.Ref)
}

// ExternalError wraps a failed repository collaborator invocation.
type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// ConcurrentModificationError reports that the branch identity changed
// while the interactive session was waiting for input. Fatal; the user
// must re-run.
type ConcurrentModificationError struct {
	Was string
	Now string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("branch changed from %q to %q during the session; re-run to continue", e.Was, e.Now)
}
