// Package geoerr defines the error kinds shared by the hierarchy algebra,
// the location model, the gazetteer and the disambiguation engine.
//
// Each kind follows the sentinel+struct shape used elsewhere in this
// module's stack: a package-level sentinel for errors.Is classification,
// and a struct carrying the offending value for errors.As and a readable
// message.
package geoerr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is classification.
var (
	// ErrMalformedID classifies a 13-hex-digit id that fails validation.
	// Fatal for the location that carries it; should be caught at load time.
	ErrMalformedID = errors.New("malformed location id")

	// ErrLocationNotFound classifies a RequireByID miss. Indicates a
	// corrupt dictionary: every parentsIds reference must resolve.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidParent classifies an attempt to boost by a parent whose id
	// is not among the child's parentsIds. A programming error.
	ErrInvalidParent = errors.New("invalid parent")
)

// MalformedIDError reports an id that does not satisfy the 13-hex rule.
type MalformedIDError struct {
	ID string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed location id %q: want 13 uppercase hex digits", e.ID)
}

func (e *MalformedIDError) Unwrap() error { return ErrMalformedID }

// LocationNotFoundError reports a RequireByID miss.
type LocationNotFoundError struct {
	ID string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location not found: %q", e.ID)
}

func (e *LocationNotFoundError) Unwrap() error { return ErrLocationNotFound }

// InvalidParentError reports a boost attempted against a non-parent.
type InvalidParentError struct {
	ChildID  string
	ParentID string
}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf("location %q is not a parent of %q", e.ParentID, e.ChildID)
}

func (e *InvalidParentError) Unwrap() error { return ErrInvalidParent }
