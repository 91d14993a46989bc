package graph

import (
	"crashlog/internal/apperr"
)

// gqlError adapts a service error so the GraphQL formatter exposes its
// machine-readable code through the error's extensions.
type gqlError struct {
	err error
}

func (e gqlError) Error() string { return e.err.Error() }

func (e gqlError) Unwrap() error { return e.err }

// Extensions satisfies gqlerrors.ExtendedError.
func (e gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": string(apperr.CodeOf(e.err)),
	}
}

// wrapErr converts a service error for the GraphQL error channel.
// nil passes through so soft misses stay plain nulls.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return gqlError{err: err}
}
